package repository

import (
	"context"

	"user-directory/internal/domain"
)

// PersonFilter narrows a directory listing. Search matches a substring
// against name, email, city, gender and skills. A non-empty IDs set restricts
// the result to exactly those records. Limit <= 0 means no paging.
type PersonFilter struct {
	Search string
	IDs    []int64
	Limit  int
	Offset int
}

// PersonRepository defines persistence operations for directory records.
// CreateBatch inserts all records in a single transaction: any failure rolls
// the whole batch back.
type PersonRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, person *domain.Person) (int64, error)
	CreateBatch(ctx context.Context, people []*domain.Person) ([]int64, error)
	Get(ctx context.Context, id int64) (*domain.Person, error)
	GetByEmail(ctx context.Context, email string) (*domain.Person, error)
	List(ctx context.Context, filter PersonFilter) ([]domain.Person, error)
	Count(ctx context.Context, filter PersonFilter) (int, error)
	Update(ctx context.Context, person *domain.Person) error
	Delete(ctx context.Context, id int64) error
}
