package repository

import (
	"context"

	"user-directory/internal/domain"
)

// AccountRepository defines persistence operations for Account entities.
type AccountRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, account *domain.Account) (int64, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
}
