package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"user-directory/internal/domain"
	"user-directory/internal/repository"
)

const createPeopleTable = `
CREATE TABLE IF NOT EXISTS people (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	age INTEGER NOT NULL DEFAULT 0,
	city TEXT NOT NULL DEFAULT '',
	gender TEXT NOT NULL DEFAULT '',
	skills TEXT NOT NULL DEFAULT '',
	image_path TEXT NOT NULL DEFAULT '',
	resume_path TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

const personColumns = `id, name, email, age, city, gender, skills, image_path, resume_path, created_at, updated_at`

type PersonRepository struct {
	db *sql.DB
}

func NewPersonRepository(db *sql.DB) repository.PersonRepository {
	return &PersonRepository{db: db}
}

func (r *PersonRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createPeopleTable); err != nil {
		return fmt.Errorf("create people table: %w", err)
	}
	return nil
}

func (r *PersonRepository) Create(ctx context.Context, person *domain.Person) (int64, error) {
	now := time.Now().UTC()
	person.CreatedAt = now
	person.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO people (name, email, age, city, gender, skills, image_path, resume_path, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		person.Name,
		person.Email,
		person.Age,
		person.City,
		person.Gender,
		person.Skills,
		person.ImagePath,
		person.ResumePath,
		person.CreatedAt,
		person.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert person: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("person last insert id: %w", err)
	}
	person.ID = id
	return id, nil
}

// CreateBatch inserts all records inside one transaction. A duplicate email,
// against existing rows or earlier rows of the same batch, fails the whole
// batch and nothing is persisted.
func (r *PersonRepository) CreateBatch(ctx context.Context, people []*domain.Person) ([]int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin batch insert: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	ids := make([]int64, 0, len(people))
	for _, person := range people {
		var existing int64
		err := tx.QueryRowContext(ctx, `SELECT id FROM people WHERE email = ?`, person.Email).Scan(&existing)
		if err == nil {
			return nil, fmt.Errorf("person already exists: %s", person.Email)
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("check person email: %w", err)
		}

		person.CreatedAt = now
		person.UpdatedAt = now
		res, err := tx.ExecContext(ctx, `
INSERT INTO people (name, email, age, city, gender, skills, image_path, resume_path, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			person.Name,
			person.Email,
			person.Age,
			person.City,
			person.Gender,
			person.Skills,
			person.ImagePath,
			person.ResumePath,
			person.CreatedAt,
			person.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("insert person: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("person last insert id: %w", err)
		}
		person.ID = id
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit batch insert: %w", err)
	}
	return ids, nil
}

func (r *PersonRepository) Get(ctx context.Context, id int64) (*domain.Person, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+personColumns+`
FROM people
WHERE id = ?`,
		id,
	)
	return scanPerson(row)
}

func (r *PersonRepository) GetByEmail(ctx context.Context, email string) (*domain.Person, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+personColumns+`
FROM people
WHERE email = ?`,
		email,
	)
	return scanPerson(row)
}

func (r *PersonRepository) List(ctx context.Context, filter repository.PersonFilter) ([]domain.Person, error) {
	where, args := buildPersonFilter(filter)
	query := `SELECT ` + personColumns + ` FROM people` + where + ` ORDER BY id`
	if filter.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}
	defer rows.Close()

	var people []domain.Person
	for rows.Next() {
		var p domain.Person
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Email,
			&p.Age,
			&p.City,
			&p.Gender,
			&p.Skills,
			&p.ImagePath,
			&p.ResumePath,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate people: %w", err)
	}
	return people, nil
}

func (r *PersonRepository) Count(ctx context.Context, filter repository.PersonFilter) (int, error) {
	where, args := buildPersonFilter(filter)
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM people`+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count people: %w", err)
	}
	return count, nil
}

func (r *PersonRepository) Update(ctx context.Context, person *domain.Person) error {
	person.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE people
SET name = ?, email = ?, age = ?, city = ?, gender = ?, skills = ?, image_path = ?, resume_path = ?, updated_at = ?
WHERE id = ?`,
		person.Name,
		person.Email,
		person.Age,
		person.City,
		person.Gender,
		person.Skills,
		person.ImagePath,
		person.ResumePath,
		person.UpdatedAt,
		person.ID,
	)
	if err != nil {
		return fmt.Errorf("update person: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update person rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("person not found")
	}
	return nil
}

func (r *PersonRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM people WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete person: %w", err)
	}
	return nil
}

// buildPersonFilter renders the shared WHERE clause for List and Count so
// pagination totals always agree with the visible rows.
func buildPersonFilter(filter repository.PersonFilter) (string, []any) {
	where := ` WHERE 1=1`
	var args []any

	if len(filter.IDs) > 0 {
		where += ` AND id IN (?` + strings.Repeat(",?", len(filter.IDs)-1) + `)`
		for _, id := range filter.IDs {
			args = append(args, id)
		}
	}
	if filter.Search != "" {
		// sqlite LIKE is case-insensitive for ASCII, matching the
		// case-insensitive search the listing page offers.
		where += ` AND (name LIKE ? OR email LIKE ? OR city LIKE ? OR gender LIKE ? OR skills LIKE ?)`
		term := "%" + filter.Search + "%"
		for i := 0; i < 5; i++ {
			args = append(args, term)
		}
	}
	return where, args
}

func scanPerson(row *sql.Row) (*domain.Person, error) {
	var p domain.Person
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Email,
		&p.Age,
		&p.City,
		&p.Gender,
		&p.Skills,
		&p.ImagePath,
		&p.ResumePath,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("person not found")
		}
		return nil, fmt.Errorf("scan person: %w", err)
	}
	return &p, nil
}
