package domain

import "time"

// Account is an operator login for the directory application.
type Account struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
