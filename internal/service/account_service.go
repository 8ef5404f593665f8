package service

import (
	"context"
	"errors"
	"strings"

	"user-directory/internal/auth"
	"user-directory/internal/domain"
	"user-directory/internal/repository"
)

var (
	// ErrInvalidCredentials indicates that provided login credentials are
	// incorrect. Unknown email and wrong password both map here so the two
	// cases stay indistinguishable to the client.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountExists is returned when signing up with an email that
	// already has a credential row.
	ErrAccountExists = errors.New("account already exists")
)

// AccountService describes operator account lifecycle operations.
type AccountService interface {
	SignUp(ctx context.Context, email, password string) (*domain.Account, error)
	Authenticate(ctx context.Context, email, password string) (*domain.Account, error)
}

type accountService struct {
	accounts repository.AccountRepository
}

func NewAccountService(accounts repository.AccountRepository) AccountService {
	return &accountService{accounts: accounts}
}

func (s *accountService) SignUp(ctx context.Context, email, password string) (*domain.Account, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, errors.New("email is required")
	}
	if password == "" {
		return nil, errors.New("password is required")
	}

	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return nil, ErrAccountExists
	} else if !strings.Contains(strings.ToLower(err.Error()), "not found") {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		Email:        email,
		PasswordHash: hash,
	}
	if _, err := s.accounts.Create(ctx, account); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "already exists") {
			return nil, ErrAccountExists
		}
		return nil, err
	}

	return sanitizeAccount(account), nil
}

func (s *accountService) Authenticate(ctx context.Context, email, password string) (*domain.Account, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "not found") {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(password, account.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return sanitizeAccount(account), nil
}

func sanitizeAccount(account *domain.Account) *domain.Account {
	if account == nil {
		return nil
	}
	return &domain.Account{
		ID:        account.ID,
		Email:     account.Email,
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}
}
