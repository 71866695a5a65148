package ports

import (
	"context"

	"github.com/vaultkeep/notes-service/internal/core/domain"
)

type AuthService interface {
	// Register creates an account with the default USER role.
	Register(ctx context.Context, username, password string) (*domain.User, error)
	// Login verifies credentials and returns a signed token plus the account.
	// Unknown username and wrong password both fail with
	// domain.ErrInvalidCredentials; callers cannot tell them apart.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	// ListUsers returns all registered accounts (admin surface).
	ListUsers(ctx context.Context) ([]*domain.User, error)
}
