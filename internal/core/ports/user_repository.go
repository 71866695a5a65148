package ports

import (
	"context"

	"github.com/vaultkeep/notes-service/internal/core/domain"
)

// UserRepository defines the interface for account persistence.
// Username matching is exact and case-sensitive; uniqueness is enforced by
// the store (unique index), not by the caller.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}
