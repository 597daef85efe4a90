package ports

import (
	"context"

	"github.com/notehub/notes-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// Create assigns the id; FindByEmail is the login lookup path.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}
