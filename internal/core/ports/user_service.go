package ports

import (
	"context"

	"github.com/notehub/notes-api/internal/core/domain"
)

// UpdateUserInput carries a partial account update. Nil fields keep their
// prior value. Password, when present, is re-hashed before storage.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
	Role     *string
}

// UserService defines account CRUD. Create runs through the AuthService
// hashing path; update and remove are guarded by the ownership policy.
type UserService interface {
	Create(ctx context.Context, input RegisterInput) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
	FindOne(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, actor *domain.User, id int64, input UpdateUserInput) (*domain.User, error)
	Remove(ctx context.Context, actor *domain.User, id int64) error
}
