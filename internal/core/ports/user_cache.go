package ports

import (
	"context"

	"github.com/notehub/notes-api/internal/core/domain"
)

// UserCache is a best-effort read-through cache for session user lookups.
// A miss or a cache error must fall back to the repository; Invalidate is
// called whenever a user record is mutated or removed.
type UserCache interface {
	Get(ctx context.Context, id int64) (*domain.User, error)
	Set(ctx context.Context, user *domain.User) error
	Invalidate(ctx context.Context, id int64) error
}
