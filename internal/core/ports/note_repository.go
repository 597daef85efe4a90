package ports

import (
	"context"

	"github.com/notehub/notes-api/internal/core/domain"
)

// NoteRepository defines persistence operations for notes.
type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) (*domain.Note, error)
	FindByID(ctx context.Context, id int64) (*domain.Note, error)
	// FindByOwner returns only notes owned by ownerID; the scoping happens in
	// the query, not as a post-fetch filter.
	FindByOwner(ctx context.Context, ownerID int64) ([]*domain.Note, error)
	Update(ctx context.Context, note *domain.Note) (*domain.Note, error)
	Delete(ctx context.Context, id int64) error
	// DeleteByOwner removes every note owned by ownerID. Used by the account
	// deletion cascade: a note cannot outlive its owning user.
	DeleteByOwner(ctx context.Context, ownerID int64) error
}
