package ports

import (
	"context"

	"github.com/notehub/notes-api/internal/core/domain"
)

// UpdateNoteInput carries the client-mutable note fields. Nil means the field
// is absent from the request and keeps its prior value.
type UpdateNoteInput struct {
	Title   *string
	Content *string
}

// NoteService defines use-case operations for notes. Every operation that
// targets a specific note checks existence before ownership.
type NoteService interface {
	Create(ctx context.Context, actor *domain.User, title, content string) (*domain.Note, error)
	FindAll(ctx context.Context, actor *domain.User) ([]*domain.Note, error)
	FindOne(ctx context.Context, actor *domain.User, noteID int64) (*domain.Note, error)
	Update(ctx context.Context, actor *domain.User, noteID int64, input UpdateNoteInput) (*domain.Note, error)
	Remove(ctx context.Context, actor *domain.User, noteID int64) error
}
