package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/notehub/notes-api/internal/api/metrics"
	"github.com/notehub/notes-api/internal/core/domain"
	"github.com/notehub/notes-api/internal/core/ports"
)

// NoteService implements note CRUD with the ownership policy applied before
// every read or mutation of an existing note.
type NoteService struct {
	notes  ports.NoteRepository
	logger zerolog.Logger
}

func NewNoteService(notes ports.NoteRepository, logger zerolog.Logger) *NoteService {
	return &NoteService{notes: notes, logger: logger}
}

// Create persists a note owned by the actor. No policy check: the actor
// always owns what they create.
func (s *NoteService) Create(ctx context.Context, actor *domain.User, title, content string) (*domain.Note, error) {
	if title == "" || content == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	note, err := s.notes.Create(ctx, &domain.Note{
		Title:     title,
		Content:   content,
		UserID:    actor.ID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", actor.ID).Msg("failed to create note")
		return nil, err
	}

	metrics.NoteOperationsTotal.WithLabelValues("create").Inc()
	return note, nil
}

// FindAll returns the actor's own notes. The owner scoping happens in the
// repository query.
func (s *NoteService) FindAll(ctx context.Context, actor *domain.User) ([]*domain.Note, error) {
	return s.notes.FindByOwner(ctx, actor.ID)
}

func (s *NoteService) FindOne(ctx context.Context, actor *domain.User, noteID int64) (*domain.Note, error) {
	note, err := s.loadAuthorized(ctx, actor, noteID)
	if err != nil {
		return nil, err
	}
	metrics.NoteOperationsTotal.WithLabelValues("read").Inc()
	return note, nil
}

// Update mutates title and content only; absent fields keep their value and
// the store refreshes updated_at.
func (s *NoteService) Update(ctx context.Context, actor *domain.User, noteID int64, input ports.UpdateNoteInput) (*domain.Note, error) {
	note, err := s.loadAuthorized(ctx, actor, noteID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, domain.ErrInvalidInput
		}
		note.Title = *input.Title
	}
	if input.Content != nil {
		note.Content = *input.Content
	}

	updated, err := s.notes.Update(ctx, note)
	if err != nil {
		s.logger.Error().Err(err).Int64("note_id", noteID).Msg("failed to update note")
		return nil, err
	}

	metrics.NoteOperationsTotal.WithLabelValues("update").Inc()
	return updated, nil
}

func (s *NoteService) Remove(ctx context.Context, actor *domain.User, noteID int64) error {
	if _, err := s.loadAuthorized(ctx, actor, noteID); err != nil {
		return err
	}

	if err := s.notes.Delete(ctx, noteID); err != nil {
		s.logger.Error().Err(err).Int64("note_id", noteID).Msg("failed to delete note")
		return err
	}

	metrics.NoteOperationsTotal.WithLabelValues("delete").Inc()
	return nil
}

// loadAuthorized fetches the note and applies the ownership policy. Existence
// is always checked first so a nonexistent id never leaks that it would have
// been forbidden.
func (s *NoteService) loadAuthorized(ctx context.Context, actor *domain.User, noteID int64) (*domain.Note, error) {
	note, err := s.notes.FindByID(ctx, noteID)
	if err != nil {
		return nil, err
	}

	if err := domain.RequireAccess(actor, note.UserID); err != nil {
		s.logger.Warn().
			Int64("actor_id", actor.ID).
			Int64("note_id", noteID).
			Int64("owner_id", note.UserID).
			Msg("note access denied")
		metrics.AccessDeniedTotal.WithLabelValues("note").Inc()
		return nil, err
	}
	return note, nil
}
