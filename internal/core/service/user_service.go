package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/notehub/notes-api/internal/api/metrics"
	"github.com/notehub/notes-api/internal/core/domain"
	"github.com/notehub/notes-api/internal/core/ports"
)

// UserService implements account CRUD. Creation runs through the AuthService
// hashing path; targeted reads and mutations apply the ownership policy with
// the target's own id as the owner id.
type UserService struct {
	users  ports.UserRepository
	notes  ports.NoteRepository
	auth   ports.AuthService
	cache  ports.UserCache
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, notes ports.NoteRepository, auth ports.AuthService, cache ports.UserCache, logger zerolog.Logger) *UserService {
	return &UserService{users: users, notes: notes, auth: auth, cache: cache, logger: logger}
}

// Create registers an account on behalf of an admin. Unlike the public
// registration endpoint this path may set the role explicitly.
func (s *UserService) Create(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	return s.auth.Register(ctx, input)
}

func (s *UserService) FindAll(ctx context.Context) ([]*domain.User, error) {
	return s.users.FindAll(ctx)
}

func (s *UserService) FindOne(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// Update applies a partial account update. The target must exist before the
// policy runs, and the policy compares against the target's id: a user may
// update themselves, an admin may update anyone.
func (s *UserService) Update(ctx context.Context, actor *domain.User, id int64, input ports.UpdateUserInput) (*domain.User, error) {
	target, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := domain.RequireAccess(actor, target.ID); err != nil {
		metrics.AccessDeniedTotal.WithLabelValues("user").Inc()
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		target.Name = *input.Name
	}
	if input.Email != nil {
		if *input.Email == "" {
			return nil, domain.ErrInvalidInput
		}
		target.Email = *input.Email
	}
	if input.Password != nil {
		if *input.Password == "" {
			return nil, domain.ErrInvalidInput
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcryptCost)
		if err != nil {
			return nil, err
		}
		target.PasswordHash = string(hash)
	}
	if input.Role != nil {
		// Role changes are an explicit elevation path, admin only.
		if !actor.IsAdmin() {
			metrics.AccessDeniedTotal.WithLabelValues("user").Inc()
			return nil, domain.ErrForbidden
		}
		if !domain.ValidRole(*input.Role) {
			return nil, domain.ErrInvalidInput
		}
		target.Role = *input.Role
	}
	target.UpdatedAt = time.Now().UTC()

	updated, err := s.users.Update(ctx, target)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, domain.ErrEmailTaken
		}
		s.logger.Error().Err(err).Int64("user_id", id).Msg("failed to update user")
		return nil, err
	}

	s.invalidate(ctx, id)
	return updated, nil
}

// Remove deletes the account and cascades deletion of its notes. Ownership is
// exclusive, so the notes go first; a note must never outlive its owner.
func (s *UserService) Remove(ctx context.Context, actor *domain.User, id int64) error {
	target, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := domain.RequireAccess(actor, target.ID); err != nil {
		metrics.AccessDeniedTotal.WithLabelValues("user").Inc()
		return err
	}

	if err := s.notes.DeleteByOwner(ctx, target.ID); err != nil {
		s.logger.Error().Err(err).Int64("user_id", id).Msg("failed to cascade note deletion")
		return err
	}
	if err := s.users.Delete(ctx, target.ID); err != nil {
		s.logger.Error().Err(err).Int64("user_id", id).Msg("failed to delete user")
		return err
	}

	s.invalidate(ctx, id)
	s.logger.Info().Int64("user_id", id).Int64("actor_id", actor.ID).Msg("user removed")
	return nil
}

// invalidate drops any cached copy of the user. Best effort: a failure here
// only shortens nothing, the cache entry still expires on its TTL.
func (s *UserService) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn().Err(err).Int64("user_id", id).Msg("user cache invalidation failed")
	}
}
