package service

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/notehub/notes-api/internal/api/metrics"
	"github.com/notehub/notes-api/internal/core/domain"
	"github.com/notehub/notes-api/internal/core/ports"
)

// SessionService resolves the jwt cookie value to a full user record. It only
// verifies and looks up; ownership decisions stay with domain.RequireAccess.
type SessionService struct {
	users     ports.UserRepository
	cache     ports.UserCache
	jwtSecret string
	logger    zerolog.Logger
}

// NewSessionService builds a resolver. cache may be nil; lookups then always
// hit the repository.
func NewSessionService(users ports.UserRepository, cache ports.UserCache, jwtSecret string, logger zerolog.Logger) *SessionService {
	return &SessionService{users: users, cache: cache, jwtSecret: jwtSecret, logger: logger}
}

// Resolve verifies the token and returns the user it identifies. Every failure
// collapses to ErrUnauthenticated: a missing cookie, a bad signature, an
// expired token, and a token whose user has since been deleted all look the
// same to the client.
func (s *SessionService) Resolve(ctx context.Context, cookieValue string) (*domain.User, error) {
	if cookieValue == "" {
		metrics.SessionsResolvedTotal.WithLabelValues("missing").Inc()
		return nil, domain.ErrUnauthenticated
	}

	userID, err := s.verifyToken(cookieValue)
	if err != nil {
		s.logger.Debug().Err(err).Msg("session token rejected")
		metrics.SessionsResolvedTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrUnauthenticated
	}

	user, err := s.lookupUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Stale token: the account was deleted after issuance.
			s.logger.Warn().Int64("user_id", userID).Msg("session token references deleted user")
			metrics.SessionsResolvedTotal.WithLabelValues("stale").Inc()
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}

	metrics.SessionsResolvedTotal.WithLabelValues("success").Inc()
	return user, nil
}

func (s *SessionService) verifyToken(tokenValue string) (int64, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(tokenValue, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return 0, domain.ErrUnauthenticated
	}

	id, ok := claims["id"].(float64)
	if !ok {
		return 0, domain.ErrUnauthenticated
	}
	return int64(id), nil
}

// lookupUser consults the cache first and falls back to the repository.
// Cache failures are logged and ignored; they must not fail the request.
func (s *SessionService) lookupUser(ctx context.Context, id int64) (*domain.User, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err != nil {
			s.logger.Warn().Err(err).Int64("user_id", id).Msg("user cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, user); err != nil {
			s.logger.Warn().Err(err).Int64("user_id", id).Msg("user cache write failed")
		}
	}
	return user, nil
}
