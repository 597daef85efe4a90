package ports

import (
	"context"

	"github.com/notehub/notes-api/internal/core/domain"
)

// RegisterInput carries the data needed to create an account. Role is only
// honored on the trusted admin path; the public registration handler leaves
// it empty and the service defaults it to "user".
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// AuthService implements registration and credential verification.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login verifies credentials and returns a signed session token.
	// The caller is responsible for placing it in an http-only cookie.
	Login(ctx context.Context, email, password string) (string, error)
}

// SessionResolver turns the raw cookie value into the authenticated user.
// It performs verification and lookup only; ownership decisions stay with
// domain.RequireAccess at the call sites.
type SessionResolver interface {
	Resolve(ctx context.Context, cookieValue string) (*domain.User, error)
}
