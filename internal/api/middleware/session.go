package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/notehub/notes-api/internal/core/domain"
	"github.com/notehub/notes-api/internal/core/ports"
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "jwt"

// userContextKey is where the resolved user is stored on the echo context.
const userContextKey = "user"

// Session resolves the jwt cookie into a full user record and injects it into
// the request context. Requests without a valid session are rejected with 401
// before reaching any handler.
func Session(resolver ports.SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
			}

			user, err := resolver.Resolve(c.Request().Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, domain.ErrUnauthenticated) {
					return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
				}
				return err
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user injected by Session, or nil when the
// middleware did not run.
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(userContextKey).(*domain.User)
	return user
}

// SetCurrentUser stores a user on the context. Exposed for handler tests.
func SetCurrentUser(c echo.Context, user *domain.User) {
	c.Set(userContextKey, user)
}
