package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/notehub/notes-api/internal/core/domain"
)

type stubResolver struct {
	user *domain.User
	err  error
	seen string
}

func (s *stubResolver) Resolve(_ context.Context, cookieValue string) (*domain.User, error) {
	s.seen = cookieValue
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func newSessionContext(t *testing.T, cookie *http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSession_InjectsUser(t *testing.T) {
	resolver := &stubResolver{user: &domain.User{ID: 1, Name: "Ann", Role: domain.RoleUser}}
	c, _ := newSessionContext(t, &http.Cookie{Name: SessionCookie, Value: "token-value"})

	called := false
	handler := Session(resolver)(func(c echo.Context) error {
		called = true
		user := CurrentUser(c)
		if user == nil || user.ID != 1 {
			t.Fatalf("expected injected user, got %+v", user)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if resolver.seen != "token-value" {
		t.Fatalf("resolver saw %q", resolver.seen)
	}
}

func TestSession_MissingCookie(t *testing.T) {
	resolver := &stubResolver{err: domain.ErrUnauthenticated}
	c, _ := newSessionContext(t, nil)

	handler := Session(resolver)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestSession_InvalidToken(t *testing.T) {
	resolver := &stubResolver{err: domain.ErrUnauthenticated}
	c, _ := newSessionContext(t, &http.Cookie{Name: SessionCookie, Value: "bad"})

	handler := Session(resolver)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
