package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/notehub/notes-api/internal/api/middleware"
	"github.com/notehub/notes-api/internal/core/domain"
	"github.com/notehub/notes-api/internal/core/ports"
)

type stubUserService struct {
	createFn  func(ctx context.Context, input ports.RegisterInput) (*domain.User, error)
	findAllFn func(ctx context.Context) ([]*domain.User, error)
	findOneFn func(ctx context.Context, id int64) (*domain.User, error)
	updateFn  func(ctx context.Context, actor *domain.User, id int64, input ports.UpdateUserInput) (*domain.User, error)
	removeFn  func(ctx context.Context, actor *domain.User, id int64) error
}

func (s *stubUserService) Create(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	return s.createFn(ctx, input)
}

func (s *stubUserService) FindAll(ctx context.Context) ([]*domain.User, error) {
	return s.findAllFn(ctx)
}

func (s *stubUserService) FindOne(ctx context.Context, id int64) (*domain.User, error) {
	return s.findOneFn(ctx, id)
}

func (s *stubUserService) Update(ctx context.Context, actor *domain.User, id int64, input ports.UpdateUserInput) (*domain.User, error) {
	return s.updateFn(ctx, actor, id, input)
}

func (s *stubUserService) Remove(ctx context.Context, actor *domain.User, id int64) error {
	return s.removeFn(ctx, actor, id)
}

// The admin path is the one place a role may be set at creation time.
func TestUserHandler_Create_ForwardsRole(t *testing.T) {
	stub := &stubUserService{
		createFn: func(_ context.Context, input ports.RegisterInput) (*domain.User, error) {
			if input.Role != domain.RoleAdmin {
				t.Fatalf("expected role admin, got %q", input.Role)
			}
			return &domain.User{ID: 2, Name: input.Name, Email: input.Email, Role: input.Role}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newJSONContext(t, http.MethodPost, "/api/users", `{"name":"Root","email":"root@x.com","password":"p1","role":"admin"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestUserHandler_Create_RejectsUnknownRole(t *testing.T) {
	h := NewUserHandler(&stubUserService{
		createFn: func(_ context.Context, _ ports.RegisterInput) (*domain.User, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	})

	c, _ := newJSONContext(t, http.MethodPost, "/api/users", `{"name":"X","email":"x@x.com","password":"p1","role":"superuser"}`)
	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestUserHandler_Update_PartialFields(t *testing.T) {
	actor := &domain.User{ID: 1, Role: domain.RoleUser}
	stub := &stubUserService{
		updateFn: func(_ context.Context, a *domain.User, id int64, input ports.UpdateUserInput) (*domain.User, error) {
			if a.ID != 1 || id != 1 {
				t.Fatalf("unexpected actor/id: %d %d", a.ID, id)
			}
			if input.Name == nil || *input.Name != "Annette" {
				t.Fatalf("expected name pointer, got %v", input.Name)
			}
			if input.Email != nil || input.Password != nil || input.Role != nil {
				t.Fatalf("absent fields must stay nil: %+v", input)
			}
			return &domain.User{ID: 1, Name: *input.Name, Email: "a@x.com", Role: domain.RoleUser}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newJSONContext(t, http.MethodPatch, "/api/users/1", `{"name":"Annette"}`)
	c.SetParamNames("id")
	c.SetParamValues("1")
	middleware.SetCurrentUser(c, actor)

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_Delete(t *testing.T) {
	stub := &stubUserService{
		removeFn: func(_ context.Context, actor *domain.User, id int64) error {
			if actor.ID != 3 || id != 1 {
				t.Fatalf("unexpected args: %d %d", actor.ID, id)
			}
			return nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newJSONContext(t, http.MethodDelete, "/api/users/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	middleware.SetCurrentUser(c, &domain.User{ID: 3, Role: domain.RoleAdmin})

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "User deleted successfully") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestUserHandler_Get_NotFound(t *testing.T) {
	stub := &stubUserService{
		findOneFn: func(_ context.Context, _ int64) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	h := NewUserHandler(stub)

	c, _ := newJSONContext(t, http.MethodGet, "/api/users/9", "")
	c.SetParamNames("id")
	c.SetParamValues("9")

	if err := h.Get(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
