package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/notehub/notes-api/internal/core/domain"
	"github.com/notehub/notes-api/internal/core/ports"
)

type stubNoteRepo struct {
	notes  map[int64]*domain.Note
	nextID int64
}

func newStubNoteRepo() *stubNoteRepo {
	return &stubNoteRepo{notes: make(map[int64]*domain.Note)}
}

func cloneNote(n *domain.Note) *domain.Note {
	if n == nil {
		return nil
	}
	clone := *n
	return &clone
}

func (r *stubNoteRepo) Create(_ context.Context, note *domain.Note) (*domain.Note, error) {
	r.nextID++
	copy := cloneNote(note)
	copy.ID = r.nextID
	r.notes[copy.ID] = cloneNote(copy)
	return cloneNote(copy), nil
}

func (r *stubNoteRepo) FindByID(_ context.Context, id int64) (*domain.Note, error) {
	n, ok := r.notes[id]
	if !ok {
		return nil, domain.ErrNoteNotFound
	}
	return cloneNote(n), nil
}

func (r *stubNoteRepo) FindByOwner(_ context.Context, ownerID int64) ([]*domain.Note, error) {
	out := make([]*domain.Note, 0)
	for id := int64(1); id <= r.nextID; id++ {
		if n, ok := r.notes[id]; ok && n.UserID == ownerID {
			out = append(out, cloneNote(n))
		}
	}
	return out, nil
}

func (r *stubNoteRepo) Update(_ context.Context, note *domain.Note) (*domain.Note, error) {
	if _, ok := r.notes[note.ID]; !ok {
		return nil, domain.ErrNoteNotFound
	}
	r.notes[note.ID] = cloneNote(note)
	return cloneNote(note), nil
}

func (r *stubNoteRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.notes[id]; !ok {
		return domain.ErrNoteNotFound
	}
	delete(r.notes, id)
	return nil
}

func (r *stubNoteRepo) DeleteByOwner(_ context.Context, ownerID int64) error {
	for id, n := range r.notes {
		if n.UserID == ownerID {
			delete(r.notes, id)
		}
	}
	return nil
}

var (
	ann   = &domain.User{ID: 1, Name: "Ann", Email: "a@x.com", Role: domain.RoleUser}
	bob   = &domain.User{ID: 2, Name: "Bob", Email: "b@x.com", Role: domain.RoleUser}
	admin = &domain.User{ID: 3, Name: "Root", Email: "root@x.com", Role: domain.RoleAdmin}
)

func newTestNoteService(repo *stubNoteRepo) *NoteService {
	return NewNoteService(repo, zerolog.Nop())
}

func strptr(s string) *string { return &s }

func TestNoteService_Create(t *testing.T) {
	svc := newTestNoteService(newStubNoteRepo())

	note, err := svc.Create(context.Background(), ann, "title", "content")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if note.UserID != ann.ID {
		t.Fatalf("expected owner %d, got %d", ann.ID, note.UserID)
	}
	if note.ID == 0 {
		t.Fatalf("expected assigned id")
	}
}

func TestNoteService_Create_Validation(t *testing.T) {
	repo := newStubNoteRepo()
	svc := newTestNoteService(repo)

	if _, err := svc.Create(context.Background(), ann, "", "content"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("empty title: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Create(context.Background(), ann, "title", ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("empty content: expected ErrInvalidInput, got %v", err)
	}
	if len(repo.notes) != 0 {
		t.Fatalf("expected no store writes, found %d notes", len(repo.notes))
	}
}

func TestNoteService_FindAll_ScopedToOwner(t *testing.T) {
	repo := newStubNoteRepo()
	svc := newTestNoteService(repo)

	if _, err := svc.Create(context.Background(), ann, "ann 1", "c"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(context.Background(), bob, "bob 1", "c"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(context.Background(), ann, "ann 2", "c"); err != nil {
		t.Fatalf("create: %v", err)
	}

	notes, err := svc.FindAll(context.Background(), ann)
	if err != nil {
		t.Fatalf("findAll failed: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(notes))
	}
	for _, n := range notes {
		if n.UserID != ann.ID {
			t.Fatalf("note %d not owned by actor", n.ID)
		}
	}
}

func TestNoteService_Ownership(t *testing.T) {
	repo := newStubNoteRepo()
	svc := newTestNoteService(repo)

	note, err := svc.Create(context.Background(), ann, "private", "c")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// A non-owner user is denied on every targeted operation.
	if _, err := svc.FindOne(context.Background(), bob, note.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("findOne: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Update(context.Background(), bob, note.ID, ports.UpdateNoteInput{Title: strptr("x")}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("update: expected ErrForbidden, got %v", err)
	}
	if err := svc.Remove(context.Background(), bob, note.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("remove: expected ErrForbidden, got %v", err)
	}

	// An admin bypasses the ownership check on any note.
	if _, err := svc.FindOne(context.Background(), admin, note.ID); err != nil {
		t.Fatalf("admin findOne failed: %v", err)
	}
	if err := svc.Remove(context.Background(), admin, note.ID); err != nil {
		t.Fatalf("admin remove failed: %v", err)
	}
}

// A nonexistent note must never reveal whether it would have been forbidden.
func TestNoteService_NotFoundBeforeForbidden(t *testing.T) {
	svc := newTestNoteService(newStubNoteRepo())

	for _, actor := range []*domain.User{ann, bob, admin} {
		if _, err := svc.FindOne(context.Background(), actor, 99); !errors.Is(err, domain.ErrNoteNotFound) {
			t.Fatalf("actor %d: expected ErrNoteNotFound, got %v", actor.ID, err)
		}
		if err := svc.Remove(context.Background(), actor, 99); !errors.Is(err, domain.ErrNoteNotFound) {
			t.Fatalf("actor %d: expected ErrNoteNotFound, got %v", actor.ID, err)
		}
	}
}

func TestNoteService_FindOne_Idempotent(t *testing.T) {
	svc := newTestNoteService(newStubNoteRepo())

	created, err := svc.Create(context.Background(), ann, "title", "content")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	first, err := svc.FindOne(context.Background(), ann, created.ID)
	if err != nil {
		t.Fatalf("findOne: %v", err)
	}
	second, err := svc.FindOne(context.Background(), ann, created.ID)
	if err != nil {
		t.Fatalf("findOne: %v", err)
	}
	if *first != *second {
		t.Fatalf("repeated reads differ: %+v vs %+v", first, second)
	}
}

func TestNoteService_Update_PartialAndImmutableOwner(t *testing.T) {
	repo := newStubNoteRepo()
	svc := newTestNoteService(repo)

	note, err := svc.Create(context.Background(), ann, "title", "content")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(context.Background(), ann, note.ID, ports.UpdateNoteInput{Title: strptr("new title")})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Title != "new title" {
		t.Fatalf("expected new title, got %q", updated.Title)
	}
	if updated.Content != "content" {
		t.Fatalf("absent field must keep prior value, got %q", updated.Content)
	}
	if updated.UserID != ann.ID {
		t.Fatalf("owner must be immutable, got %d", updated.UserID)
	}

	if _, err := svc.Update(context.Background(), ann, note.ID, ports.UpdateNoteInput{Title: strptr("")}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("empty title: expected ErrInvalidInput, got %v", err)
	}
}
