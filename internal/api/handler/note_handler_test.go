package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/vaultkeep/notes-service/internal/core/domain"
	"github.com/vaultkeep/notes-service/internal/core/ports"
)

type stubNoteService struct {
	createFn func(ctx context.Context, p *domain.Principal, input ports.NoteInput) (*domain.Note, error)
	getFn    func(ctx context.Context, p *domain.Principal, id string) (*domain.Note, error)
	listFn   func(ctx context.Context, p *domain.Principal) ([]*domain.Note, error)
	searchFn func(ctx context.Context, p *domain.Principal, query string) ([]*domain.Note, error)
	updateFn func(ctx context.Context, p *domain.Principal, id string, input ports.NoteInput) (*domain.Note, error)
	deleteFn func(ctx context.Context, p *domain.Principal, id string) error
}

func (s *stubNoteService) CreateNote(ctx context.Context, p *domain.Principal, input ports.NoteInput) (*domain.Note, error) {
	return s.createFn(ctx, p, input)
}

func (s *stubNoteService) GetNote(ctx context.Context, p *domain.Principal, id string) (*domain.Note, error) {
	return s.getFn(ctx, p, id)
}

func (s *stubNoteService) ListNotes(ctx context.Context, p *domain.Principal) ([]*domain.Note, error) {
	return s.listFn(ctx, p)
}

func (s *stubNoteService) SearchNotes(ctx context.Context, p *domain.Principal, query string) ([]*domain.Note, error) {
	return s.searchFn(ctx, p, query)
}

func (s *stubNoteService) UpdateNote(ctx context.Context, p *domain.Principal, id string, input ports.NoteInput) (*domain.Note, error) {
	return s.updateFn(ctx, p, id, input)
}

func (s *stubNoteService) DeleteNote(ctx context.Context, p *domain.Principal, id string) error {
	return s.deleteFn(ctx, p, id)
}

func newNoteTestContext(t *testing.T, method, path, body string, principal *domain.Principal) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if principal != nil {
		c.Set("principal", principal)
	}
	return c, rec
}

var aliceP = &domain.Principal{UserID: "u1", Username: "alice", Roles: []string{domain.RoleUser}}

func TestNoteHandler_Create(t *testing.T) {
	stub := &stubNoteService{
		createFn: func(_ context.Context, p *domain.Principal, input ports.NoteInput) (*domain.Note, error) {
			if p.Username != "alice" {
				t.Fatalf("wrong principal: %+v", p)
			}
			if input.Title != "groceries" || input.Content != "milk" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Note{ID: "note-1", Title: input.Title, Content: input.Content, Owner: p.Username}, nil
		},
	}
	h := NewNoteHandler(stub)

	c, rec := newNoteTestContext(t, http.MethodPost, "/notes", `{"title":"groceries","content":"milk"}`, aliceP)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "note-1" || resp["title"] != "groceries" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, leaked := resp["owner"]; leaked {
		t.Fatalf("owner must not appear in responses")
	}
}

func TestNoteHandler_Create_MissingPrincipal(t *testing.T) {
	h := NewNoteHandler(&stubNoteService{
		createFn: func(_ context.Context, _ *domain.Principal, _ ports.NoteInput) (*domain.Note, error) {
			t.Fatalf("service must not be called without a principal")
			return nil, nil
		},
	})

	c, _ := newNoteTestContext(t, http.MethodPost, "/notes", `{"title":"t","content":"c"}`, nil)
	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestNoteHandler_Get_NotFound(t *testing.T) {
	h := NewNoteHandler(&stubNoteService{
		getFn: func(_ context.Context, _ *domain.Principal, _ string) (*domain.Note, error) {
			return nil, domain.ErrNoteNotFound
		},
	})

	c, _ := newNoteTestContext(t, http.MethodGet, "/notes/abc", "", aliceP)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	if err := h.Get(c); !errors.Is(err, domain.ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound to propagate, got %v", err)
	}
}

func TestNoteHandler_Search_PassesQuery(t *testing.T) {
	h := NewNoteHandler(&stubNoteService{
		searchFn: func(_ context.Context, p *domain.Principal, query string) ([]*domain.Note, error) {
			if query != "milk" {
				t.Fatalf("unexpected query %q", query)
			}
			return []*domain.Note{{ID: "note-1", Title: "groceries", Content: "milk", Owner: p.Username}}, nil
		},
	})

	c, rec := newNoteTestContext(t, http.MethodGet, "/notes/search?query=milk", "", aliceP)
	if err := h.Search(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0]["id"] != "note-1" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestNoteHandler_Delete(t *testing.T) {
	deleted := ""
	h := NewNoteHandler(&stubNoteService{
		deleteFn: func(_ context.Context, _ *domain.Principal, id string) error {
			deleted = id
			return nil
		},
	})

	c, rec := newNoteTestContext(t, http.MethodDelete, "/notes/note-1", "", aliceP)
	c.SetParamNames("id")
	c.SetParamValues("note-1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if deleted != "note-1" {
		t.Fatalf("wrong id deleted: %q", deleted)
	}
}

func TestNoteHandler_Update_Validation(t *testing.T) {
	h := NewNoteHandler(&stubNoteService{
		updateFn: func(_ context.Context, _ *domain.Principal, _ string, _ ports.NoteInput) (*domain.Note, error) {
			t.Fatalf("service must not be called on validation failure")
			return nil, nil
		},
	})

	c, _ := newNoteTestContext(t, http.MethodPut, "/notes/note-1", `{"title":"","content":""}`, aliceP)
	c.SetParamNames("id")
	c.SetParamValues("note-1")

	err := h.Update(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
