package ports

import (
	"context"

	"github.com/vaultkeep/notes-service/internal/core/domain"
)

// NoteInput carries client-supplied note fields. Owner is never part of the
// input; it comes from the authenticated principal.
type NoteInput struct {
	Title   string
	Content string
}

// NoteService defines use-case operations for notes. Every method takes the
// request's Principal explicitly; there is no ambient identity.
type NoteService interface {
	CreateNote(ctx context.Context, principal *domain.Principal, input NoteInput) (*domain.Note, error)
	GetNote(ctx context.Context, principal *domain.Principal, id string) (*domain.Note, error)
	ListNotes(ctx context.Context, principal *domain.Principal) ([]*domain.Note, error)
	SearchNotes(ctx context.Context, principal *domain.Principal, query string) ([]*domain.Note, error)
	UpdateNote(ctx context.Context, principal *domain.Principal, id string, input NoteInput) (*domain.Note, error)
	DeleteNote(ctx context.Context, principal *domain.Principal, id string) error
}
