package ports

import (
	"context"

	"github.com/vaultkeep/notes-service/internal/core/domain"
)

// NoteRepository defines persistence operations for notes.
//
// Every single-note operation is owner-scoped: the query filters by id AND
// owner in one statement, so "exists but belongs to someone else" and "does
// not exist" are the same domain.ErrNoteNotFound. An unscoped lookup is
// expressed by passing an empty owner and is reserved for admin principals;
// no plain find-by-id primitive exists.
type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) (*domain.Note, error)
	// FindByIDAndOwner retrieves a note by id. When owner is non-empty the
	// query is additionally filtered by owner.
	FindByIDAndOwner(ctx context.Context, id, owner string) (*domain.Note, error)
	// ListByOwner returns all notes for owner; empty owner returns all notes.
	ListByOwner(ctx context.Context, owner string) ([]*domain.Note, error)
	// SearchByContent returns notes whose content contains query,
	// case-insensitively, scoped like ListByOwner.
	SearchByContent(ctx context.Context, query, owner string) ([]*domain.Note, error)
	// Update modifies title/content of the note matching id AND owner.
	Update(ctx context.Context, note *domain.Note, owner string) (*domain.Note, error)
	// Delete removes the note matching id AND owner.
	Delete(ctx context.Context, id, owner string) error
}
