package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/vaultkeep/notes-service/internal/core/domain"
	"github.com/vaultkeep/notes-service/internal/core/ports"
)

// NoteService implements note use-cases with the ownership gate built in.
// Every lookup goes through the repository scoped by id AND owner in a
// single query; ADMIN principals are the only ones issued an unscoped query.
type NoteService struct {
	repo   ports.NoteRepository
	logger zerolog.Logger
}

func NewNoteService(repo ports.NoteRepository, logger zerolog.Logger) *NoteService {
	return &NoteService{repo: repo, logger: logger}
}

// ownerScope returns the owner filter for a principal: admins see every
// note (empty filter), everyone else only their own.
func ownerScope(principal *domain.Principal) string {
	if principal.IsAdmin() {
		return ""
	}
	return principal.Username
}

// CreateNote stores a new note owned by the principal. The owner comes from
// the verified token, never from the request body.
func (s *NoteService) CreateNote(ctx context.Context, principal *domain.Principal, input ports.NoteInput) (*domain.Note, error) {
	now := time.Now().UTC()
	note := &domain.Note{
		Title:     input.Title,
		Content:   input.Content,
		Owner:     principal.Username,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, note)
	if err != nil {
		s.logger.Error().Err(err).Str("owner", principal.Username).Msg("failed to create note")
		return nil, err
	}

	s.logger.Info().Str("note_id", created.ID).Str("owner", principal.Username).Msg("note created")
	return created, nil
}

// GetNote fetches a single note. A note owned by someone else fails exactly
// like a nonexistent one.
func (s *NoteService) GetNote(ctx context.Context, principal *domain.Principal, id string) (*domain.Note, error) {
	return s.repo.FindByIDAndOwner(ctx, id, ownerScope(principal))
}

// ListNotes returns the principal's notes; admins get every note.
func (s *NoteService) ListNotes(ctx context.Context, principal *domain.Principal) ([]*domain.Note, error) {
	return s.repo.ListByOwner(ctx, ownerScope(principal))
}

// SearchNotes returns the principal's notes whose content contains query,
// case-insensitively. The match runs inside the store with the query passed
// as data, never spliced into a query string.
func (s *NoteService) SearchNotes(ctx context.Context, principal *domain.Principal, query string) ([]*domain.Note, error) {
	return s.repo.SearchByContent(ctx, query, ownerScope(principal))
}

// UpdateNote modifies title and content of an owned note.
func (s *NoteService) UpdateNote(ctx context.Context, principal *domain.Principal, id string, input ports.NoteInput) (*domain.Note, error) {
	note := &domain.Note{
		ID:        id,
		Title:     input.Title,
		Content:   input.Content,
		UpdatedAt: time.Now().UTC(),
	}
	return s.repo.Update(ctx, note, ownerScope(principal))
}

// DeleteNote removes an owned note.
func (s *NoteService) DeleteNote(ctx context.Context, principal *domain.Principal, id string) error {
	if err := s.repo.Delete(ctx, id, ownerScope(principal)); err != nil {
		return err
	}
	s.logger.Info().Str("note_id", id).Str("username", principal.Username).Msg("note deleted")
	return nil
}
