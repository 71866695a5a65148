package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/vaultkeep/notes-service/internal/core/domain"
	"github.com/vaultkeep/notes-service/internal/core/hash"
	"github.com/vaultkeep/notes-service/internal/core/ports"
	"github.com/vaultkeep/notes-service/internal/core/token"
)

const minPasswordLength = 8

// AuthService implements registration and login on top of the user store,
// the password hasher, and the token codec. All collaborators are injected;
// the service holds no ambient state.
type AuthService struct {
	repo   ports.UserRepository
	hasher *hash.Hasher
	codec  *token.Codec
	audit  ports.AuditTrail
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, hasher *hash.Hasher, codec *token.Codec, audit ports.AuditTrail, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, codec: codec, audit: audit, logger: logger}
}

// Register creates an account with the default USER role. Username
// uniqueness is exact-match and case-sensitive.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if len(password) < minPasswordLength {
		s.record(ctx, username, "register", false, "policy_violation")
		return nil, domain.ErrPasswordPolicy
	}

	taken, err := s.repo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		s.record(ctx, username, "register", false, "username_taken")
		return nil, domain.ErrUserExists
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		PasswordHash: hashed,
		Roles:        []string{domain.RoleUser},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		// the unique index may still race the ExistsByUsername check
		if errors.Is(err, domain.ErrUserExists) {
			s.record(ctx, username, "register", false, "username_taken")
		}
		return nil, err
	}

	s.record(ctx, username, "register", true, "")
	s.logger.Info().Str("username", username).Msg("account registered")
	return created, nil
}

// Login verifies username/password and issues a token carrying the user's
// current role snapshot. Unknown usernames and wrong passwords produce the
// identical ErrInvalidCredentials so callers cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.record(ctx, username, "login", false, "invalid_credentials")
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.record(ctx, username, "login", false, "invalid_credentials")
		s.logger.Warn().Str("username", username).Msg("failed login attempt")
		return "", nil, domain.ErrInvalidCredentials
	}

	signed, err := s.codec.Issue(user.ID, user.Username, user.Roles, time.Now().UTC())
	if err != nil {
		return "", nil, err
	}

	s.record(ctx, username, "login", true, "")
	s.logger.Info().Str("username", username).Msg("login succeeded")
	return signed, user, nil
}

// ListUsers returns all registered accounts.
func (s *AuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

// record writes an audit event. Failures are logged and swallowed: the
// audit trail never changes an authentication decision.
func (s *AuthService) record(ctx context.Context, username, kind string, success bool, reason string) {
	if s.audit == nil {
		return
	}
	event := ports.AuthEvent{
		Username: username,
		Kind:     kind,
		Success:  success,
		Reason:   reason,
		At:       time.Now().UTC(),
	}
	if err := s.audit.Record(ctx, event); err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("audit record failed")
	}
}
