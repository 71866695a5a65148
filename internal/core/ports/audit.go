package ports

import (
	"context"
	"time"
)

// AuthEvent records one authentication attempt for the audit trail.
// It carries enough context to investigate an attack (who, what, when) and
// never any secret material.
type AuthEvent struct {
	Username string
	Kind     string // "login" or "register"
	Success  bool
	Reason   string // short failure class, e.g. "invalid_credentials"
	At       time.Time
}

// AuditTrail persists authentication events. Recording is best-effort: a
// failing trail must never block or fail the authentication decision itself.
type AuditTrail interface {
	Record(ctx context.Context, event AuthEvent) error
	// Recent returns up to limit most recent events for username, newest first.
	Recent(ctx context.Context, username string, limit int) ([]AuthEvent, error)
}
