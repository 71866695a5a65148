package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vaultkeep/notes-service/internal/core/ports"
)

const (
	auditTTL        = 24 * time.Hour
	auditMaxEntries = 100
)

// AuditTrail keeps a rolling, TTL'd log of authentication attempts per
// username, backed by Redis lists. Key format: audit:<username>
type AuditTrail struct {
	client *redis.Client
}

// NewAuditTrail creates an AuditTrail wrapping the given Redis client.
func NewAuditTrail(client *redis.Client) *AuditTrail {
	return &AuditTrail{client: client}
}

type auditEntry struct {
	Kind    string `json:"kind"`
	Success bool   `json:"success"`
	Reason  string `json:"reason,omitempty"`
	At      int64  `json:"at"`
}

// Record appends the event to the user's trail, trims it to the last
// auditMaxEntries, and refreshes the 24h expiry.
func (a *AuditTrail) Record(ctx context.Context, event ports.AuthEvent) error {
	raw, err := json.Marshal(auditEntry{
		Kind:    event.Kind,
		Success: event.Success,
		Reason:  event.Reason,
		At:      event.At.Unix(),
	})
	if err != nil {
		return fmt.Errorf("audit marshal: %w", err)
	}

	key := a.key(event.Username)
	pipe := a.client.TxPipeline()
	pipe.LPush(ctx, key, raw)
	pipe.LTrim(ctx, key, 0, auditMaxEntries-1)
	pipe.Expire(ctx, key, auditTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("audit record: %w", err)
	}
	return nil
}

// Recent returns up to limit events for username, newest first.
func (a *AuditTrail) Recent(ctx context.Context, username string, limit int) ([]ports.AuthEvent, error) {
	if limit <= 0 || limit > auditMaxEntries {
		limit = auditMaxEntries
	}

	raws, err := a.client.LRange(ctx, a.key(username), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("audit read: %w", err)
	}

	events := make([]ports.AuthEvent, 0, len(raws))
	for _, raw := range raws {
		var e auditEntry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			continue // skip entries written by incompatible versions
		}
		events = append(events, ports.AuthEvent{
			Username: username,
			Kind:     e.Kind,
			Success:  e.Success,
			Reason:   e.Reason,
			At:       time.Unix(e.At, 0).UTC(),
		})
	}
	return events, nil
}

func (a *AuditTrail) key(username string) string {
	return fmt.Sprintf("audit:%s", username)
}
