package domain

import (
	"errors"
	"time"
)

// ErrNoteNotFound covers both "no such note" and "note owned by someone else".
// The two cases are deliberately a single error: repositories only expose
// owner-scoped lookups, so a caller can never learn that a foreign note exists.
var ErrNoteNotFound = errors.New("note not found")

// Note is the owned resource. Owner is the username of the account that
// created it and is set server-side, never from client input.
type Note struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Title     string    `json:"title" bson:"title"`
	Content   string    `json:"content" bson:"content"`
	Owner     string    `json:"-" bson:"owner"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
