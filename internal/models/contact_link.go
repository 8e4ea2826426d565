package models

import "time"

// ContactLink is the chat-group URL buyers are sent to. Only the most recently
// written link is active.
type ContactLink struct {
	ID        int64     `db:"id" json:"id,omitempty"`
	Link      string    `db:"link" json:"link"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"-"`
}
