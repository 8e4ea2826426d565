package models

import "time"

// AdminToken is an issued admin panel token. Only the bcrypt hash is stored.
type AdminToken struct {
	ID        int64     `db:"id"`
	TokenHash string    `db:"token_hash"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
}
