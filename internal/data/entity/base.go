package entity

import (
	"time"

	"github.com/google/uuid"
)

// Base holds the key and audit columns of rows that change after insert.
type Base struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// NewBase stamps a fresh random id and both timestamps.
func NewBase(now time.Time) Base {
	return Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

// Issued heads append-only rows that are revoked rather than updated.
type Issued struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}
