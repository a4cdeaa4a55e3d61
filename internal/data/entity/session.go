package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is a server-side session row. Name, Email and Role are a snapshot
// of the identity taken when the session was issued.
type Session struct {
	Issued
	UserID    uuid.UUID  `db:"user_id"`
	Token     uuid.UUID  `db:"token"`
	Name      string     `db:"name"`
	Email     string     `db:"email"`
	Role      UserRole   `db:"role"`
	UserAgent *string    `db:"user_agent"`
	IPAddress *string    `db:"ip_address"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}
