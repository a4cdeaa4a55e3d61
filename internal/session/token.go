// Package session turns an authenticated identity into a session token and
// a token into the session the client sees. Minting and projecting are pure
// functions; persistence of the raw token lives behind Issuer.
package session

import (
	"time"

	"github.com/google/uuid"
)

// Identity is the authenticated user without the password hash.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role,omitempty"`
	Image string `json:"image,omitempty"`
}

// Token is the server-held representation of an authenticated subject.
type Token struct {
	ID        string
	Subject   string
	Name      string
	Email     string
	Picture   string
	User      *Identity
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Session is what the client is allowed to see.
type Session struct {
	User    User      `json:"user"`
	Expires time.Time `json:"expires"`
}

type User struct {
	ID    string `json:"id,omitempty"`
	Role  string `json:"role,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image,omitempty"`
}

// MintToken builds the token issued at sign-in. The identity is embedded
// whole so later reads never go back to the user store.
func MintToken(identity Identity, now time.Time, ttl time.Duration) Token {
	user := identity
	return Token{
		ID:        uuid.NewString(),
		Subject:   identity.ID,
		Name:      identity.Name,
		Email:     identity.Email,
		Picture:   identity.Image,
		User:      &user,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}
}

// Refresh returns a copy of token with a new id and a later expiry. The
// embedded identity is carried over untouched.
func Refresh(token Token, now time.Time, ttl time.Duration) Token {
	refreshed := token
	if token.User != nil {
		user := *token.User
		refreshed.User = &user
	}
	refreshed.ID = uuid.NewString()
	refreshed.IssuedAt = now
	refreshed.ExpiresAt = now.Add(ttl)
	return refreshed
}

// ProjectSession builds the client-visible session. ID and Role are only
// exposed when the token carries both a subject and an embedded user with a
// role; otherwise the default profile fields are returned alone.
func ProjectSession(token Token) Session {
	s := Session{
		User: User{
			Name:  token.Name,
			Email: token.Email,
			Image: token.Picture,
		},
		Expires: token.ExpiresAt,
	}

	if token.User != nil && token.User.Role != "" && token.Subject != "" {
		s.User.ID = token.Subject
		s.User.Role = token.User.Role
	}

	return s
}
