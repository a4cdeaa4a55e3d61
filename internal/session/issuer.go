package session

import (
	"context"
	"errors"
)

// ErrInvalidToken covers unknown, expired, revoked and tampered tokens.
var ErrInvalidToken = errors.New("invalid session token")

// Issuer persists tokens and turns raw client tokens back into Tokens.
type Issuer interface {
	Issue(ctx context.Context, token Token) (string, error)
	Resolve(ctx context.Context, raw string) (*Token, error)
	Revoke(ctx context.Context, raw string) error
	// RevokeAll revokes every live token of subject.
	RevokeAll(ctx context.Context, subject string) error
}

type clientKey struct{}

// Client describes the device a session was issued to.
type Client struct {
	UserAgent string
	IPAddress string
}

func WithClient(ctx context.Context, c Client) context.Context {
	return context.WithValue(ctx, clientKey{}, c)
}

func ClientFromContext(ctx context.Context) (Client, bool) {
	c, ok := ctx.Value(clientKey{}).(Client)
	return c, ok
}
