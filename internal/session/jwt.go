package session

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Denylist is the revocation store consulted by JWTIssuer.
type Denylist interface {
	Deny(ctx context.Context, jti string, ttl time.Duration) error
	IsDenied(ctx context.Context, jti string) (bool, error)
	DenySubject(ctx context.Context, subject string, at time.Time, ttl time.Duration) error
	SubjectDeniedAt(ctx context.Context, subject string) (time.Time, bool, error)
}

type claims struct {
	Name    string    `json:"name,omitempty"`
	Email   string    `json:"email,omitempty"`
	Picture string    `json:"picture,omitempty"`
	User    *Identity `json:"user,omitempty"`
	jwt.RegisteredClaims
}

// JWTIssuer signs tokens as HS256 JWTs. Tokens are self-contained; sign-out
// is recorded in the denylist until the token would have expired anyway.
type JWTIssuer struct {
	secret   []byte
	maxTTL   time.Duration
	denylist Denylist
	now      func() time.Time
}

func NewJWTIssuer(secret string, maxTTL time.Duration, denylist Denylist) *JWTIssuer {
	return &JWTIssuer{
		secret:   []byte(secret),
		maxTTL:   maxTTL,
		denylist: denylist,
		now:      time.Now,
	}
}

func (i *JWTIssuer) Issue(_ context.Context, token Token) (string, error) {
	c := claims{
		Name:    token.Name,
		Email:   token.Email,
		Picture: token.Picture,
		User:    token.User,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        token.ID,
			Subject:   token.Subject,
			IssuedAt:  jwt.NewNumericDate(token.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(token.ExpiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

func (i *JWTIssuer) Resolve(ctx context.Context, raw string) (*Token, error) {
	c, err := i.parse(raw)
	if err != nil {
		return nil, err
	}

	denied, err := i.denylist.IsDenied(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	if denied {
		return nil, fmt.Errorf("%w: revoked", ErrInvalidToken)
	}

	if c.Subject != "" {
		deniedAt, ok, err := i.denylist.SubjectDeniedAt(ctx, c.Subject)
		if err != nil {
			return nil, err
		}
		if ok && !c.IssuedAt.Time.After(deniedAt) {
			return nil, fmt.Errorf("%w: revoked", ErrInvalidToken)
		}
	}

	return &Token{
		ID:        c.ID,
		Subject:   c.Subject,
		Name:      c.Name,
		Email:     c.Email,
		Picture:   c.Picture,
		User:      c.User,
		IssuedAt:  c.IssuedAt.Time,
		ExpiresAt: c.ExpiresAt.Time,
	}, nil
}

func (i *JWTIssuer) Revoke(ctx context.Context, raw string) error {
	c, err := i.parse(raw)
	if err != nil {
		return err
	}
	return i.denylist.Deny(ctx, c.ID, c.ExpiresAt.Time.Sub(i.now()))
}

func (i *JWTIssuer) RevokeAll(ctx context.Context, subject string) error {
	return i.denylist.DenySubject(ctx, subject, i.now(), i.maxTTL)
}

func (i *JWTIssuer) parse(raw string) (*claims, error) {
	c := &claims{}
	_, err := jwt.ParseWithClaims(raw, c,
		func(*jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if c.ID == "" || c.IssuedAt == nil {
		return nil, fmt.Errorf("%w: missing jti or iat", ErrInvalidToken)
	}
	return c, nil
}
