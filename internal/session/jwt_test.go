package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type memDenylist struct {
	tokens   map[string]time.Duration
	subjects map[string]time.Time
	err      error
}

func newMemDenylist() *memDenylist {
	return &memDenylist{
		tokens:   make(map[string]time.Duration),
		subjects: make(map[string]time.Time),
	}
}

func (d *memDenylist) Deny(_ context.Context, jti string, ttl time.Duration) error {
	d.tokens[jti] = ttl
	return nil
}

func (d *memDenylist) IsDenied(_ context.Context, jti string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	_, ok := d.tokens[jti]
	return ok, nil
}

func (d *memDenylist) DenySubject(_ context.Context, subject string, at time.Time, _ time.Duration) error {
	d.subjects[subject] = at
	return nil
}

func (d *memDenylist) SubjectDeniedAt(_ context.Context, subject string) (time.Time, bool, error) {
	at, ok := d.subjects[subject]
	return at, ok, nil
}

func newTestJWTIssuer(denylist Denylist, now time.Time) *JWTIssuer {
	i := NewJWTIssuer("secret", 24*time.Hour, denylist)
	i.now = func() time.Time { return now }
	return i
}

func TestJWTIssuer_RoundTrip(t *testing.T) {
	i := newTestJWTIssuer(newMemDenylist(), testNow)
	tok := MintToken(testIdentity(), testNow, time.Hour)

	raw, err := i.Issue(context.Background(), tok)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	got, err := i.Resolve(context.Background(), raw)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.ID != tok.ID || got.Subject != tok.Subject || got.Email != tok.Email {
		t.Fatalf("claims lost: %+v", got)
	}
	if got.User == nil || *got.User != *tok.User {
		t.Fatalf("embedded user lost: %+v", got.User)
	}
	if !got.ExpiresAt.Equal(tok.ExpiresAt) {
		t.Fatalf("expiry changed: %v", got.ExpiresAt)
	}
}

func TestJWTIssuer_Expired(t *testing.T) {
	tok := MintToken(testIdentity(), testNow, time.Hour)
	raw, err := newTestJWTIssuer(newMemDenylist(), testNow).Issue(context.Background(), tok)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	later := newTestJWTIssuer(newMemDenylist(), testNow.Add(2*time.Hour))
	if _, err := later.Resolve(context.Background(), raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTIssuer_WrongSecret(t *testing.T) {
	tok := MintToken(testIdentity(), testNow, time.Hour)
	raw, err := newTestJWTIssuer(newMemDenylist(), testNow).Issue(context.Background(), tok)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	other := NewJWTIssuer("other", time.Hour, newMemDenylist())
	other.now = func() time.Time { return testNow }
	if _, err := other.Resolve(context.Background(), raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTIssuer_RejectsOtherAlgorithms(t *testing.T) {
	c := jwt.RegisteredClaims{
		ID:        "x",
		IssuedAt:  jwt.NewNumericDate(testNow),
		ExpiresAt: jwt.NewNumericDate(testNow.Add(time.Hour)),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, c).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	i := newTestJWTIssuer(newMemDenylist(), testNow)
	if _, err := i.Resolve(context.Background(), raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTIssuer_Garbage(t *testing.T) {
	i := newTestJWTIssuer(newMemDenylist(), testNow)
	if _, err := i.Resolve(context.Background(), "not.a.jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTIssuer_Revoke(t *testing.T) {
	denylist := newMemDenylist()
	i := newTestJWTIssuer(denylist, testNow)
	tok := MintToken(testIdentity(), testNow, time.Hour)

	raw, err := i.Issue(context.Background(), tok)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if err := i.Revoke(context.Background(), raw); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	if ttl := denylist.tokens[tok.ID]; ttl != time.Hour {
		t.Fatalf("expected denylist ttl of remaining lifetime, got %v", ttl)
	}
	if _, err := i.Resolve(context.Background(), raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected revoked token to be rejected, got %v", err)
	}
}

func TestJWTIssuer_RevokeAll(t *testing.T) {
	denylist := newMemDenylist()
	i := newTestJWTIssuer(denylist, testNow)

	raw, err := i.Issue(context.Background(), MintToken(testIdentity(), testNow, time.Hour))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	i.now = func() time.Time { return testNow.Add(time.Minute) }
	if err := i.RevokeAll(context.Background(), "user-1"); err != nil {
		t.Fatalf("revoke all: %v", err)
	}
	if _, err := i.Resolve(context.Background(), raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected old token to be rejected, got %v", err)
	}

	fresh := testNow.Add(2 * time.Minute)
	i.now = func() time.Time { return fresh }
	newRaw, err := i.Issue(context.Background(), MintToken(testIdentity(), fresh, time.Hour))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := i.Resolve(context.Background(), newRaw); err != nil {
		t.Fatalf("token issued after revoke-all must be valid: %v", err)
	}
}

func TestJWTIssuer_DenylistFailure(t *testing.T) {
	denylist := newMemDenylist()
	i := newTestJWTIssuer(denylist, testNow)

	raw, err := i.Issue(context.Background(), MintToken(testIdentity(), testNow, time.Hour))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	denylist.err = errors.New("redis down")
	_, err = i.Resolve(context.Background(), raw)
	if err == nil || errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected infrastructure error, got %v", err)
	}
}
