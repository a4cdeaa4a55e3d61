package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Denylist records revoked session tokens in Redis.
// Key formats:
//
//	session:denied:<jti>          single token, expires with the token
//	session:denied-before:<sub>   unix seconds; every token of sub issued at or before it is revoked
type Denylist struct {
	client *redis.Client
}

func NewDenylist(client *redis.Client) *Denylist {
	return &Denylist{client: client}
}

// Deny revokes one token id for ttl. A non-positive ttl is a no-op since the
// token has already expired.
func (d *Denylist) Deny(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := d.client.Set(ctx, tokenKey(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("deny token: %w", err)
	}
	return nil
}

func (d *Denylist) IsDenied(ctx context.Context, jti string) (bool, error) {
	n, err := d.client.Exists(ctx, tokenKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("denylist check: %w", err)
	}
	return n > 0, nil
}

// DenySubject revokes every token of subject issued at or before at.
func (d *Denylist) DenySubject(ctx context.Context, subject string, at time.Time, ttl time.Duration) error {
	err := d.client.Set(ctx, subjectKey(subject), strconv.FormatInt(at.Unix(), 10), ttl).Err()
	if err != nil {
		return fmt.Errorf("deny subject: %w", err)
	}
	return nil
}

func (d *Denylist) SubjectDeniedAt(ctx context.Context, subject string) (time.Time, bool, error) {
	v, err := d.client.Get(ctx, subjectKey(subject)).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("denylist subject check: %w", err)
	}

	unix, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse denylist marker %q: %w", v, err)
	}
	return time.Unix(unix, 0), true, nil
}

func tokenKey(jti string) string {
	return "session:denied:" + jti
}

func subjectKey(subject string) string {
	return "session:denied-before:" + subject
}
