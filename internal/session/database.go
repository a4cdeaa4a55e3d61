package session

import (
	"context"
	"errors"
	"fmt"

	"starter-kit/internal/data/entity"
	"starter-kit/internal/data/repository"

	"github.com/google/uuid"
)

// DatabaseIssuer hands out opaque token ids backed by rows in the sessions
// table. The identity snapshot stored with the row becomes Token.User.
type DatabaseIssuer struct {
	repo repository.SessionRepository
}

func NewDatabaseIssuer(repo repository.SessionRepository) *DatabaseIssuer {
	return &DatabaseIssuer{repo: repo}
}

func (i *DatabaseIssuer) Issue(ctx context.Context, token Token) (string, error) {
	tokenID, err := uuid.Parse(token.ID)
	if err != nil {
		return "", fmt.Errorf("session token id %q: %w", token.ID, err)
	}
	userID, err := uuid.Parse(token.Subject)
	if err != nil {
		return "", fmt.Errorf("session subject %q: %w", token.Subject, err)
	}

	if token.User == nil || !entity.UserRole(token.User.Role).Valid() {
		return "", errors.New("session token carries no known role")
	}

	row := &entity.Session{
		Issued: entity.Issued{
			ID:        uuid.New(),
			CreatedAt: token.IssuedAt,
		},
		UserID:    userID,
		Token:     tokenID,
		Name:      token.Name,
		Email:     token.Email,
		Role:      entity.UserRole(token.User.Role),
		ExpiresAt: token.ExpiresAt,
	}
	if c, ok := ClientFromContext(ctx); ok {
		row.UserAgent = nonEmpty(c.UserAgent)
		row.IPAddress = nonEmpty(c.IPAddress)
	}

	if err := i.repo.Create(ctx, row); err != nil {
		return "", err
	}
	return tokenID.String(), nil
}

func (i *DatabaseIssuer) Resolve(ctx context.Context, raw string) (*Token, error) {
	tokenID, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed", ErrInvalidToken)
	}

	row, err := i.repo.FindValidSession(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrInvalidToken
	}

	return &Token{
		ID:      row.Token.String(),
		Subject: row.UserID.String(),
		Name:    row.Name,
		Email:   row.Email,
		User: &Identity{
			ID:    row.UserID.String(),
			Email: row.Email,
			Name:  row.Name,
			Role:  string(row.Role),
		},
		IssuedAt:  row.CreatedAt,
		ExpiresAt: row.ExpiresAt,
	}, nil
}

func (i *DatabaseIssuer) Revoke(ctx context.Context, raw string) error {
	tokenID, err := uuid.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: malformed", ErrInvalidToken)
	}

	err = i.repo.Revoke(ctx, tokenID)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return ErrInvalidToken
	}
	return err
}

func (i *DatabaseIssuer) RevokeAll(ctx context.Context, subject string) error {
	userID, err := uuid.Parse(subject)
	if err != nil {
		return fmt.Errorf("session subject %q: %w", subject, err)
	}
	return i.repo.RevokeAllUserSessions(ctx, userID)
}

// Clean removes long-expired rows; it is run periodically by the server.
func (i *DatabaseIssuer) Clean(ctx context.Context) (int64, error) {
	return i.repo.CleanExpiredSessions(ctx)
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
