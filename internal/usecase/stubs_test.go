package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"

	"starter-kit/internal/data/entity"
	"starter-kit/internal/data/repository"
	"starter-kit/internal/session"

	"github.com/google/uuid"
)

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User

	findErr   error
	createErr error
	// hideOnFind makes FindByEmail miss, simulating a concurrent insert
	// landing between the check and the insert.
	hideOnFind bool

	lastLimit, lastOffset int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*entity.User)}
}

func cloneUser(u *entity.User) *entity.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if _, exists := r.users[user.Email]; exists {
		return repository.ErrDuplicateEmail
	}
	r.users[user.Email] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	if r.hideOnFind {
		return nil, nil
	}
	return cloneUser(r.users[email]), nil
}

func (r *stubUserRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastLimit, r.lastOffset = limit, offset
	if r.findErr != nil {
		return nil, r.findErr
	}

	emails := make([]string, 0, len(r.users))
	for email := range r.users {
		emails = append(emails, email)
	}
	sort.Strings(emails)

	var out []*entity.User
	for i := offset; i < len(emails) && i < offset+limit; i++ {
		out = append(out, cloneUser(r.users[emails[i]]))
	}
	return out, nil
}

func (r *stubUserRepo) CountAll(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *stubUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

type stubIssuer struct {
	tokens     map[string]session.Token
	revoked    map[string]bool
	revokedAll []string
	issueErr   error
	resolveErr error
}

func newStubIssuer() *stubIssuer {
	return &stubIssuer{
		tokens:  make(map[string]session.Token),
		revoked: make(map[string]bool),
	}
}

func (i *stubIssuer) Issue(_ context.Context, token session.Token) (string, error) {
	if i.issueErr != nil {
		return "", i.issueErr
	}
	raw := "raw-" + token.ID
	i.tokens[raw] = token
	return raw, nil
}

func (i *stubIssuer) Resolve(_ context.Context, raw string) (*session.Token, error) {
	if i.resolveErr != nil {
		return nil, i.resolveErr
	}
	tok, ok := i.tokens[raw]
	if !ok || i.revoked[raw] {
		return nil, session.ErrInvalidToken
	}
	return &tok, nil
}

func (i *stubIssuer) Revoke(_ context.Context, raw string) error {
	if _, ok := i.tokens[raw]; !ok || i.revoked[raw] {
		return session.ErrInvalidToken
	}
	i.revoked[raw] = true
	return nil
}

func (i *stubIssuer) RevokeAll(_ context.Context, subject string) error {
	if subject == "" {
		return errors.New("empty subject")
	}
	i.revokedAll = append(i.revokedAll, subject)
	return nil
}
