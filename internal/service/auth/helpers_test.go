package auth

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/ukp-platform/ukp-api/internal/domain"
	"github.com/ukp-platform/ukp-api/internal/store"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-that-is-at-least-32-characters"

// memUserStore is an in-memory store.UserStore.
type memUserStore struct {
	mu      sync.Mutex
	users   map[string]domain.User
	saves   int
	findErr error
}

var _ store.UserStore = (*memUserStore)(nil)

func newMemUserStore(users ...domain.User) *memUserStore {
	s := &memUserStore{users: make(map[string]domain.User)}
	for _, u := range users {
		s.users[u.ID.String()] = u
	}
	return s
}

func (s *memUserStore) FindByID(_ context.Context, id domain.UserID) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id.String()]
	if !ok {
		return domain.User{}, store.ErrUserNotFound
	}
	return u, nil
}

func (s *memUserStore) FindByEmail(_ context.Context, email string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return domain.User{}, s.findErr
	}
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, store.ErrUserNotFound
}

func (s *memUserStore) Save(_ context.Context, user domain.User) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, u := range s.users {
		if u.Email == user.Email && id != user.ID.String() {
			return domain.User{}, store.ErrEmailExists
		}
	}
	s.users[user.ID.String()] = user
	s.saves++
	return user, nil
}

func (s *memUserStore) DeleteByID(_ context.Context, id domain.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id.String()]; !ok {
		return store.ErrUserNotFound
	}
	delete(s.users, id.String())
	return nil
}

func (s *memUserStore) WithTx(*sql.Tx) store.UserStore {
	return s
}

func fastHasher() *BcryptHasher {
	return NewBcryptHasher(bcrypt.MinCost)
}

func newTestSigner(t *testing.T) *TokenSigner {
	t.Helper()
	signer, err := NewTokenSigner(testSecret, 0)
	require.NoError(t, err)
	return signer
}

// activeUser returns an active user whose password is password.
func activeUser(t *testing.T, email, password string) domain.User {
	t.Helper()
	u, err := domain.NewUser(email, "Test User")
	require.NoError(t, err)
	hash, err := fastHasher().Hash(password)
	require.NoError(t, err)
	return u.WithStatus(domain.UserStatusActive).WithPasswordHash(hash)
}

func newTestStrategy(t *testing.T, users *memUserStore, bootstrap bool) *LocalStrategy {
	t.Helper()
	s, err := NewLocalStrategy(users, LocalOptions{
		Signer:         newTestSigner(t),
		Hasher:         fastHasher(),
		BootstrapAdmin: bootstrap,
	}, nil)
	require.NoError(t, err)
	return s
}

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}
