package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/ukp-platform/ukp-api/internal/domain"
	"github.com/ukp-platform/ukp-api/internal/store"
)

// MockUserStore implements store.UserStore in memory. A non-nil function
// field replaces the default behavior of its method.
type MockUserStore struct {
	FindByIDFn    func(ctx context.Context, id domain.UserID) (domain.User, error)
	FindByEmailFn func(ctx context.Context, email string) (domain.User, error)
	SaveFn        func(ctx context.Context, user domain.User) (domain.User, error)
	DeleteByIDFn  func(ctx context.Context, id domain.UserID) error

	mu    sync.Mutex
	users map[domain.UserID]domain.User
	// Saves counts successful default Save calls.
	Saves int
}

var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates a store holding users.
func NewMockUserStore(users ...domain.User) *MockUserStore {
	m := &MockUserStore{users: make(map[domain.UserID]domain.User)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

// FindByID implements store.UserStore.
func (m *MockUserStore) FindByID(ctx context.Context, id domain.UserID) (domain.User, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return domain.User{}, store.ErrUserNotFound
	}
	return u, nil
}

// FindByEmail implements store.UserStore.
func (m *MockUserStore) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	if m.FindByEmailFn != nil {
		return m.FindByEmailFn(ctx, email)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, store.ErrUserNotFound
}

// Save implements store.UserStore.
func (m *MockUserStore) Save(ctx context.Context, user domain.User) (domain.User, error) {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, u := range m.users {
		if u.Email == user.Email && id != user.ID {
			return domain.User{}, store.ErrEmailExists
		}
	}
	m.users[user.ID] = user
	m.Saves++
	return user, nil
}

// DeleteByID implements store.UserStore.
func (m *MockUserStore) DeleteByID(ctx context.Context, id domain.UserID) error {
	if m.DeleteByIDFn != nil {
		return m.DeleteByIDFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return store.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

// WithTx returns m; the fake has no transactional state.
func (m *MockUserStore) WithTx(*sql.Tx) store.UserStore {
	return m
}

// Len returns the number of stored users.
func (m *MockUserStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}
