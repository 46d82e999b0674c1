package mocks

import (
	"context"
	"database/sql"

	"github.com/stretchr/testify/mock"
	"github.com/ukp-platform/ukp-api/internal/domain"
	"github.com/ukp-platform/ukp-api/internal/store"
)

// TestifyMockUserStore is a mock of store.UserStore for use with testify/mock.
type TestifyMockUserStore struct {
	mock.Mock
}

var _ store.UserStore = (*TestifyMockUserStore)(nil)

// FindByID is a mock implementation of store.UserStore.FindByID
func (m *TestifyMockUserStore) FindByID(ctx context.Context, id domain.UserID) (domain.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(domain.User)
	return u, args.Error(1)
}

// FindByEmail is a mock implementation of store.UserStore.FindByEmail
func (m *TestifyMockUserStore) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(domain.User)
	return u, args.Error(1)
}

// Save is a mock implementation of store.UserStore.Save
func (m *TestifyMockUserStore) Save(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	u, _ := args.Get(0).(domain.User)
	return u, args.Error(1)
}

// DeleteByID is a mock implementation of store.UserStore.DeleteByID
func (m *TestifyMockUserStore) DeleteByID(ctx context.Context, id domain.UserID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// WithTx returns the receiver so expectations apply inside transactions.
func (m *TestifyMockUserStore) WithTx(*sql.Tx) store.UserStore {
	return m
}
