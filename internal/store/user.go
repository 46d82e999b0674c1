package store

import (
	"context"
	"database/sql"

	"github.com/ukp-platform/ukp-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// FindByID returns ErrUserNotFound when no user has the given ID.
	FindByID(ctx context.Context, id domain.UserID) (domain.User, error)

	// FindByEmail returns ErrUserNotFound when no user has the given email.
	FindByEmail(ctx context.Context, email string) (domain.User, error)

	// Save inserts the user or, when its ID already exists, updates every
	// mutable field. It returns the stored row. ErrEmailExists is returned
	// when the email belongs to a different user.
	Save(ctx context.Context, user domain.User) (domain.User, error)

	// DeleteByID returns ErrUserNotFound when no user has the given ID.
	DeleteByID(ctx context.Context, id domain.UserID) error

	// WithTx returns a UserStore that runs every statement in tx.
	WithTx(tx *sql.Tx) UserStore
}
