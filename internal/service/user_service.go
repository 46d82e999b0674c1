package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ukp-platform/ukp-api/internal/domain"
	"github.com/ukp-platform/ukp-api/internal/service/audit"
	"github.com/ukp-platform/ukp-api/internal/service/auth"
	"github.com/ukp-platform/ukp-api/internal/store"
)

// CreateUserCommand holds the inputs for creating a user.
type CreateUserCommand struct {
	Email       string
	DisplayName string
	// Password is optional; invited users may set it later.
	Password string
	// ActorID identifies the authenticated caller for the audit trail.
	ActorID string
}

// UserService provides user-related operations.
type UserService interface {
	// CreateUser creates an invited user. It returns store.ErrEmailExists
	// when the email is taken.
	CreateUser(ctx context.Context, cmd CreateUserCommand) (domain.User, error)

	// GetUser returns store.ErrUserNotFound for an unknown ID.
	GetUser(ctx context.Context, id domain.UserID) (domain.User, error)

	DeleteUser(ctx context.Context, id domain.UserID) error
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	db        store.TxBeginner
	hasher    auth.PasswordHasher
	audit     audit.Recorder
	logger    *slog.Logger
}

var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService. A nil hasher uses bcrypt.
func NewUserService(
	userStore store.UserStore,
	db store.TxBeginner,
	hasher auth.PasswordHasher,
	recorder audit.Recorder,
	logger *slog.Logger,
) (*UserServiceImpl, error) {
	if userStore == nil {
		return nil, errors.New("user store cannot be nil")
	}
	if db == nil {
		return nil, errors.New("database cannot be nil")
	}
	if recorder == nil {
		return nil, errors.New("audit recorder cannot be nil")
	}
	if hasher == nil {
		hasher = auth.NewBcryptHasher(auth.DefaultBcryptCost)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore: userStore,
		db:        db,
		hasher:    hasher,
		audit:     recorder,
		logger:    logger.With("component", "user_service"),
	}, nil
}

// CreateUser creates a new user. The email check and the insert run in one
// transaction.
func (s *UserServiceImpl) CreateUser(ctx context.Context, cmd CreateUserCommand) (domain.User, error) {
	user, err := domain.NewUser(cmd.Email, cmd.DisplayName)
	if err != nil {
		return domain.User{}, err
	}
	if cmd.Password != "" {
		hash, err := s.hasher.Hash(cmd.Password)
		if err != nil {
			return domain.User{}, err
		}
		user = user.WithPasswordHash(hash)
	}

	var saved domain.User
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		_, err := txStore.FindByEmail(ctx, user.Email)
		if err == nil {
			return store.ErrEmailExists
		}
		if !store.IsNotFoundError(err) {
			return err
		}

		saved, err = txStore.Save(ctx, user)
		return err
	})

	event := domain.AuditEvent{
		UserID:   cmd.ActorID,
		Action:   audit.ActionUserCreate,
		Resource: "user",
		Metadata: map[string]any{"email": user.Email},
	}

	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("attempted to create user with existing email",
				"email", user.Email)
		} else {
			s.logger.Error("failed to save user to database",
				"error", err,
				"email", user.Email)
		}
		event.Result = domain.AuditFailure
		event.ErrorMessage = err.Error()
		s.audit.Record(ctx, event)
		return domain.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	event.Result = domain.AuditSuccess
	event.ResourceID = saved.ID.String()
	s.audit.Record(ctx, event)

	s.logger.Info("user created successfully",
		"user_id", saved.ID,
		"email", saved.Email)

	return saved, nil
}

// GetUser retrieves a user by their ID
func (s *UserServiceImpl) GetUser(ctx context.Context, id domain.UserID) (domain.User, error) {
	user, err := s.userStore.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			s.logger.Error("failed to retrieve user",
				"error", err,
				"user_id", id)
		}
		return domain.User{}, fmt.Errorf("failed to retrieve user: %w", err)
	}

	s.logger.Debug("retrieved user successfully",
		"user_id", id)

	return user, nil
}

// DeleteUser deletes a user by their ID
func (s *UserServiceImpl) DeleteUser(ctx context.Context, id domain.UserID) error {
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).DeleteByID(ctx, id)
	})
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("attempted to delete non-existent user",
				"user_id", id)
		} else {
			s.logger.Error("failed to delete user",
				"error", err,
				"user_id", id)
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("user deleted successfully", "user_id", id)
	return nil
}
