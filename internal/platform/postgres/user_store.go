package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/ukp-platform/ukp-api/internal/domain"
	"github.com/ukp-platform/ukp-api/internal/platform/logger"
	"github.com/ukp-platform/ukp-api/internal/store"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var userColumns = []string{
	"id", "email", "display_name", "password_hash", "status", "created_at", "updated_at",
}

// PostgresUserStore implements store.UserStore on PostgreSQL.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.UserStore = (*PostgresUserStore)(nil)

// NewPostgresUserStore creates a user store over db, which may be a pool or
// a transaction. A nil logger uses slog.Default().
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// WithTx implements store.UserStore.WithTx.
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{db: tx, logger: s.logger}
}

// FindByID implements store.UserStore.FindByID.
func (s *PostgresUserStore) FindByID(ctx context.Context, id domain.UserID) (domain.User, error) {
	return s.findOne(ctx, sq.Eq{"id": id.String()}, "user_id", id.String())
}

// FindByEmail implements store.UserStore.FindByEmail.
func (s *PostgresUserStore) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	return s.findOne(ctx, sq.Eq{"email": email}, "email", email)
}

func (s *PostgresUserStore) findOne(ctx context.Context, where sq.Eq, attr, value string) (domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := psql.Select(userColumns...).From("users").Where(where).ToSql()
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to build user query: %w", err)
	}

	user, err := scanUser(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.String(attr, value))
			return domain.User{}, store.ErrUserNotFound
		}
		log.Error("failed to retrieve user", slog.String(attr, value), slog.String("error", err.Error()))
		return domain.User{}, store.NewStoreError("user", "find", "failed to retrieve user", MapError(err))
	}
	return user, nil
}

// Save implements store.UserStore.Save.
func (s *PostgresUserStore) Save(ctx context.Context, user domain.User) (domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		return domain.User{}, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}

	query, args, err := psql.Insert("users").
		Columns(userColumns...).
		Values(
			user.ID.String(),
			user.Email,
			user.DisplayName,
			nullString(user.PasswordHash),
			string(user.Status),
			user.CreatedAt,
			user.UpdatedAt,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			display_name = EXCLUDED.display_name,
			password_hash = EXCLUDED.password_hash,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + strings.Join(userColumns, ", ")).
		ToSql()
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to build user upsert: %w", err)
	}

	saved, err := scanUser(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrEmailExists) {
			log.Debug("email already in use", slog.String("user_id", user.ID.String()))
			return domain.User{}, store.ErrEmailExists
		}
		log.Error("failed to save user",
			slog.String("user_id", user.ID.String()),
			slog.String("error", err.Error()))
		return domain.User{}, store.NewStoreError("user", "save", "failed to save user", mapped)
	}

	log.Debug("user saved", slog.String("user_id", saved.ID.String()))
	return saved, nil
}

// DeleteByID implements store.UserStore.DeleteByID.
func (s *PostgresUserStore) DeleteByID(ctx context.Context, id domain.UserID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := psql.Delete("users").Where(sq.Eq{"id": id.String()}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build user delete: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to delete user", slog.String("user_id", id.String()), slog.String("error", err.Error()))
		return store.NewStoreError("user", "delete", "failed to delete user", MapError(err))
	}

	return CheckRowsAffected(result, store.ErrUserNotFound)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var (
		id, status   string
		passwordHash sql.NullString
		u            domain.User
	)
	if err := row.Scan(&id, &u.Email, &u.DisplayName, &passwordHash, &status, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return domain.User{}, err
	}

	parsed, err := domain.ParseUserID(id)
	if err != nil {
		return domain.User{}, err
	}
	u.ID = parsed
	u.PasswordHash = passwordHash.String
	u.Status = domain.UserStatus(status)
	return u, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
