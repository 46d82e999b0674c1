package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/ukp-platform/ukp-api/internal/domain"
	"github.com/ukp-platform/ukp-api/internal/platform/logger"
	"github.com/ukp-platform/ukp-api/internal/store"
)

// Query paging defaults.
const (
	DefaultAuditLimit  = 100
	DefaultAuditOffset = 0
)

var auditColumns = []string{
	"id", "timestamp", "user_id", "action", "resource", "resource_id",
	"metadata", "result", "error_message", "ip_address", "user_agent",
}

// PostgresAuditStore implements store.AuditStore on the audit_logs table.
type PostgresAuditStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.AuditStore = (*PostgresAuditStore)(nil)

// NewPostgresAuditStore creates an audit store over db.
func NewPostgresAuditStore(db store.DBTX, logger *slog.Logger) *PostgresAuditStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresAuditStore{
		db:     db,
		logger: logger.With(slog.String("component", "audit_store")),
	}
}

// Insert implements store.AuditStore.Insert.
func (s *PostgresAuditStore) Insert(ctx context.Context, event domain.AuditEvent) (domain.AuditEvent, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !event.Result.Valid() {
		return domain.AuditEvent{}, fmt.Errorf("%w: %w", store.ErrInvalidEntity, domain.ErrInvalidAuditResult)
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	var metadata any
	if len(event.Metadata) > 0 {
		raw, err := json.Marshal(event.Metadata)
		if err != nil {
			return domain.AuditEvent{}, fmt.Errorf("%w: metadata: %v", store.ErrInvalidEntity, err)
		}
		metadata = string(raw)
	}

	query, args, err := psql.Insert("audit_logs").
		Columns(auditColumns...).
		Values(
			event.ID,
			event.Timestamp,
			nullString(event.UserID),
			event.Action,
			event.Resource,
			nullString(event.ResourceID),
			metadata,
			string(event.Result),
			nullString(event.ErrorMessage),
			nullString(event.IPAddress),
			nullString(event.UserAgent),
		).
		ToSql()
	if err != nil {
		return domain.AuditEvent{}, fmt.Errorf("failed to build audit insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to insert audit event",
			slog.String("action", event.Action),
			slog.String("error", err.Error()))
		return domain.AuditEvent{}, store.NewStoreError("audit_log", "insert", "failed to insert audit event", MapError(err))
	}

	return event, nil
}

// Query implements store.AuditStore.Query.
func (s *PostgresAuditStore) Query(ctx context.Context, q domain.AuditQuery) ([]domain.AuditEvent, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultAuditLimit
	}
	offset := q.Offset
	if offset < 0 {
		offset = DefaultAuditOffset
	}

	builder := psql.Select(auditColumns...).From("audit_logs")
	if q.UserID != "" {
		builder = builder.Where(sq.Eq{"user_id": q.UserID})
	}
	if q.Action != "" {
		builder = builder.Where(sq.Eq{"action": q.Action})
	}
	if q.Resource != "" {
		builder = builder.Where(sq.Eq{"resource": q.Resource})
	}
	if !q.StartDate.IsZero() {
		builder = builder.Where(sq.GtOrEq{"timestamp": q.StartDate})
	}
	if !q.EndDate.IsZero() {
		builder = builder.Where(sq.LtOrEq{"timestamp": q.EndDate})
	}

	query, args, err := builder.
		OrderBy("timestamp DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build audit query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query audit events", slog.String("error", err.Error()))
		return nil, store.NewStoreError("audit_log", "query", "failed to query audit events", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	events := []domain.AuditEvent{}
	for rows.Next() {
		event, err := scanAuditEvent(rows)
		if err != nil {
			return nil, store.NewStoreError("audit_log", "query", "failed to scan audit event", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("audit_log", "query", "failed to iterate audit events", err)
	}

	return events, nil
}

// DeleteBefore implements store.AuditStore.DeleteBefore.
func (s *PostgresAuditStore) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := psql.Delete("audit_logs").Where(sq.Lt{"timestamp": before}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build audit purge: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to purge audit events", slog.String("error", err.Error()))
		return 0, store.NewStoreError("audit_log", "purge", "failed to purge audit events", MapError(err))
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	log.Info("purged audit events", slog.Int64("count", n), slog.Time("before", before))
	return n, nil
}

func scanAuditEvent(row rowScanner) (domain.AuditEvent, error) {
	var (
		e                                     domain.AuditEvent
		userID, resourceID, errMsg, ip, agent sql.NullString
		metadata                              []byte
		result                                string
	)
	if err := row.Scan(
		&e.ID, &e.Timestamp, &userID, &e.Action, &e.Resource, &resourceID,
		&metadata, &result, &errMsg, &ip, &agent,
	); err != nil {
		return domain.AuditEvent{}, err
	}

	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &e.Metadata); err != nil {
			return domain.AuditEvent{}, fmt.Errorf("failed to decode audit metadata: %w", err)
		}
	}

	e.UserID = userID.String
	e.ResourceID = resourceID.String
	e.Result = domain.AuditResult(result)
	e.ErrorMessage = errMsg.String
	e.IPAddress = ip.String
	e.UserAgent = agent.String
	return e, nil
}
