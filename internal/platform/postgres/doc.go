// Package postgres implements the user and audit stores from internal/store
// on PostgreSQL, and owns the connection setup, embedded goose migrations
// and the datastore readiness check used by the health service.
package postgres
