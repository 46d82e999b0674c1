// Package logger provides structured logging functionality for the application.
//
// It uses Go's standard library log/slog package, emitting JSON or text records
// depending on the configured log format, and carries request-scoped loggers
// through context.Context.
package logger
