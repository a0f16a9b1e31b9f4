// Package observability carries the structured logger, the Prometheus
// counters, and the tracer shared by the rest of the application.
package observability

import (
	"context"
	"log/slog"
	"os"
)

// Logger embeds slog.Logger so call sites keep the standard API while the
// package controls handler setup.
type Logger struct {
	*slog.Logger
}

// GlobalLogger emits JSON to stdout and is ready before main runs.
var GlobalLogger *Logger

func init() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	GlobalLogger = &Logger{Logger: slog.New(handler)}
}

// LogContextKey keys the logging values this package stores in contexts.
type LogContextKey string

// RequestID is the context key carrying the per-request correlation ID.
const RequestID LogContextKey = "request_id"

// WithRequestID returns a new context with the given request ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestID, id)
}

// ExtractRequestID retrieves the request ID from the context.
func ExtractRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestID).(string); ok {
		return id
	}
	return ""
}

// TableLogger provides structured logging for table-store operations.
type TableLogger struct {
	table  string
	logger *Logger
}

// NewTableLogger creates a TableLogger for the given table.
func NewTableLogger(table string) *TableLogger {
	return &TableLogger{table: table, logger: GlobalLogger}
}

// LogRewrite logs a full-table rewrite.
func (l *TableLogger) LogRewrite(ctx context.Context, records int) {
	l.logger.InfoContext(ctx, "table rewrite",
		slog.String("table", l.table),
		slog.Int("records", records),
		slog.String("request_id", ExtractRequestID(ctx)),
	)
}

// LogAppend logs an append of a single record.
func (l *TableLogger) LogAppend(ctx context.Context) {
	l.logger.InfoContext(ctx, "table append",
		slog.String("table", l.table),
		slog.String("request_id", ExtractRequestID(ctx)),
	)
}

// LogError logs a table-store failure.
func (l *TableLogger) LogError(ctx context.Context, operation string, err error) {
	l.logger.ErrorContext(ctx, "table error",
		slog.String("table", l.table),
		slog.String("operation", operation),
		slog.String("error", err.Error()),
		slog.String("request_id", ExtractRequestID(ctx)),
	)
}
