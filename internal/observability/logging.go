// Package observability provides repository logging, Prometheus metrics and OpenTelemetry tracing.
package observability

import (
	"context"
	"log/slog"
)

// RepoLogger provides structured logging for repository writes.
type RepoLogger struct {
	table  string
	logger *slog.Logger
}

// NewRepoLogger creates a RepoLogger for the given table. A nil logger uses slog.Default().
func NewRepoLogger(table string, logger *slog.Logger) *RepoLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &RepoLogger{table: table, logger: logger}
}

func (l *RepoLogger) log(ctx context.Context, operation string, attrs ...any) {
	base := []any{
		slog.String("table", l.table),
		slog.String("operation", operation),
	}
	if traceID := TraceIDFromContext(ctx); traceID != "" {
		base = append(base, slog.String("correlation_id", traceID))
	}
	l.logger.DebugContext(ctx, "repository "+operation, append(base, attrs...)...)
}

// LogCreate logs a repository create operation.
func (l *RepoLogger) LogCreate(ctx context.Context, attrs ...any) {
	l.log(ctx, "create", attrs...)
}

// LogUpdate logs a repository update operation.
func (l *RepoLogger) LogUpdate(ctx context.Context, attrs ...any) {
	l.log(ctx, "update", attrs...)
}

// LogDelete logs a repository delete operation.
func (l *RepoLogger) LogDelete(ctx context.Context, attrs ...any) {
	l.log(ctx, "delete", attrs...)
}

// LogError logs a failed repository operation.
func (l *RepoLogger) LogError(ctx context.Context, err error, operation string) {
	l.logger.ErrorContext(ctx, "repository error",
		slog.String("table", l.table),
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
}
