package providers

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/mlb-props-service/internal/logging"
)

// logUpstream logs a transport event for provider, preferring the logger
// carried by the request context.
func logUpstream(ctx context.Context, fallback *slog.Logger, level slog.Level, provider string, msg string, args ...any) {
	args = append(args, slog.String(logging.FieldProvider, provider))
	logging.Log(ctx, fallback, level, msg, args...)
}
