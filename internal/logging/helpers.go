package logging

import (
	"context"
	"log/slog"
)

// Debug, Info, Warn and Error are no-ops on a nil logger so optional loggers
// can be threaded through constructors without checks at every call site.

func Debug(logger *slog.Logger, msg string, args ...any) {
	emit(context.Background(), logger, slog.LevelDebug, msg, args)
}

func Info(logger *slog.Logger, msg string, args ...any) {
	emit(context.Background(), logger, slog.LevelInfo, msg, args)
}

func Warn(logger *slog.Logger, msg string, args ...any) {
	emit(context.Background(), logger, slog.LevelWarn, msg, args)
}

// Error attaches err under FieldError when it is non-nil.
func Error(logger *slog.Logger, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, slog.Any(FieldError, err))
	}
	emit(context.Background(), logger, slog.LevelError, msg, args)
}

// Log writes through the logger carried by ctx, or fallback when ctx has none.
func Log(ctx context.Context, fallback *slog.Logger, level slog.Level, msg string, args ...any) {
	if ctx == nil {
		ctx = context.Background()
	}
	emit(ctx, FromContext(ctx, fallback), level, msg, args)
}

func emit(ctx context.Context, logger *slog.Logger, level slog.Level, msg string, args []any) {
	if logger == nil {
		return
	}
	logger.Log(ctx, level, msg, args...)
}
