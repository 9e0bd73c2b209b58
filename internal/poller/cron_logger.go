package poller

import (
	"log/slog"

	"github.com/preston-bernstein/mlb-props-service/internal/logging"
)

// cronLogger routes scheduler events to slog. Routine scheduling chatter goes
// to debug.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logging.Debug(l.logger, "cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logging.Error(l.logger, "cron: "+msg, err, keysAndValues...)
}
