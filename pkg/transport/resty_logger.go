package transport

import (
	"context"
	"fmt"
	"log/slog"
)

// restyLogger routes resty diagnostics to slog.
type restyLogger struct {
	logger *slog.Logger
}

func newRestyLogger(logger *slog.Logger) *restyLogger {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &restyLogger{logger: logger.With("component", "resty")}
}

func (l *restyLogger) Errorf(format string, v ...any) {
	l.logger.Log(context.Background(), slog.LevelError, fmt.Sprintf(format, v...))
}

func (l *restyLogger) Warnf(format string, v ...any) {
	l.logger.Log(context.Background(), slog.LevelWarn, fmt.Sprintf(format, v...))
}

func (l *restyLogger) Debugf(format string, v ...any) {
	l.logger.Log(context.Background(), slog.LevelDebug, fmt.Sprintf(format, v...))
}
