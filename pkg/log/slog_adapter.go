package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes capture events to an slog.Logger at debug level.
// Useful during development to watch traffic on the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a SlogAdapter writing to logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event as a single "protocol" record.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session", event.SessionID),
		slog.String("direction", event.Direction.String()),
		slog.String("category", event.Category.String()),
		slog.Uint64("client_id", uint64(event.ClientID)),
		slog.Uint64("tx_id", uint64(event.TransactionID)),
	}
	if event.DeviceType != "" {
		attrs = append(attrs,
			slog.String("device_type", event.DeviceType),
			slog.Uint64("device_number", uint64(event.DeviceNumber)),
		)
	}
	if event.Attribute != "" {
		attrs = append(attrs, slog.String("attribute", event.Attribute))
	}

	switch {
	case event.Request != nil:
		attrs = append(attrs,
			slog.String("method", event.Request.Operation.String()),
			slog.String("url", event.Request.URL),
		)
	case event.Response != nil:
		attrs = append(attrs,
			slog.Int("status", event.Response.StatusCode),
			slog.Duration("duration", event.Response.Duration),
		)
		if event.Response.ErrorNumber != 0 {
			attrs = append(attrs,
				slog.Int("error_number", event.Response.ErrorNumber),
				slog.String("error_kind", event.Response.Kind().String()),
				slog.String("error_message", event.Response.ErrorMessage),
			)
		}
	case event.Error != nil:
		attrs = append(attrs, slog.String("error", event.Error.Message))
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("error_context", event.Error.Context))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "protocol", attrs...)
}

var _ Logger = (*SlogAdapter)(nil)
