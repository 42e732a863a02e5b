package audit

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/creostudios/studiosvc/domain"
)

// ZerologAuditLogger implements domain.AuditLogger on a structured logger
type ZerologAuditLogger struct {
	logger zerolog.Logger
}

// NewAuditLogger creates a new audit logger
func NewAuditLogger(logger zerolog.Logger) domain.AuditLogger {
	return &ZerologAuditLogger{logger: logger.With().Str("component", "audit").Logger()}
}

// LogEvent implements domain.AuditLogger
func (l *ZerologAuditLogger) LogEvent(_ context.Context, event *domain.AuditEvent) {
	ev := l.logger.Info()
	if !event.Success {
		ev = l.logger.Warn()
	}

	ev = ev.Str("event", string(event.EventType)).
		Bool("success", event.Success).
		Time("at", event.Timestamp)

	if event.UserID != 0 {
		ev = ev.Uint("user_id", event.UserID)
	}
	if event.Email != "" {
		ev = ev.Str("email", event.Email)
	}
	if event.ErrorMsg != "" {
		ev = ev.Str("error", event.ErrorMsg)
	}
	if len(event.Metadata) > 0 {
		ev = ev.Interface("meta", event.Metadata)
	}

	ev.Msg("audit")
}
