package audit

import (
	"context"

	"github.com/MKhiriev/pass-guard/internal/logger"
	"github.com/MKhiriev/pass-guard/models"
)

// logSink writes every audit event as a structured log line. It is always
// enabled and acts as the delivery of last resort when no other sink is
// configured.
type logSink struct {
	logger *logger.Logger
}

// NewLogSink constructs a sink that logs events through the given logger.
func NewLogSink(log *logger.Logger) Sink {
	return &logSink{logger: log}
}

func (s *logSink) Name() string { return "log" }

func (s *logSink) Deliver(_ context.Context, event models.AuditEvent) error {
	entry := s.logger.Info().
		Str("event_id", event.EventID).
		Str("action", string(event.Action)).
		Str("entity_type", string(event.EntityType)).
		Str("entity_id", event.EntityID).
		Str("ip", event.Client.IP)
	if event.AccountID != nil {
		entry = entry.Str("account_id", *event.AccountID)
	}
	if event.Details != "" {
		entry = entry.Str("details", event.Details)
	}
	entry.Msg("audit event")

	return nil
}
