package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/scamwatch/blacklist-service/internal/events"
	"github.com/scamwatch/blacklist-service/internal/observability"
)

// StartAuditWorker subscribes an audit trail to every moderation event. Each
// event becomes a structured log entry and a metrics increment.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) {
	if dispatcher == nil {
		return
	}

	audit := logger.Named("audit")
	handler := func(_ context.Context, event events.Event) error {
		metrics.RecordModerationEvent(string(event.Type))
		audit.Info(string(event.Type),
			zap.String("event_id", event.ID),
			zap.String("actor", event.Actor.Username),
			zap.Bool("actor_admin", event.Actor.IsAdmin),
			zap.Any("payload", event.Payload),
		)
		return nil
	}

	for _, eventType := range []events.EventType{
		events.EventReportSubmitted,
		events.EventReportApproved,
		events.EventReportOverridden,
		events.EventReportDeleted,
		events.EventAppealSubmitted,
		events.EventAppealResolved,
	} {
		dispatcher.Subscribe(eventType, handler)
	}
}
