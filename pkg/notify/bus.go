// Package notify delivers editor notifications over the event bus.
package notify

import (
	"context"
	"log/slog"

	"github.com/dukex/operion-runner/pkg/eventbus"
	"github.com/dukex/operion-runner/pkg/events"
	"github.com/dukex/operion-runner/pkg/models"
)

// Bus publishes notifications as NotificationShown events.
type Bus struct {
	publisher eventbus.EventPublisher
	logger    *slog.Logger
}

func NewBus(publisher eventbus.EventPublisher, logger *slog.Logger) *Bus {
	return &Bus{publisher: publisher, logger: logger.With("module", "notify")}
}

// Show never fails the caller; publish errors are logged.
func (b *Bus) Show(ctx context.Context, notification models.Notification) {
	b.logger.InfoContext(ctx, "Showing notification",
		"workflow_id", notification.WorkflowID,
		"type", notification.Type,
		"title", notification.Title,
	)

	event := events.NotificationShown{
		BaseEvent:    events.NewBaseEvent(events.NotificationShownEvent, notification.WorkflowID),
		Notification: notification,
	}

	if err := b.publisher.Publish(ctx, notification.WorkflowID, event); err != nil {
		b.logger.ErrorContext(ctx, "Failed to publish notification", "workflow_id", notification.WorkflowID, "error", err)
	}
}
