// Package backend hands manual runs to the execution service over the event bus.
package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dukex/operion-runner/pkg/eventbus"
	"github.com/dukex/operion-runner/pkg/events"
	"github.com/dukex/operion-runner/pkg/models"
	"github.com/dukex/operion-runner/pkg/runplan"
	"github.com/google/uuid"
)

var (
	ErrMissingWorkflow = errors.New("run payload has no workflow")
	ErrUnknownNode     = errors.New("run payload references an unknown node")
)

// EventBus publishes ManualRunRequested events and acknowledges them immediately.
type EventBus struct {
	publisher eventbus.EventPublisher
	logger    *slog.Logger
}

func NewEventBus(publisher eventbus.EventPublisher, logger *slog.Logger) *EventBus {
	return &EventBus{
		publisher: publisher,
		logger:    logger.With("module", "backend"),
	}
}

// Run validates the payload and publishes the request under the payload's execution id,
// assigning one when it is empty. The acknowledgement says whether the execution will wait
// for a webhook call.
func (b *EventBus) Run(ctx context.Context, payload *models.RunPayload) (*models.ExecutionAck, error) {
	if err := validate(payload); err != nil {
		return nil, err
	}

	executionID := payload.ExecutionID
	if executionID == "" {
		executionID = uuid.New().String()
	}

	waiting := runplan.WaitsForWebhook(payload.Workflow, payload.StartNodes, payload.PinData)

	event := events.ManualRunRequested{
		BaseEvent:         events.NewBaseEvent(events.ManualRunRequestedEvent, payload.Workflow.ID),
		ExecutionID:       executionID,
		Payload:           withExecutionID(*payload, executionID),
		WaitingForWebhook: waiting,
	}

	if err := b.publisher.Publish(ctx, payload.Workflow.ID, event); err != nil {
		return nil, fmt.Errorf("failed to publish run request: %w", err)
	}

	b.logger.InfoContext(ctx, "Published manual run request",
		"workflow_id", payload.Workflow.ID,
		"execution_id", executionID,
		"waiting_for_webhook", waiting,
	)

	return &models.ExecutionAck{ExecutionID: executionID, WaitingForWebhook: waiting}, nil
}

func validate(payload *models.RunPayload) error {
	if payload == nil || payload.Workflow == nil {
		return ErrMissingWorkflow
	}

	names := append([]string{}, payload.StartNodes...)
	if payload.DestinationNode != "" {
		names = append(names, payload.DestinationNode)
	}

	for _, name := range names {
		if _, ok := payload.Workflow.NodeByName(name); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownNode, name)
		}
	}

	return nil
}

func withExecutionID(payload models.RunPayload, executionID string) models.RunPayload {
	payload.ExecutionID = executionID

	return payload
}
