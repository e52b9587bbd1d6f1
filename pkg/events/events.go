// Package events defines the messages exchanged between editor sessions and the execution backend.
package events

import (
	"time"

	"github.com/dukex/operion-runner/pkg/models"
	"github.com/google/uuid"
)

type EventType string

// Topic carries every runner event.
const Topic = "operion.runner.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	// Run requests.
	ManualRunRequestedEvent EventType = "workflow.manual_run.requested"

	// Node execution pushes.
	NodeExecutionFinishedEvent EventType = "node.execution.finished"
	NodeExecutionFailedEvent   EventType = "node.execution.failed"

	// Workflow execution lifecycle events.
	WorkflowExecutionCompletedEvent EventType = "workflow.execution.completed"
	WorkflowExecutionFailedEvent    EventType = "workflow.execution.failed"

	// Editor notifications.
	NotificationShownEvent EventType = "editor.notification.shown"
)

type BaseEvent struct {
	ID         string         `json:"id"`
	Type       EventType      `json:"type"`
	Timestamp  time.Time      `json:"timestamp"`
	WorkflowID string         `json:"workflow_id"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// ManualRunRequested asks the execution backend to start a run prepared by the editor.
type ManualRunRequested struct {
	BaseEvent

	ExecutionID       string            `json:"execution_id"`
	Payload           models.RunPayload `json:"payload"`
	WaitingForWebhook bool              `json:"waiting_for_webhook"`
	Source            string            `json:"source,omitempty"`
}

func (m ManualRunRequested) GetType() EventType {
	return ManualRunRequestedEvent
}

// NodeExecutionFinished pushes the successful result of one node execution.
type NodeExecutionFinished struct {
	BaseEvent

	ExecutionID string          `json:"execution_id"`
	NodeName    string          `json:"node_name"`
	Result      models.TaskData `json:"result"`
}

func (n NodeExecutionFinished) GetType() EventType {
	return NodeExecutionFinishedEvent
}

// NodeExecutionFailed pushes the failed result of one node execution.
type NodeExecutionFailed struct {
	BaseEvent

	ExecutionID string          `json:"execution_id"`
	NodeName    string          `json:"node_name"`
	Result      models.TaskData `json:"result"`
}

func (n NodeExecutionFailed) GetType() EventType {
	return NodeExecutionFailedEvent
}

type WorkflowExecutionCompleted struct {
	BaseEvent

	ExecutionID   string `json:"execution_id"`
	DurationMs    int64  `json:"duration_ms"`
	NodesExecuted int    `json:"nodes_executed"`
}

func (w WorkflowExecutionCompleted) GetType() EventType {
	return WorkflowExecutionCompletedEvent
}

type WorkflowExecutionFailed struct {
	BaseEvent

	ExecutionID   string        `json:"execution_id"`
	DurationMs    int64         `json:"duration_ms"`
	Error         WorkflowError `json:"error"`
	NodesExecuted int           `json:"nodes_executed"`
}

type WorkflowError struct {
	NodeName string `json:"node_name"`
	Message  string `json:"message"`
}

func (w WorkflowExecutionFailed) GetType() EventType {
	return WorkflowExecutionFailedEvent
}

// NotificationShown is a toast for the editor of a workflow.
type NotificationShown struct {
	BaseEvent

	Notification models.Notification `json:"notification"`
}

func (n NotificationShown) GetType() EventType {
	return NotificationShownEvent
}

func NewBaseEvent(eventType EventType, workflowID string) BaseEvent {
	return BaseEvent{
		ID:         uuid.New().String(),
		Type:       eventType,
		Timestamp:  time.Now().UTC(),
		WorkflowID: workflowID,
		Metadata:   make(map[string]any),
	}
}
