package models

// ExecutionAck is the immediate acknowledgement of a dispatched run.
type ExecutionAck struct {
	ExecutionID       string `json:"execution_id"`
	WaitingForWebhook bool   `json:"waiting_for_webhook"`
}

// RunPayload is what the execution backend receives for a manual run.
// An empty StartNodes list means the run starts from the workflow's triggers.
// ExecutionID is assigned by the caller so execution pushes can be matched before the
// backend acknowledges the run.
type RunPayload struct {
	ExecutionID     string    `json:"execution_id,omitempty"`
	Workflow        *Workflow `json:"workflow"`
	StartNodes      []string  `json:"start_nodes,omitempty"`
	DestinationNode string    `json:"destination_node,omitempty"`
	RunData         RunData   `json:"run_data,omitempty"`
	PinData         PinData   `json:"pin_data,omitempty"`
}

// RunOptions describes a run request coming from the editor.
type RunOptions struct {
	DestinationNode string `json:"destination_node,omitempty"` // Run up to and including this node
	TriggerNode     string `json:"trigger_node,omitempty"`     // Run from this trigger only
	Source          string `json:"source,omitempty"`           // Where the request came from, for logging
}

// NotificationType is the severity of a user-facing notification.
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

// Notification is a toast shown in the editor.
type Notification struct {
	WorkflowID string           `json:"workflow_id"`
	Title      string           `json:"title"`
	Message    string           `json:"message"`
	Type       NotificationType `json:"type"`
}

// WorkflowDocument is the stored state of a workflow in the editor: its definition plus the
// pinned data and the results of the last run.
type WorkflowDocument struct {
	Workflow *Workflow `json:"workflow"`
	PinData  PinData   `json:"pin_data,omitempty"`
	RunData  RunData   `json:"run_data,omitempty"`
}
