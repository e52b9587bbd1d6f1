// Package web provides the HTTP request and response types of the runner API.
package web

import "github.com/dukex/operion-runner/pkg/models"

// RunWorkflowRequest starts a manual run. At most one of DestinationNode and TriggerNode is set.
type RunWorkflowRequest struct {
	DestinationNode string `json:"destination_node,omitempty" validate:"excluded_with=TriggerNode"`
	TriggerNode     string `json:"trigger_node,omitempty"`
	Source          string `json:"source,omitempty"           validate:"omitempty,max=64"`
}

// RunWorkflowResponse reports whether a run was dispatched.
type RunWorkflowResponse struct {
	Started           bool   `json:"started"`
	ExecutionID       string `json:"execution_id,omitempty"`
	WaitingForWebhook bool   `json:"waiting_for_webhook,omitempty"`
}

// PlanRunRequest previews the plan of a run that ends at DestinationNode.
type PlanRunRequest struct {
	DestinationNode string `json:"destination_node" validate:"required"`
}

// PlanRunResponse is the consolidated start plan of a run.
type PlanRunResponse struct {
	StartNodes      []string       `json:"start_nodes"`
	RunData         models.RunData `json:"run_data,omitempty"`
	RequiresWebhook bool           `json:"requires_webhook"`
}

// SetPinDataRequest replaces a node's pinned output.
type SetPinDataRequest struct {
	Items []map[string]any `json:"items" validate:"required,min=1"`
}

// RunStateResponse is the run-related state of an editor session.
type RunStateResponse struct {
	Running              bool     `json:"running"`
	ExecutionID          string   `json:"execution_id,omitempty"`
	WaitingForWebhook    bool     `json:"waiting_for_webhook"`
	ActiveActions        []string `json:"active_actions"`
	PushConnectionActive bool     `json:"push_connection_active"`
}
