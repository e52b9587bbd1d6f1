// Package models defines core node-based workflow models for graph execution
package models

import (
	"errors"
	"strings"
)

// CategoryType represents the category of node.
type CategoryType string

const (
	CategoryTypeAction  CategoryType = "action"  // Regular action nodes (http, log, transform, etc.)
	CategoryTypeTrigger CategoryType = "trigger" // Trigger nodes (webhook, scheduler, kafka, etc.)
)

// TriggerKind describes how a trigger node is started.
type TriggerKind string

const (
	TriggerKindNone    TriggerKind = ""
	TriggerKindWebhook TriggerKind = "webhook" // Started by an external call to a registered endpoint
	TriggerKindPolling TriggerKind = "polling" // Started by the scheduler polling a source
	TriggerKindManual  TriggerKind = "manual"  // Started from the editor only
)

// Built-in trigger node types.
const (
	NodeTypeTriggerManual    = "trigger:manual"
	NodeTypeTriggerWebhook   = "trigger:webhook"
	NodeTypeTriggerScheduler = "trigger:scheduler"
	NodeTypeTriggerKafka     = "trigger:kafka"
)

// ErrInvalidPortFormat is returned when a port reference is not "{node_name}:{port_name}".
var ErrInvalidPortFormat = errors.New("invalid port format")

// Connection connects two ports directly.
type Connection struct {
	ID         string `json:"id"`
	SourcePort string `json:"source_port" validate:"required"` // "{node_name}:{port_name}"
	TargetPort string `json:"target_port" validate:"required"` // "{node_name}:{port_name}"
}

// SourceNode returns the name of the node the connection starts from.
func (c *Connection) SourceNode() (string, error) {
	node, _, err := ParsePort(c.SourcePort)

	return node, err
}

// TargetNode returns the name of the node the connection ends at.
func (c *Connection) TargetNode() (string, error) {
	node, _, err := ParsePort(c.TargetPort)

	return node, err
}

// ParsePort splits a port reference into node name and port name. Node names may contain
// colons, so the last separator wins.
func ParsePort(port string) (string, string, error) {
	idx := strings.LastIndex(port, ":")
	if idx <= 0 || idx == len(port)-1 {
		return "", "", ErrInvalidPortFormat
	}

	return port[:idx], port[idx+1:], nil
}

// WorkflowNode represents a node instance in a workflow. Name is unique within a workflow.
type WorkflowNode struct {
	Name        string         `json:"name"                   validate:"required,min=1"`
	Type        string         `json:"type"                   validate:"required"`
	Category    CategoryType   `json:"category"               validate:"required"`
	TriggerKind TriggerKind    `json:"trigger_kind,omitempty"`
	Disabled    bool           `json:"disabled,omitempty"`
	Config      map[string]any `json:"config,omitempty"`
	Issues      []string       `json:"issues,omitempty"` // Unresolved configuration problems
	PositionX   int            `json:"position_x"`
	PositionY   int            `json:"position_y"`
}

// Helper methods for category checking.
func (n *WorkflowNode) IsActionNode() bool {
	return n.Category == CategoryTypeAction
}

func (n *WorkflowNode) IsTriggerNode() bool {
	return n.Category == CategoryTypeTrigger
}

// IsWebhookTrigger reports whether the node is a trigger started by an external call.
func (n *WorkflowNode) IsWebhookTrigger() bool {
	if !n.IsTriggerNode() {
		return false
	}

	if n.TriggerKind != TriggerKindNone {
		return n.TriggerKind == TriggerKindWebhook
	}

	return n.Type == NodeTypeTriggerWebhook
}

// HasIssues reports whether the node has unresolved configuration issues.
func (n *WorkflowNode) HasIssues() bool {
	return len(n.Issues) > 0
}
