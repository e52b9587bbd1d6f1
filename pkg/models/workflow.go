// Package models defines the core domain models for node-based workflow automation
package models

import "time"

// WorkflowStatus represents the lifecycle state of a workflow.
type WorkflowStatus string

const (
	WorkflowStatusDraft       WorkflowStatus = "draft"       // Editable, triggers not registered
	WorkflowStatusPublished   WorkflowStatus = "published"   // Active, triggers registered
	WorkflowStatusUnpublished WorkflowStatus = "unpublished" // Historical, triggers removed
)

// Workflow represents a node-based workflow as edited in the editor.
type Workflow struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"                   validate:"required,min=3"`
	Description string          `json:"description"`
	Status      WorkflowStatus  `json:"status"                 validate:"required"`
	Nodes       []*WorkflowNode `json:"nodes"`       // Node instances in the workflow
	Connections []*Connection   `json:"connections"` // Connections between nodes
	Variables   map[string]any  `json:"variables,omitempty"`
	Metadata    map[string]any  `json:"metadata,omitempty"`
	Owner       string          `json:"owner,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// IsActive reports whether the workflow's triggers are currently registered.
func (w *Workflow) IsActive() bool {
	return w != nil && w.Status == WorkflowStatusPublished
}

// NodeByName returns the node with the given name.
func (w *Workflow) NodeByName(name string) (*WorkflowNode, bool) {
	if w == nil {
		return nil, false
	}

	for _, node := range w.Nodes {
		if node.Name == name {
			return node, true
		}
	}

	return nil, false
}

// Clone returns a deep copy of the workflow graph. Config maps are copied one level deep.
func (w *Workflow) Clone() *Workflow {
	if w == nil {
		return nil
	}

	clone := *w

	clone.Nodes = make([]*WorkflowNode, 0, len(w.Nodes))
	for _, node := range w.Nodes {
		n := *node
		n.Config = copyMap(node.Config)
		n.Issues = append([]string(nil), node.Issues...)
		clone.Nodes = append(clone.Nodes, &n)
	}

	clone.Connections = make([]*Connection, 0, len(w.Connections))
	for _, conn := range w.Connections {
		c := *conn
		clone.Connections = append(clone.Connections, &c)
	}

	clone.Variables = copyMap(w.Variables)
	clone.Metadata = copyMap(w.Metadata)

	return &clone
}

func copyMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}

	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}

	return dst
}
