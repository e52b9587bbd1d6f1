// Package testutil provides test data builders and utilities for testing.
package testutil

import (
	"github.com/dukex/operion-runner/pkg/models"
	"github.com/google/uuid"
)

// CreateTestNode creates a test WorkflowNode with default values that can be overridden.
func CreateTestNode(name string, overrides ...func(*models.WorkflowNode)) *models.WorkflowNode {
	node := &models.WorkflowNode{
		Name:      name,
		Type:      "log",
		Category:  models.CategoryTypeAction,
		Config:    map[string]any{"message": "test", "level": "info"},
		PositionX: 100,
		PositionY: 200,
	}

	for _, override := range overrides {
		override(node)
	}

	return node
}

// WithTriggerNode configures the node as a webhook trigger node.
func WithTriggerNode() func(*models.WorkflowNode) {
	return WithTrigger(models.NodeTypeTriggerWebhook, models.TriggerKindWebhook)
}

// WithTrigger configures the node as a trigger of the given type and kind.
func WithTrigger(nodeType string, kind models.TriggerKind) func(*models.WorkflowNode) {
	return func(n *models.WorkflowNode) {
		n.Type = nodeType
		n.Category = models.CategoryTypeTrigger
		n.TriggerKind = kind
		n.Config = map[string]any{}
	}
}

// WithConfig sets the node configuration.
func WithConfig(config map[string]any) func(*models.WorkflowNode) {
	return func(n *models.WorkflowNode) {
		n.Config = config
	}
}

// WithDisabled sets the node disabled status.
func WithDisabled(disabled bool) func(*models.WorkflowNode) {
	return func(n *models.WorkflowNode) {
		n.Disabled = disabled
	}
}

// WithIssues attaches unresolved configuration issues to the node.
func WithIssues(issues ...string) func(*models.WorkflowNode) {
	return func(n *models.WorkflowNode) {
		n.Issues = issues
	}
}

// WithType sets the node type.
func WithType(nodeType string) func(*models.WorkflowNode) {
	return func(n *models.WorkflowNode) {
		n.Type = nodeType
	}
}

// Connect creates a main-port connection between two named nodes.
func Connect(from, to string) *models.Connection {
	return &models.Connection{
		ID:         uuid.New().String(),
		SourcePort: from + ":main",
		TargetPort: to + ":input",
	}
}

// CreateTestWorkflow creates an empty draft workflow for testing.
func CreateTestWorkflow() *models.Workflow {
	return &models.Workflow{
		ID:          uuid.New().String(),
		Name:        "Test Workflow",
		Description: "A workflow for testing",
		Status:      models.WorkflowStatusDraft,
		Owner:       "test-user",
		Variables:   map[string]any{"env": "test"},
		Nodes:       []*models.WorkflowNode{},
		Connections: []*models.Connection{},
	}
}

// CreateTestWorkflowWithNodes creates a workflow with the given nodes and connections.
func CreateTestWorkflowWithNodes(nodes []*models.WorkflowNode, connections ...*models.Connection) *models.Workflow {
	workflow := CreateTestWorkflow()
	workflow.Nodes = nodes
	workflow.Connections = append(workflow.Connections, connections...)

	return workflow
}

// CreateLinearWorkflow creates Webhook -> Set -> HTTP Request -> Log.
func CreateLinearWorkflow() *models.Workflow {
	return CreateTestWorkflowWithNodes(
		[]*models.WorkflowNode{
			CreateTestNode("Webhook", WithTriggerNode()),
			CreateTestNode("Set", WithType("transform")),
			CreateTestNode("HTTP Request", WithType("httprequest")),
			CreateTestNode("Log"),
		},
		Connect("Webhook", "Set"),
		Connect("Set", "HTTP Request"),
		Connect("HTTP Request", "Log"),
	)
}

// Success builds a successful run result.
func Success(items ...map[string]any) models.TaskData {
	if len(items) == 0 {
		items = []map[string]any{{"ok": true}}
	}

	return models.TaskData{Data: items}
}

// Failure builds a failed run result.
func Failure(message string) models.TaskData {
	return models.TaskData{Error: &models.TaskError{Message: message}}
}
