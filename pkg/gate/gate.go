// Package gate holds the pre-flight checks a manual run has to pass before it is dispatched.
package gate

import (
	"github.com/dukex/operion-runner/pkg/models"
)

// ConnectionState exposes the transport layer's liveness flag.
type ConnectionState interface {
	PushConnectionActive() bool
}

// TriggerSource lists the enabled trigger nodes of a workflow.
type TriggerSource interface {
	TriggerNodes() []*models.WorkflowNode
}

// CheckPushConnection fails when the push connection to the server is not live.
func CheckPushConnection(conn ConnectionState) error {
	if conn == nil || !conn.PushConnectionActive() {
		return &ConnectionError{Op: "CheckPushConnection"}
	}

	return nil
}

// CheckTriggerConflict fails when the workflow is active and its only enabled trigger is a
// webhook trigger: a manual run would have to register the same webhook the active workflow
// already holds.
func CheckTriggerConflict(g TriggerSource, isWorkflowActive bool) error {
	if !isWorkflowActive {
		return nil
	}

	triggers := g.TriggerNodes()
	if len(triggers) != 1 {
		return nil
	}

	trigger := triggers[0]
	if !trigger.IsWebhookTrigger() {
		return nil
	}

	return &TriggerConflictError{NodeName: trigger.Name, NodeType: trigger.Type}
}

// CheckIssues fails when the run will wait for a webhook call while nodes still report
// configuration issues. Runs that do not wait are allowed through.
func CheckIssues(nodesHaveIssues, requiresWebhook bool) error {
	if requiresWebhook && nodesHaveIssues {
		return &UnresolvedIssuesError{}
	}

	return nil
}
