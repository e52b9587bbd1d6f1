package runplan

import (
	"github.com/dukex/operion-runner/pkg/models"
)

// WaitsForWebhook reports whether a run would have to wait for an external webhook call
// before it can proceed. That is the case when the run begins at an enabled webhook trigger
// without pinned data: either a start node is such a trigger, or no start nodes are given
// and the workflow contains one.
func WaitsForWebhook(workflow *models.Workflow, startNodes []string, pinData models.PinData) bool {
	if workflow == nil {
		return false
	}

	waits := func(node *models.WorkflowNode) bool {
		return !node.Disabled && node.IsWebhookTrigger() && !pinData.Has(node.Name)
	}

	if len(startNodes) > 0 {
		for _, name := range startNodes {
			if node, ok := workflow.NodeByName(name); ok && waits(node) {
				return true
			}
		}

		return false
	}

	for _, node := range workflow.Nodes {
		if waits(node) {
			return true
		}
	}

	return false
}
