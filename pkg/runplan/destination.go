package runplan

import (
	"errors"
	"fmt"

	"github.com/dukex/operion-runner/pkg/models"
)

// ErrNodeNotFound is returned when a plan targets a node the workflow does not have.
var ErrNodeNotFound = errors.New("node not found")

// NodeGraph is a ParentLookup that can also resolve nodes by name.
type NodeGraph interface {
	ParentLookup
	Node(name string) (*models.WorkflowNode, bool)
}

// PlanDestination plans a run that ends at destination. When nothing upstream has to run, the
// run starts at the destination itself and its previous result is not carried over.
func PlanDestination(g NodeGraph, destination string, runData models.RunData, pinData models.PinData) (models.StartPlan, error) {
	if _, ok := g.Node(destination); !ok {
		return models.StartPlan{}, fmt.Errorf("destination %q: %w", destination, ErrNodeNotFound)
	}

	plan := Consolidate(g.ParentNodes(destination), runData, pinData, g)
	if len(plan.StartNodeNames) == 0 {
		plan.StartNodeNames = []string{destination}
		plan.RunData = withoutNodes(plan.RunData, plan.StartNodeNames)
	}

	return plan, nil
}
