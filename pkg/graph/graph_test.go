package graph_test

import (
	"testing"

	"github.com/dukex/operion-runner/pkg/graph"
	"github.com/dukex/operion-runner/pkg/models"
	"github.com/dukex/operion-runner/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ParentsInConnectionOrder(t *testing.T) {
	workflow := testutil.CreateTestWorkflowWithNodes(
		[]*models.WorkflowNode{
			testutil.CreateTestNode("A"),
			testutil.CreateTestNode("B"),
			testutil.CreateTestNode("Merge", testutil.WithType("merge")),
		},
		testutil.Connect("B", "Merge"),
		testutil.Connect("A", "Merge"),
		testutil.Connect("A", "Merge"),
	)

	g, err := graph.New(workflow)
	require.NoError(t, err)

	assert.Equal(t, []string{"B", "A"}, g.ParentNodes("Merge"))
	assert.Equal(t, []string{"Merge"}, g.ChildNodes("A"))
	assert.Empty(t, g.ParentNodes("A"))
	assert.Empty(t, g.ParentNodes("unknown"))
	assert.Equal(t, []string{"A", "B", "Merge"}, g.NodeNames())
}

func TestNew_ParentNodesReturnsCopy(t *testing.T) {
	g, err := graph.New(testutil.CreateLinearWorkflow())
	require.NoError(t, err)

	parents := g.ParentNodes("Set")
	parents[0] = "mutated"

	assert.Equal(t, []string{"Webhook"}, g.ParentNodes("Set"))
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name     string
		workflow *models.Workflow
		wantErr  error
	}{
		{
			name:     "nil workflow",
			workflow: nil,
			wantErr:  graph.ErrInvalidGraph,
		},
		{
			name: "duplicate node names",
			workflow: testutil.CreateTestWorkflowWithNodes([]*models.WorkflowNode{
				testutil.CreateTestNode("A"),
				testutil.CreateTestNode("A"),
			}),
			wantErr: graph.ErrInvalidGraph,
		},
		{
			name: "unknown connection target",
			workflow: testutil.CreateTestWorkflowWithNodes(
				[]*models.WorkflowNode{testutil.CreateTestNode("A")},
				testutil.Connect("A", "Ghost"),
			),
			wantErr: graph.ErrInvalidGraph,
		},
		{
			name: "malformed port",
			workflow: testutil.CreateTestWorkflowWithNodes(
				[]*models.WorkflowNode{testutil.CreateTestNode("A"), testutil.CreateTestNode("B")},
				&models.Connection{ID: "bad", SourcePort: "A", TargetPort: "B:input"},
			),
			wantErr: graph.ErrInvalidGraph,
		},
		{
			name: "self loop",
			workflow: testutil.CreateTestWorkflowWithNodes(
				[]*models.WorkflowNode{testutil.CreateTestNode("A")},
				testutil.Connect("A", "A"),
			),
			wantErr: graph.ErrCycleFound,
		},
		{
			name: "indirect cycle",
			workflow: testutil.CreateTestWorkflowWithNodes(
				[]*models.WorkflowNode{
					testutil.CreateTestNode("A"),
					testutil.CreateTestNode("B"),
					testutil.CreateTestNode("C"),
				},
				testutil.Connect("A", "B"),
				testutil.Connect("B", "C"),
				testutil.Connect("C", "A"),
			),
			wantErr: graph.ErrCycleFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := graph.New(tt.workflow)
			require.Error(t, err)
			assert.Nil(t, g)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNew_CycleErrorPath(t *testing.T) {
	workflow := testutil.CreateTestWorkflowWithNodes(
		[]*models.WorkflowNode{
			testutil.CreateTestNode("Start"),
			testutil.CreateTestNode("A"),
			testutil.CreateTestNode("B"),
		},
		testutil.Connect("Start", "A"),
		testutil.Connect("A", "B"),
		testutil.Connect("B", "A"),
	)

	_, err := graph.New(workflow)

	var cycleErr *graph.CycleError
	require.ErrorAs(t, err, &cycleErr)
	assert.Equal(t, []string{"A", "B", "A"}, cycleErr.Path)
	assert.Contains(t, err.Error(), "A -> B -> A")
}

func TestGraph_IsDisabled(t *testing.T) {
	workflow := testutil.CreateTestWorkflowWithNodes([]*models.WorkflowNode{
		testutil.CreateTestNode("On"),
		testutil.CreateTestNode("Off", testutil.WithDisabled(true)),
	})

	g, err := graph.New(workflow)
	require.NoError(t, err)

	assert.False(t, g.IsDisabled("On"))
	assert.True(t, g.IsDisabled("Off"))
	assert.True(t, g.IsDisabled("Unknown"))
}

func TestGraph_TriggerNodesSkipsDisabled(t *testing.T) {
	workflow := testutil.CreateTestWorkflowWithNodes([]*models.WorkflowNode{
		testutil.CreateTestNode("Webhook", testutil.WithTriggerNode()),
		testutil.CreateTestNode("Schedule",
			testutil.WithTrigger(models.NodeTypeTriggerScheduler, models.TriggerKindPolling),
			testutil.WithDisabled(true)),
		testutil.CreateTestNode("Log"),
	})

	g, err := graph.New(workflow)
	require.NoError(t, err)

	triggers := g.TriggerNodes()
	require.Len(t, triggers, 1)
	assert.Equal(t, "Webhook", triggers[0].Name)
}

func TestGraph_NodesHaveIssues(t *testing.T) {
	clean, err := graph.New(testutil.CreateLinearWorkflow())
	require.NoError(t, err)
	assert.False(t, clean.NodesHaveIssues())

	disabledOnly, err := graph.New(testutil.CreateTestWorkflowWithNodes([]*models.WorkflowNode{
		testutil.CreateTestNode("Broken", testutil.WithIssues("missing url"), testutil.WithDisabled(true)),
	}))
	require.NoError(t, err)
	assert.False(t, disabledOnly.NodesHaveIssues())

	broken, err := graph.New(testutil.CreateTestWorkflowWithNodes([]*models.WorkflowNode{
		testutil.CreateTestNode("Broken", testutil.WithIssues("missing url")),
	}))
	require.NoError(t, err)
	assert.True(t, broken.NodesHaveIssues())
}
