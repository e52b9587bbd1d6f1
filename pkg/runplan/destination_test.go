package runplan_test

import (
	"testing"

	"github.com/dukex/operion-runner/pkg/graph"
	"github.com/dukex/operion-runner/pkg/models"
	"github.com/dukex/operion-runner/pkg/runplan"
	"github.com/dukex/operion-runner/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanDestination(t *testing.T) {
	g, err := graph.New(testutil.CreateLinearWorkflow())
	require.NoError(t, err)

	tests := []struct {
		name        string
		destination string
		runData     models.RunData
		wantStart   []string
		wantReused  []string
		wantDropped []string
	}{
		{
			name:        "no run data starts at direct parents",
			destination: "Log",
			wantStart:   []string{"HTTP Request"},
		},
		{
			name:        "trigger destination starts at itself",
			destination: "Webhook",
			wantStart:   []string{"Webhook"},
		},
		{
			name:        "fully satisfied upstream starts at destination",
			destination: "HTTP Request",
			runData: models.RunData{
				"Webhook": {testutil.Success()},
				"Set":     {testutil.Success()},
			},
			wantStart:  []string{"HTTP Request"},
			wantReused: []string{"Webhook", "Set"},
		},
		{
			name:        "destination rerun drops its own previous result",
			destination: "HTTP Request",
			runData: models.RunData{
				"Webhook":      {testutil.Success()},
				"Set":          {testutil.Success()},
				"HTTP Request": {testutil.Failure("timeout")},
			},
			wantStart:   []string{"HTTP Request"},
			wantReused:  []string{"Webhook", "Set"},
			wantDropped: []string{"HTTP Request"},
		},
		{
			name:        "gap restarts the first missing ancestor",
			destination: "Log",
			runData: models.RunData{
				"Webhook":      {testutil.Success()},
				"HTTP Request": {testutil.Success()},
			},
			wantStart:  []string{"Set"},
			wantReused: []string{"Webhook", "HTTP Request"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := runplan.PlanDestination(g, tt.destination, tt.runData, nil)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStart, plan.StartNodeNames)

			if tt.wantReused == nil {
				assert.Nil(t, plan.RunData)

				return
			}

			for _, name := range tt.wantReused {
				assert.Contains(t, plan.RunData, name)
			}

			for _, name := range tt.wantDropped {
				assert.NotContains(t, plan.RunData, name)
			}
		})
	}
}

func TestPlanDestination_UnknownNode(t *testing.T) {
	g, err := graph.New(testutil.CreateLinearWorkflow())
	require.NoError(t, err)

	_, err = runplan.PlanDestination(g, "Missing", nil, nil)

	assert.ErrorIs(t, err, runplan.ErrNodeNotFound)
}
