package runplan_test

import (
	"testing"

	"github.com/dukex/operion-runner/pkg/models"
	"github.com/dukex/operion-runner/pkg/runplan"
	"github.com/dukex/operion-runner/pkg/testutil"
	"github.com/stretchr/testify/assert"
)

func TestWaitsForWebhook(t *testing.T) {
	workflow := testutil.CreateTestWorkflowWithNodes(
		[]*models.WorkflowNode{
			testutil.CreateTestNode("Webhook", testutil.WithTriggerNode()),
			testutil.CreateTestNode("Manual", testutil.WithTrigger(models.NodeTypeTriggerManual, models.TriggerKindManual)),
			testutil.CreateTestNode("Log"),
		},
		testutil.Connect("Webhook", "Log"),
		testutil.Connect("Manual", "Log"),
	)

	tests := []struct {
		name       string
		workflow   *models.Workflow
		startNodes []string
		pinData    models.PinData
		want       bool
	}{
		{name: "full run with webhook trigger", workflow: workflow, want: true},
		{name: "full run with pinned webhook", workflow: workflow, pinData: models.PinData{"Webhook": {{"a": 1}}}, want: false},
		{name: "start at webhook", workflow: workflow, startNodes: []string{"Webhook"}, want: true},
		{name: "start at manual trigger", workflow: workflow, startNodes: []string{"Manual"}, want: false},
		{name: "start at action", workflow: workflow, startNodes: []string{"Log"}, want: false},
		{name: "nil workflow", workflow: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, runplan.WaitsForWebhook(tt.workflow, tt.startNodes, tt.pinData))
		})
	}
}

func TestWaitsForWebhook_DisabledWebhookIgnored(t *testing.T) {
	workflow := testutil.CreateTestWorkflowWithNodes([]*models.WorkflowNode{
		testutil.CreateTestNode("Webhook", testutil.WithTriggerNode(), testutil.WithDisabled(true)),
	})

	assert.False(t, runplan.WaitsForWebhook(workflow, nil, nil))
}
