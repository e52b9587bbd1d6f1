package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/dukex/operion-runner/pkg/graph"
	"github.com/dukex/operion-runner/pkg/models"
	"github.com/dukex/operion-runner/pkg/runplan"
	"github.com/dukex/operion-runner/pkg/testutil"
	"github.com/dukex/operion-runner/pkg/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cli "github.com/urfave/cli/v3"
)

func writeDocument(t *testing.T, document *models.WorkflowDocument) string {
	t.Helper()

	body, err := json.Marshal(document)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "workflow.json")
	require.NoError(t, os.WriteFile(path, body, 0600))

	return path
}

func TestPlanDocument(t *testing.T) {
	document := &models.WorkflowDocument{
		Workflow: testutil.CreateLinearWorkflow(),
		RunData: models.RunData{
			"Webhook":      {testutil.Success()},
			"Set":          {testutil.Failure("boom")},
			"HTTP Request": {testutil.Success()},
		},
	}

	plan, err := planDocument(document, "Log")
	require.NoError(t, err)

	assert.Equal(t, []string{"Set"}, plan.StartNodes)
	assert.Contains(t, plan.RunData, "Webhook")
	assert.NotContains(t, plan.RunData, "Set")
	assert.False(t, plan.RequiresWebhook)
}

func TestPlanDocument_Errors(t *testing.T) {
	_, err := planDocument(&models.WorkflowDocument{Workflow: testutil.CreateLinearWorkflow()}, "Missing")
	assert.ErrorIs(t, err, runplan.ErrNodeNotFound)

	cyclic := testutil.CreateTestWorkflowWithNodes(
		[]*models.WorkflowNode{testutil.CreateTestNode("A"), testutil.CreateTestNode("B")},
		testutil.Connect("A", "B"),
		testutil.Connect("B", "A"),
	)

	_, err = planDocument(&models.WorkflowDocument{Workflow: cyclic}, "A")
	assert.ErrorIs(t, err, graph.ErrCycleFound)
}

func TestPlanCommand(t *testing.T) {
	path := writeDocument(t, &models.WorkflowDocument{Workflow: testutil.CreateLinearWorkflow()})

	var out bytes.Buffer

	root := &cli.Command{
		Name:     "operion-runner",
		Writer:   &out,
		Commands: []*cli.Command{PlanCommand()},
	}

	err := root.Run(t.Context(), []string{"operion-runner", "plan", "--workflow", path, "--destination", "Set"})
	require.NoError(t, err)

	var plan web.PlanRunResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &plan))
	assert.Equal(t, []string{"Webhook"}, plan.StartNodes)
	assert.True(t, plan.RequiresWebhook)
}

func TestReadDocument_Errors(t *testing.T) {
	_, err := readDocument(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "failed to read workflow document")

	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0600))

	_, err = readDocument(path)
	assert.ErrorContains(t, err, "has no workflow")
}
