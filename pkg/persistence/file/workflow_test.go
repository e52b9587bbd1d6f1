package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dukex/operion-runner/pkg/models"
	"github.com/dukex/operion-runner/pkg/persistence"
	"github.com/dukex/operion-runner/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflowRepository_SaveAndGet(t *testing.T) {
	repo := NewWorkflowRepository(t.TempDir())
	workflow := testutil.CreateLinearWorkflow()

	document := &models.WorkflowDocument{
		Workflow: workflow,
		PinData:  models.PinData{"Webhook": {{"body": "hello"}}},
		RunData:  models.RunData{"Set": {testutil.Success(map[string]any{"a": float64(1)})}},
	}

	require.NoError(t, repo.Save(t.Context(), document))
	assert.False(t, workflow.CreatedAt.IsZero())

	loaded, err := repo.GetByID(t.Context(), workflow.ID)
	require.NoError(t, err)

	assert.Equal(t, workflow.ID, loaded.Workflow.ID)
	assert.Len(t, loaded.Workflow.Nodes, 4)
	assert.Len(t, loaded.Workflow.Connections, 3)
	assert.True(t, loaded.PinData.Has("Webhook"))

	first, ok := loaded.RunData.First("Set")
	require.True(t, ok)
	assert.Equal(t, float64(1), first.Data[0]["a"])
}

func TestWorkflowRepository_GetMissing(t *testing.T) {
	repo := NewWorkflowRepository(t.TempDir())

	document, err := repo.GetByID(t.Context(), "missing")

	assert.Nil(t, document)
	assert.True(t, persistence.IsWorkflowNotFound(err))
}

func TestWorkflowRepository_GetRejectsInvalidDocument(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "workflows"), 0750))

	tests := []struct {
		name string
		body string
	}{
		{"missing workflow", `{"pin_data": {}}`},
		{"node without name", `{"workflow": {"id": "wf", "name": "wf", "nodes": [{"type": "log"}], "connections": []}}`},
		{"connection without port", `{"workflow": {"id": "wf", "name": "wf", "nodes": [], "connections": [{"source_port": "A", "target_port": "B:input"}]}}`},
		{"unknown status", `{"workflow": {"id": "wf", "name": "wf", "status": "running", "nodes": [], "connections": []}}`},
	}

	repo := NewWorkflowRepository(root)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, os.WriteFile(filepath.Join(root, "workflows", "wf.json"), []byte(tt.body), 0600))

			_, err := repo.GetByID(t.Context(), "wf")

			assert.True(t, persistence.IsInvalidDocument(err), "got %v", err)
		})
	}
}

func TestWorkflowRepository_SaveRejectsMissingWorkflow(t *testing.T) {
	repo := NewWorkflowRepository(t.TempDir())

	err := repo.Save(t.Context(), &models.WorkflowDocument{})

	assert.True(t, persistence.IsInvalidDocument(err))
}

func TestWorkflowRepository_Delete(t *testing.T) {
	repo := NewWorkflowRepository(t.TempDir())
	workflow := testutil.CreateLinearWorkflow()

	require.NoError(t, repo.Save(t.Context(), &models.WorkflowDocument{Workflow: workflow}))
	require.NoError(t, repo.Delete(t.Context(), workflow.ID))
	require.NoError(t, repo.Delete(t.Context(), workflow.ID))

	_, err := repo.GetByID(t.Context(), workflow.ID)
	assert.True(t, persistence.IsWorkflowNotFound(err))
}

func TestPersistence_HealthCheck(t *testing.T) {
	root := t.TempDir()

	assert.NoError(t, NewPersistence("file://"+root).HealthCheck(t.Context()))
	assert.Error(t, NewPersistence(filepath.Join(root, "missing")).HealthCheck(t.Context()))
}
