package persistence_test

import (
	"errors"
	"testing"

	"github.com/dukex/operion-runner/pkg/persistence"
	"github.com/stretchr/testify/assert"
)

func TestStandardizedErrors(t *testing.T) {
	t.Parallel()

	t.Run("error checking functions work correctly", func(t *testing.T) {
		notFound := persistence.NewWorkflowError("GetByID", "workflow-123", persistence.ErrWorkflowNotFound)
		invalid := persistence.NewWorkflowError("Save", "workflow-123", persistence.ErrInvalidDocument)

		assert.True(t, persistence.IsWorkflowNotFound(notFound))
		assert.False(t, persistence.IsInvalidDocument(notFound))
		assert.True(t, persistence.IsInvalidDocument(invalid))
		assert.True(t, errors.Is(notFound, persistence.ErrWorkflowNotFound))
	})

	t.Run("workflow error contains context", func(t *testing.T) {
		err := persistence.NewWorkflowError("GetByID", "workflow-123", persistence.ErrWorkflowNotFound)

		assert.Contains(t, err.Error(), "GetByID")
		assert.Contains(t, err.Error(), "workflow-123")
		assert.Contains(t, err.Error(), "workflow not found")
	})

	t.Run("workflow error with message", func(t *testing.T) {
		err := &persistence.WorkflowError{
			Op:         "Save",
			WorkflowID: "workflow-123",
			Err:        persistence.ErrInvalidDocument,
			Message:    "nodes is required",
		}

		assert.Contains(t, err.Error(), "nodes is required")
		assert.True(t, persistence.IsInvalidDocument(err))
	})
}
