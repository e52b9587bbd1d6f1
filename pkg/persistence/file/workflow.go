package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/dukex/operion-runner/pkg/models"
	"github.com/dukex/operion-runner/pkg/persistence"
)

// WorkflowRepository stores one JSON document per workflow under <root>/workflows.
type WorkflowRepository struct {
	root string
}

// NewWorkflowRepository creates a new workflow repository.
func NewWorkflowRepository(root string) *WorkflowRepository {
	return &WorkflowRepository{root: root}
}

func (wr *WorkflowRepository) GetByID(_ context.Context, workflowID string) (*models.WorkflowDocument, error) {
	filePath := filepath.Clean(path.Join(wr.root, "workflows", filepath.Base(workflowID)+".json"))

	body, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, persistence.NewWorkflowError("GetByID", workflowID, persistence.ErrWorkflowNotFound)
		}

		return nil, fmt.Errorf("failed to fetch workflow %s: %w", workflowID, err)
	}

	if err := validateDocument(workflowID, body); err != nil {
		return nil, err
	}

	var document models.WorkflowDocument

	err = json.Unmarshal(body, &document)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal workflow %s: %w", workflowID, err)
	}

	return &document, nil
}

func (wr *WorkflowRepository) Save(_ context.Context, document *models.WorkflowDocument) error {
	if document == nil || document.Workflow == nil {
		return persistence.NewWorkflowError("Save", "", persistence.ErrInvalidDocument)
	}

	workflow := document.Workflow

	err := os.MkdirAll(wr.root+"/workflows", 0750)
	if err != nil {
		return fmt.Errorf("failed to create workflows directory: %w", err)
	}

	now := time.Now().UTC()
	if workflow.CreatedAt.IsZero() {
		workflow.CreatedAt = now
	}

	workflow.UpdatedAt = now

	data, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal workflow %s: %w", workflow.ID, err)
	}

	if err := validateDocument(workflow.ID, data); err != nil {
		return err
	}

	filePath := path.Join(wr.root+"/workflows", filepath.Base(workflow.ID)+".json")

	return os.WriteFile(filePath, data, 0600)
}

func (wr *WorkflowRepository) Delete(_ context.Context, id string) error {
	filePath := path.Join(wr.root+"/workflows", filepath.Base(id)+".json")

	err := os.Remove(filePath)

	if err != nil && os.IsNotExist(err) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to delete workflow %s: %w", id, err)
	}

	return nil
}
