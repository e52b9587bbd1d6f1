// Package persistence stores editor workflow documents.
package persistence

import (
	"context"

	"github.com/dukex/operion-runner/pkg/models"
)

// WorkflowRepository loads and stores workflow documents.
type WorkflowRepository interface {
	// GetByID returns ErrWorkflowNotFound when no document exists.
	GetByID(ctx context.Context, id string) (*models.WorkflowDocument, error)
	Save(ctx context.Context, document *models.WorkflowDocument) error
	Delete(ctx context.Context, id string) error
}

type Persistence interface {
	WorkflowRepository() WorkflowRepository
	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}
