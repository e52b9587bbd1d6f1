// Package session keeps one editor session per open workflow.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dukex/operion-runner/pkg/models"
	"github.com/dukex/operion-runner/pkg/orchestrator"
	"github.com/dukex/operion-runner/pkg/persistence"
	"github.com/dukex/operion-runner/pkg/state"
	"go.opentelemetry.io/otel/trace"
)

// Session is the editor state of one workflow.
type Session struct {
	Workflows    *state.WorkflowsStore
	UI           *state.UIStore
	Orchestrator *orchestrator.Orchestrator
}

// Manager lazily loads documents and wires their sessions. All sessions share one
// RootStore, backend and notifier.
type Manager struct {
	repo     persistence.WorkflowRepository
	root     *state.RootStore
	backend  orchestrator.Backend
	notifier orchestrator.Notifier
	messages orchestrator.Messages
	tracer   trace.Tracer
	logger   *slog.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(
	repo persistence.WorkflowRepository,
	root *state.RootStore,
	backend orchestrator.Backend,
	notifier orchestrator.Notifier,
	messages orchestrator.Messages,
	tracer trace.Tracer,
	logger *slog.Logger,
) *Manager {
	return &Manager{
		repo:     repo,
		root:     root,
		backend:  backend,
		notifier: notifier,
		messages: messages,
		tracer:   tracer,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// Root returns the shared root store.
func (m *Manager) Root() *state.RootStore {
	return m.root
}

// Get returns the session of a workflow, loading its document on first use.
func (m *Manager) Get(ctx context.Context, workflowID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[workflowID]; ok {
		return s, nil
	}

	document, err := m.repo.GetByID(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	workflows := state.NewWorkflowsStore(document.Workflow, document.PinData, document.RunData)
	ui := state.NewUIStore()

	var opts []orchestrator.Option
	if m.tracer != nil {
		opts = append(opts, orchestrator.WithTracer(m.tracer))
	}

	s := &Session{
		Workflows: workflows,
		UI:        ui,
		Orchestrator: orchestrator.New(workflows, m.root, ui, m.backend, m.notifier, m.messages,
			m.logger.With("workflow_id", workflowID), opts...),
	}
	m.sessions[workflowID] = s

	m.logger.InfoContext(ctx, "Opened editor session", "workflow_id", workflowID)

	return s, nil
}

// Lookup returns an already open session.
func (m *Manager) Lookup(workflowID string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[workflowID]

	return s, ok
}

// Save writes the session's document back to the repository.
func (m *Manager) Save(ctx context.Context, workflowID string) error {
	s, ok := m.Lookup(workflowID)
	if !ok {
		return persistence.NewWorkflowError("Save", workflowID, persistence.ErrWorkflowNotFound)
	}

	workflow, err := s.Workflows.WorkflowDataToSave(ctx)
	if err != nil {
		return fmt.Errorf("failed to snapshot workflow %s: %w", workflowID, err)
	}

	return m.repo.Save(ctx, &models.WorkflowDocument{
		Workflow: workflow,
		PinData:  s.Workflows.PinData(),
		RunData:  s.Workflows.RunData(),
	})
}
