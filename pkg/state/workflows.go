package state

import (
	"context"
	"errors"
	"sync"

	"github.com/dukex/operion-runner/pkg/graph"
	"github.com/dukex/operion-runner/pkg/models"
)

// ErrNoWorkflow is returned when the store has no workflow loaded.
var ErrNoWorkflow = errors.New("no workflow loaded")

// WorkflowsStore is the editor's document store: the workflow being edited, its pinned data,
// the results of the last run and the state of the active execution.
type WorkflowsStore struct {
	mu sync.RWMutex

	workflow *models.Workflow
	runData  models.RunData
	pinData  models.PinData

	activeExecutionID          string
	executionWaitingForWebhook bool
}

// NewWorkflowsStore creates a store holding the given document.
func NewWorkflowsStore(workflow *models.Workflow, pinData models.PinData, runData models.RunData) *WorkflowsStore {
	return &WorkflowsStore{
		workflow: workflow,
		pinData:  pinData,
		runData:  runData,
	}
}

// CurrentWorkflow returns the workflow being edited.
func (s *WorkflowsStore) CurrentWorkflow() *models.Workflow {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.workflow
}

// SetWorkflow replaces the workflow being edited.
func (s *WorkflowsStore) SetWorkflow(workflow *models.Workflow) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.workflow = workflow
}

// WorkflowDataToSave returns a snapshot of the workflow detached from the store.
func (s *WorkflowsStore) WorkflowDataToSave(ctx context.Context) (*models.Workflow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.workflow == nil {
		return nil, ErrNoWorkflow
	}

	return s.workflow.Clone(), nil
}

// ParentNodes returns the direct parents of a node in the current workflow.
func (s *WorkflowsStore) ParentNodes(name string) []string {
	g, err := graph.New(s.CurrentWorkflow())
	if err != nil {
		return nil
	}

	return g.ParentNodes(name)
}

// IsWorkflowActive reports whether the current workflow is active.
func (s *WorkflowsStore) IsWorkflowActive() bool {
	return s.CurrentWorkflow().IsActive()
}

// NodesIssuesExist reports whether any enabled node has unresolved issues.
func (s *WorkflowsStore) NodesIssuesExist() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.workflow == nil {
		return false
	}

	for _, node := range s.workflow.Nodes {
		if !node.Disabled && node.HasIssues() {
			return true
		}
	}

	return false
}

// RunData returns the results of the last run, or nil.
func (s *WorkflowsStore) RunData() models.RunData {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.runData
}

// AddNodeRunData appends a node result pushed by the execution backend.
func (s *WorkflowsStore) AddNodeRunData(node string, result models.TaskData) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(models.RunData, len(s.runData)+1)
	for name, results := range s.runData {
		next[name] = results
	}

	next[node] = append(append([]models.TaskData(nil), s.runData[node]...), result)
	s.runData = next
}

// SetRunData replaces the run data. A new run starts from the data it reuses; nil clears it.
func (s *WorkflowsStore) SetRunData(runData models.RunData) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runData = runData
}

// PinData returns the pinned node outputs.
func (s *WorkflowsStore) PinData() models.PinData {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.pinData
}

// SetPinData pins output items for a node.
func (s *WorkflowsStore) SetPinData(node string, items []map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(models.PinData, len(s.pinData)+1)
	for name, pinned := range s.pinData {
		next[name] = pinned
	}

	next[node] = items
	s.pinData = next
}

// UnsetPinData removes the pinned output of a node.
func (s *WorkflowsStore) UnsetPinData(node string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pinData[node]; !ok {
		return
	}

	next := make(models.PinData, len(s.pinData))
	for name, pinned := range s.pinData {
		if name != node {
			next[name] = pinned
		}
	}

	s.pinData = next
}

// ActiveExecutionID returns the id of the execution the editor is following.
func (s *WorkflowsStore) ActiveExecutionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.activeExecutionID
}

// SetActiveExecutionID is written by the run orchestrator only.
func (s *WorkflowsStore) SetActiveExecutionID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.activeExecutionID = id
}

// ExecutionWaitingForWebhook reports whether the active execution waits for a webhook call.
func (s *WorkflowsStore) ExecutionWaitingForWebhook() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.executionWaitingForWebhook
}

// SetExecutionWaitingForWebhook is written by the run orchestrator only.
func (s *WorkflowsStore) SetExecutionWaitingForWebhook(waiting bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.executionWaitingForWebhook = waiting
}
