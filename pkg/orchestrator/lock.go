package orchestrator

import "github.com/dukex/operion-runner/pkg/state"

// ActionRegistry is the shared registry of active UI actions.
type ActionRegistry interface {
	AddActiveAction(action string)
	TryAddActiveAction(action string) bool
	RemoveActiveAction(action string)
	IsActionActive(action string) bool
}

// RunLock is the single-active-run lock, kept as an entry in the action registry so the
// rest of the editor sees a run in progress.
type RunLock struct {
	registry ActionRegistry
	action   string
}

// NewRunLock creates a lock over the registry's workflowRunning action.
func NewRunLock(registry ActionRegistry) *RunLock {
	return &RunLock{registry: registry, action: state.ActionWorkflowRunning}
}

// TryAcquire takes the lock without blocking and reports whether it was free.
func (l *RunLock) TryAcquire() bool {
	return l.registry.TryAddActiveAction(l.action)
}

// Release frees the lock.
func (l *RunLock) Release() {
	l.registry.RemoveActiveAction(l.action)
}

// Held reports whether the lock is taken.
func (l *RunLock) Held() bool {
	return l.registry.IsActionActive(l.action)
}
