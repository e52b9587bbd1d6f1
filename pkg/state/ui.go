package state

import (
	"slices"
	"sync"
)

// ActionWorkflowRunning is the registry entry held while a manual run is in flight.
const ActionWorkflowRunning = "workflowRunning"

// UIStore is the registry of transient UI actions.
type UIStore struct {
	mu            sync.RWMutex
	activeActions []string
}

// NewUIStore creates an empty action registry.
func NewUIStore() *UIStore {
	return &UIStore{}
}

// AddActiveAction marks an action active. Adding an active action is a no-op.
func (s *UIStore) AddActiveAction(action string) {
	s.TryAddActiveAction(action)
}

// TryAddActiveAction marks an action active and reports whether it was inactive before.
func (s *UIStore) TryAddActiveAction(action string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.Contains(s.activeActions, action) {
		return false
	}

	s.activeActions = append(s.activeActions, action)

	return true
}

// RemoveActiveAction marks an action inactive.
func (s *UIStore) RemoveActiveAction(action string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.activeActions = slices.DeleteFunc(s.activeActions, func(a string) bool {
		return a == action
	})
}

// IsActionActive reports whether an action is active.
func (s *UIStore) IsActionActive(action string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Contains(s.activeActions, action)
}

// ActiveActions returns the active actions in the order they were added.
func (s *UIStore) ActiveActions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.activeActions)
}
