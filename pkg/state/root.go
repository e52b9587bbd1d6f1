// Package state holds the shared editor state containers: connection liveness, the UI action
// registry and the workflow document. Each field has a single writer; see the setters.
package state

import "sync/atomic"

// RootStore holds process-wide flags owned by the transport layer.
type RootStore struct {
	pushConnectionActive atomic.Bool
}

// NewRootStore creates a RootStore with the push connection marked down.
func NewRootStore() *RootStore {
	return &RootStore{}
}

// PushConnectionActive reports whether the push connection is live.
func (s *RootStore) PushConnectionActive() bool {
	return s.pushConnectionActive.Load()
}

// SetPushConnectionActive is called by the transport layer only.
func (s *RootStore) SetPushConnectionActive(active bool) {
	s.pushConnectionActive.Store(active)
}
