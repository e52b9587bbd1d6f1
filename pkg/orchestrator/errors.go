package orchestrator

import (
	"errors"
	"fmt"

	"github.com/dukex/operion-runner/pkg/runplan"
)

var (
	// ErrBackendDispatch marks failures reported by the execution backend.
	ErrBackendDispatch = errors.New("execution backend rejected the run")

	// ErrEmptyAck is returned when the backend accepted a run without acknowledging it.
	ErrEmptyAck = errors.New("execution backend returned no acknowledgement")

	// ErrNodeNotFound is returned when a run targets a node the workflow does not have.
	ErrNodeNotFound = runplan.ErrNodeNotFound

	// ErrEmptyPayload is returned when RunWorkflowAPI is called without a payload.
	ErrEmptyPayload = errors.New("run payload is required")

	// ErrRunInProgress is returned by RunWorkflowAPI while another run holds the lock.
	ErrRunInProgress = errors.New("a workflow run is already in progress")

	// ErrInvalidTransition is returned when a run request attempts a disallowed state change.
	ErrInvalidTransition = errors.New("invalid run state transition")
)

// BackendDispatchError wraps a failed dispatch with the workflow it was for.
// errors.Is matches both ErrBackendDispatch and the backend's own error.
type BackendDispatchError struct {
	Op         string
	WorkflowID string
	Err        error
}

func (e *BackendDispatchError) Error() string {
	return fmt.Sprintf("%s: %s for workflow %s: %v", e.Op, ErrBackendDispatch.Error(), e.WorkflowID, e.Err)
}

func (e *BackendDispatchError) Unwrap() error {
	return e.Err
}

func (e *BackendDispatchError) Is(target error) bool {
	return target == ErrBackendDispatch
}

// IsBackendDispatchError checks if an error came from the execution backend.
func IsBackendDispatchError(err error) bool {
	return errors.Is(err, ErrBackendDispatch)
}

// IsRunInProgress checks if a run was refused because another one is in flight.
func IsRunInProgress(err error) bool {
	return errors.Is(err, ErrRunInProgress)
}

// IsNodeNotFound checks if an error indicates the run targeted an unknown node.
func IsNodeNotFound(err error) bool {
	return errors.Is(err, ErrNodeNotFound)
}
