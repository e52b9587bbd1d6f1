package gate

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPushConnection is returned when the push connection to the server is not live.
	ErrNoPushConnection = errors.New("no active connection to the server")

	// ErrTriggerConflict is returned when a manual run would contend with a registered webhook.
	ErrTriggerConflict = errors.New("workflow is active and its webhook trigger cannot be tested")

	// ErrUnresolvedIssues is returned when a run waiting for a webhook has nodes with issues.
	ErrUnresolvedIssues = errors.New("workflow has issues that need to be resolved")
)

// ConnectionError reports a run rejected because the transport is not live.
type ConnectionError struct {
	Op      string
	Message string // Localized message, optional
}

func (e *ConnectionError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return ErrNoPushConnection.Error()
}

func (e *ConnectionError) Unwrap() error {
	return ErrNoPushConnection
}

// TriggerConflictError names the trigger that prevents a manual run of an active workflow.
type TriggerConflictError struct {
	NodeName string
	NodeType string
}

func (e *TriggerConflictError) Error() string {
	return fmt.Sprintf("%s: node %q (%s)", ErrTriggerConflict.Error(), e.NodeName, e.NodeType)
}

func (e *TriggerConflictError) Unwrap() error {
	return ErrTriggerConflict
}

// UnresolvedIssuesError reports a webhook-waiting run rejected because of node issues.
type UnresolvedIssuesError struct {
	Message string // Localized message, optional
}

func (e *UnresolvedIssuesError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return ErrUnresolvedIssues.Error()
}

func (e *UnresolvedIssuesError) Unwrap() error {
	return ErrUnresolvedIssues
}

// IsConnectionError checks if an error indicates the push connection is not live.
func IsConnectionError(err error) bool {
	return errors.Is(err, ErrNoPushConnection)
}

// IsTriggerConflict checks if an error indicates a webhook trigger conflict.
func IsTriggerConflict(err error) bool {
	return errors.Is(err, ErrTriggerConflict)
}

// IsUnresolvedIssues checks if an error indicates unresolved node issues.
func IsUnresolvedIssues(err error) bool {
	return errors.Is(err, ErrUnresolvedIssues)
}
