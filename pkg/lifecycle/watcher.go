// Package lifecycle applies execution pushes from the backend to the open editor sessions.
package lifecycle

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dukex/operion-runner/pkg/eventbus"
	"github.com/dukex/operion-runner/pkg/events"
	"github.com/dukex/operion-runner/pkg/models"
	"github.com/dukex/operion-runner/pkg/session"
	"github.com/dukex/operion-runner/pkg/state"
)

// Sessions finds the open session of a workflow.
type Sessions interface {
	Lookup(workflowID string) (*session.Session, bool)
}

// Watcher owns the push connection. It records node results into run data and releases the
// run lock when the execution a session follows ends.
type Watcher struct {
	bus      eventbus.EventSubscriber
	sessions Sessions
	root     *state.RootStore
	logger   *slog.Logger
}

func NewWatcher(bus eventbus.EventSubscriber, sessions Sessions, root *state.RootStore, logger *slog.Logger) *Watcher {
	return &Watcher{
		bus:      bus,
		sessions: sessions,
		root:     root,
		logger:   logger.With("module", "lifecycle"),
	}
}

// Start subscribes to the bus and marks the push connection live. The connection is marked
// down once the subscription stops or ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	handlers := map[events.EventType]eventbus.EventHandler{
		events.NodeExecutionFinishedEvent:      w.handleNodeFinished,
		events.NodeExecutionFailedEvent:        w.handleNodeFailed,
		events.WorkflowExecutionCompletedEvent: w.handleExecutionCompleted,
		events.WorkflowExecutionFailedEvent:    w.handleExecutionFailed,
	}

	for eventType, handler := range handlers {
		if err := w.bus.Handle(eventType, handler); err != nil {
			return fmt.Errorf("failed to register handler for %s: %w", eventType, err)
		}
	}

	if err := w.bus.Subscribe(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to execution events: %w", err)
	}

	w.root.SetPushConnectionActive(true)
	w.logger.InfoContext(ctx, "Push connection established")

	go func() {
		select {
		case <-w.bus.Done():
		case <-ctx.Done():
		}

		w.root.SetPushConnectionActive(false)
		w.logger.Info("Push connection lost")
	}()

	return nil
}

func (w *Watcher) handleNodeFinished(ctx context.Context, event any) error {
	e, ok := event.(*events.NodeExecutionFinished)
	if !ok {
		return fmt.Errorf("unexpected event %T", event)
	}

	w.recordResult(ctx, e.WorkflowID, e.ExecutionID, e.NodeName, e.Result)

	return nil
}

func (w *Watcher) handleNodeFailed(ctx context.Context, event any) error {
	e, ok := event.(*events.NodeExecutionFailed)
	if !ok {
		return fmt.Errorf("unexpected event %T", event)
	}

	result := e.Result
	if result.Error == nil {
		result.Error = &models.TaskError{Message: "node execution failed"}
	}

	w.recordResult(ctx, e.WorkflowID, e.ExecutionID, e.NodeName, result)

	return nil
}

func (w *Watcher) handleExecutionCompleted(ctx context.Context, event any) error {
	e, ok := event.(*events.WorkflowExecutionCompleted)
	if !ok {
		return fmt.Errorf("unexpected event %T", event)
	}

	w.complete(ctx, e.WorkflowID, e.ExecutionID)

	return nil
}

func (w *Watcher) handleExecutionFailed(ctx context.Context, event any) error {
	e, ok := event.(*events.WorkflowExecutionFailed)
	if !ok {
		return fmt.Errorf("unexpected event %T", event)
	}

	w.logger.WarnContext(ctx, "Execution failed",
		"workflow_id", e.WorkflowID,
		"execution_id", e.ExecutionID,
		"node", e.Error.NodeName,
		"error", e.Error.Message,
	)
	w.complete(ctx, e.WorkflowID, e.ExecutionID)

	return nil
}

// recordResult ignores pushes for workflows without an open session and for executions the
// session does not follow.
func (w *Watcher) recordResult(ctx context.Context, workflowID, executionID, node string, result models.TaskData) {
	s, ok := w.sessions.Lookup(workflowID)
	if !ok {
		return
	}

	if s.Workflows.ActiveExecutionID() != executionID {
		w.logger.DebugContext(ctx, "Ignoring result of untracked execution",
			"workflow_id", workflowID,
			"execution_id", executionID,
		)

		return
	}

	s.Workflows.AddNodeRunData(node, result)
}

func (w *Watcher) complete(ctx context.Context, workflowID, executionID string) {
	s, ok := w.sessions.Lookup(workflowID)
	if !ok {
		return
	}

	s.Orchestrator.CompleteExecution(ctx, executionID)
}
