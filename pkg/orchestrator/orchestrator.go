// Package orchestrator sequences a manual workflow run: gate checks, run-data consolidation,
// dispatch to the execution backend and application of the backend's acknowledgement.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dukex/operion-runner/pkg/gate"
	"github.com/dukex/operion-runner/pkg/graph"
	"github.com/dukex/operion-runner/pkg/i18n"
	"github.com/dukex/operion-runner/pkg/models"
	"github.com/dukex/operion-runner/pkg/otelhelper"
	"github.com/dukex/operion-runner/pkg/runplan"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DocumentStore is the editor's workflow document.
type DocumentStore interface {
	WorkflowDataToSave(ctx context.Context) (*models.Workflow, error)
	RunData() models.RunData
	PinData() models.PinData
	IsWorkflowActive() bool
	NodesIssuesExist() bool
	ActiveExecutionID() string
	SetActiveExecutionID(id string)
	SetExecutionWaitingForWebhook(waiting bool)
	SetRunData(runData models.RunData)
}

// Backend starts executions.
type Backend interface {
	Run(ctx context.Context, payload *models.RunPayload) (*models.ExecutionAck, error)
}

// Notifier shows toasts in the editor.
type Notifier interface {
	Show(ctx context.Context, notification models.Notification)
}

// Messages renders localized user-facing messages.
type Messages interface {
	Format(key string, args ...any) string
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithTracer sets the tracer used for run request spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *Orchestrator) {
		o.tracer = tracer
	}
}

// WithTransitionHook registers a hook called on every run request state change.
func WithTransitionHook(hook TransitionHook) Option {
	return func(o *Orchestrator) {
		o.hook = hook
	}
}

// Orchestrator runs workflows for one editor session. Only one run is in flight at a time.
type Orchestrator struct {
	store      DocumentStore
	connection gate.ConnectionState
	lock       *RunLock
	backend    Backend
	notifier   Notifier
	messages   Messages
	logger     *slog.Logger
	tracer     trace.Tracer
	hook       TransitionHook

	// mu guards the dispatch window between tracking an execution id and applying the ack.
	mu            sync.Mutex
	dispatching   bool
	finishedEarly bool
}

// New creates an Orchestrator.
func New(
	store DocumentStore,
	connection gate.ConnectionState,
	actions ActionRegistry,
	backend Backend,
	notifier Notifier,
	messages Messages,
	logger *slog.Logger,
	opts ...Option,
) *Orchestrator {
	o := &Orchestrator{
		store:      store,
		connection: connection,
		lock:       NewRunLock(actions),
		backend:    backend,
		notifier:   notifier,
		messages:   messages,
		logger:     logger.With("module", "orchestrator"),
		tracer:     otelhelper.NoopTracer(),
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Running reports whether a run holds the lock.
func (o *Orchestrator) Running() bool {
	return o.lock.Held()
}

// RunWorkflowAPI dispatches a prepared payload. It fails with a *gate.ConnectionError when
// the push connection is down, ErrRunInProgress when another run holds the lock, a
// *gate.UnresolvedIssuesError when the run would wait for a webhook while nodes have issues,
// and a *BackendDispatchError when the backend rejects it.
// On success the run lock stays held until CompleteExecution.
func (o *Orchestrator) RunWorkflowAPI(ctx context.Context, payload *models.RunPayload) (*models.ExecutionAck, error) {
	if payload == nil {
		return nil, ErrEmptyPayload
	}

	ctx, req := o.newRequest(ctx, "RunWorkflowAPI", payload.Workflow)
	defer req.span.End()

	if err := req.transition(ctx, StateGating); err != nil {
		return nil, err
	}

	if err := gate.CheckPushConnection(o.connection); err != nil {
		req.abort(ctx)

		return nil, o.connectionError(req, err)
	}

	if !o.lock.TryAcquire() {
		req.abort(ctx)
		otelhelper.SetError(req.span, ErrRunInProgress)

		return nil, ErrRunInProgress
	}

	return o.runWorkflowAPI(ctx, req, payload)
}

// RunWorkflow plans and dispatches a run of the current workflow. It returns nil without
// error when a run is already in flight or when the workflow's webhook trigger conflicts
// with the manual run; the conflict is reported to the user through the notifier.
func (o *Orchestrator) RunWorkflow(ctx context.Context, opts models.RunOptions) (*models.ExecutionAck, error) {
	if !o.lock.TryAcquire() {
		o.logger.DebugContext(ctx, "Run already in progress, ignoring request", "source", opts.Source)

		return nil, nil
	}

	ctx, req := o.newRequest(ctx, "RunWorkflow", nil)
	defer req.span.End()

	req.span.SetAttributes(
		attribute.String(otelhelper.DestinationNodeKey, opts.DestinationNode),
		attribute.String(otelhelper.TriggerNodeKey, opts.TriggerNode),
	)

	fail := func(err error) (*models.ExecutionAck, error) {
		o.lock.Release()
		req.abort(ctx)
		otelhelper.SetError(req.span, err)

		return nil, err
	}

	if err := req.transition(ctx, StateGating); err != nil {
		return fail(err)
	}

	if err := gate.CheckPushConnection(o.connection); err != nil {
		return fail(o.connectionError(req, err))
	}

	workflow, err := o.store.WorkflowDataToSave(ctx)
	if err != nil {
		return fail(fmt.Errorf("failed to resolve workflow: %w", err))
	}

	req.logger = req.logger.With("workflow_id", workflow.ID)
	req.span.SetAttributes(attribute.String(otelhelper.WorkflowIDKey, workflow.ID))

	g, err := graph.New(workflow)
	if err != nil {
		return fail(fmt.Errorf("failed to read workflow %s: %w", workflow.ID, err))
	}

	if err := gate.CheckTriggerConflict(g, o.store.IsWorkflowActive()); err != nil {
		o.lock.Release()
		req.abort(ctx)
		o.showTriggerConflict(ctx, req, workflow.ID, err)

		return nil, nil
	}

	payload, err := o.buildPayload(workflow, g, opts)
	if err != nil {
		return fail(err)
	}

	return o.runWorkflowAPI(ctx, req, payload)
}

// CompleteExecution releases the run lock once the backend reports that the execution the
// editor follows has finished. Reports for other executions are ignored. A report arriving
// while the run is still being dispatched is applied once the backend acknowledges it.
func (o *Orchestrator) CompleteExecution(ctx context.Context, executionID string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if executionID == "" || !o.lock.Held() || o.store.ActiveExecutionID() != executionID {
		return false
	}

	if o.dispatching {
		o.finishedEarly = true

		o.logger.InfoContext(ctx, "Execution finished before it was acknowledged", "execution_id", executionID)

		return true
	}

	o.finishExecution(ctx, executionID)

	return true
}

// finishExecution must be called with o.mu held.
func (o *Orchestrator) finishExecution(ctx context.Context, executionID string) {
	o.store.SetActiveExecutionID("")
	o.store.SetExecutionWaitingForWebhook(false)
	o.lock.Release()

	o.logger.InfoContext(ctx, "Execution finished, run lock released", "execution_id", executionID)
}

func (o *Orchestrator) buildPayload(workflow *models.Workflow, g *graph.Graph, opts models.RunOptions) (*models.RunPayload, error) {
	pinData := o.store.PinData()

	payload := &models.RunPayload{
		Workflow: workflow,
		PinData:  pinData,
	}

	switch {
	case opts.DestinationNode != "":
		plan, err := runplan.PlanDestination(g, opts.DestinationNode, o.store.RunData(), pinData)
		if err != nil {
			return nil, err
		}

		payload.DestinationNode = opts.DestinationNode
		payload.StartNodes = plan.StartNodeNames
		payload.RunData = plan.RunData
	case opts.TriggerNode != "":
		if _, ok := g.Node(opts.TriggerNode); !ok {
			return nil, fmt.Errorf("trigger %q: %w", opts.TriggerNode, ErrNodeNotFound)
		}

		payload.StartNodes = []string{opts.TriggerNode}
	}

	return payload, nil
}

// runWorkflowAPI runs the issue gate, calls the backend and applies its acknowledgement for
// a gated request that holds the run lock. Before the backend is called the execution id is
// assigned and tracked and the run data is replaced by the data the run reuses, so pushes
// that beat the acknowledgement are kept. Every failure path restores both and releases the
// lock.
func (o *Orchestrator) runWorkflowAPI(ctx context.Context, req *request, payload *models.RunPayload) (*models.ExecutionAck, error) {
	fail := func(err error) (*models.ExecutionAck, error) {
		o.lock.Release()
		req.abort(ctx)
		otelhelper.SetError(req.span, err)

		return nil, err
	}

	if err := req.transition(ctx, StateDispatching); err != nil {
		return fail(err)
	}

	requiresWebhook := runplan.WaitsForWebhook(payload.Workflow, payload.StartNodes, payload.PinData)

	if err := gate.CheckIssues(o.store.NodesIssuesExist(), requiresWebhook); err != nil {
		return fail(&gate.UnresolvedIssuesError{Message: o.messages.Format(i18n.KeyResolveOutstandingIssues)})
	}

	workflowID := ""
	if payload.Workflow != nil {
		workflowID = payload.Workflow.ID
	}

	tracked := *payload
	if tracked.ExecutionID == "" {
		tracked.ExecutionID = uuid.New().String()
	}

	o.mu.Lock()
	previousID, previousRunData := o.store.ActiveExecutionID(), o.store.RunData()
	o.store.SetActiveExecutionID(tracked.ExecutionID)
	o.store.SetRunData(tracked.RunData)
	o.dispatching, o.finishedEarly = true, false
	o.mu.Unlock()

	req.logger.InfoContext(ctx, "Dispatching manual run",
		"execution_id", tracked.ExecutionID,
		"start_nodes", tracked.StartNodes,
		"destination_node", tracked.DestinationNode,
		"reused_nodes", len(tracked.RunData),
		"requires_webhook", requiresWebhook,
	)

	ack, err := o.backend.Run(ctx, &tracked)
	if err == nil && ack == nil {
		err = ErrEmptyAck
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	o.dispatching = false

	if err != nil {
		o.store.SetActiveExecutionID(previousID)
		o.store.SetRunData(previousRunData)
		req.logger.ErrorContext(ctx, "Execution backend rejected the run", "error", err)

		return fail(&BackendDispatchError{Op: "dispatch", WorkflowID: workflowID, Err: err})
	}

	if err := req.transition(ctx, StateApplying); err != nil {
		return fail(err)
	}

	if ack.ExecutionID != "" {
		o.store.SetActiveExecutionID(ack.ExecutionID)
	}

	o.store.SetExecutionWaitingForWebhook(ack.WaitingForWebhook)

	req.span.SetAttributes(
		attribute.StringSlice(otelhelper.StartNodesKey, tracked.StartNodes),
		attribute.String(otelhelper.ExecutionIDKey, ack.ExecutionID),
		attribute.Bool(otelhelper.WaitingWebhookKey, ack.WaitingForWebhook),
	)
	req.logger.InfoContext(ctx, "Manual run started",
		"execution_id", ack.ExecutionID,
		"waiting_for_webhook", ack.WaitingForWebhook,
	)

	if o.finishedEarly {
		o.finishExecution(ctx, tracked.ExecutionID)
	}

	if err := req.transition(ctx, StateIdle); err != nil {
		return nil, err
	}

	return ack, nil
}

func (o *Orchestrator) newRequest(ctx context.Context, op string, workflow *models.Workflow) (context.Context, *request) {
	id := uuid.New().String()

	attrs := []attribute.KeyValue{
		attribute.String(otelhelper.RunRequestIDKey, id),
		attribute.String(otelhelper.RunOperationKey, op),
	}

	logger := o.logger.With("request_id", id, "operation", op)

	if workflow != nil {
		attrs = append(attrs, attribute.String(otelhelper.WorkflowIDKey, workflow.ID))
		logger = logger.With("workflow_id", workflow.ID)
	}

	ctx, span := otelhelper.StartSpan(ctx, o.tracer, "orchestrator."+op, attrs...)

	return ctx, &request{
		id:     id,
		state:  StateIdle,
		span:   span,
		logger: logger,
		hook:   o.hook,
	}
}

func (o *Orchestrator) connectionError(req *request, err error) error {
	otelhelper.SetError(req.span, err)

	return &gate.ConnectionError{Op: "CheckPushConnection", Message: o.messages.Format(i18n.KeyNoActiveConnection)}
}

func (o *Orchestrator) showTriggerConflict(ctx context.Context, req *request, workflowID string, err error) {
	req.logger.WarnContext(ctx, "Manual run blocked by active webhook trigger", "error", err)

	nodeName, nodeType := "", ""

	var conflict *gate.TriggerConflictError
	if errors.As(err, &conflict) {
		nodeName, nodeType = conflict.NodeName, conflict.NodeType
	}

	o.notifier.Show(ctx, models.Notification{
		WorkflowID: workflowID,
		Title:      o.messages.Format(i18n.KeyActiveWebhookTitle),
		Message:    o.messages.Format(i18n.KeyActiveWebhookMessage, nodeName, nodeType),
		Type:       models.NotificationWarning,
	})
}
