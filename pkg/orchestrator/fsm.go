package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// State is the phase a run request is in.
type State string

const (
	StateIdle        State = "idle"
	StateGating      State = "gating"
	StateDispatching State = "dispatching"
	StateApplying    State = "applying"
)

// ValidTransitions lists the allowed successors of each state.
var ValidTransitions = map[State][]State{
	StateIdle:        {StateGating},
	StateGating:      {StateDispatching, StateIdle},
	StateDispatching: {StateApplying, StateIdle},
	StateApplying:    {StateIdle},
}

// TransitionHook observes state changes of run requests.
type TransitionHook func(requestID string, from, to State)

// request carries the state of one run request.
type request struct {
	id     string
	state  State
	span   trace.Span
	logger *slog.Logger
	hook   TransitionHook
}

func (r *request) transition(ctx context.Context, to State) error {
	from := r.state

	if !slices.Contains(ValidTransitions[from], to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}

	r.state = to
	r.span.AddEvent("transition", trace.WithAttributes(
		attribute.String("from", string(from)),
		attribute.String("to", string(to)),
	))
	r.logger.DebugContext(ctx, "Run request transition", "from", from, "to", to)

	if r.hook != nil {
		r.hook(r.id, from, to)
	}

	return nil
}

// abort returns the request to idle from any active state.
func (r *request) abort(ctx context.Context) {
	if r.state == StateIdle {
		return
	}

	_ = r.transition(ctx, StateIdle)
}
