package web

import (
	"errors"

	"github.com/dukex/operion-runner/pkg/gate"
	"github.com/dukex/operion-runner/pkg/graph"
	"github.com/dukex/operion-runner/pkg/orchestrator"
	"github.com/dukex/operion-runner/pkg/persistence"
	"github.com/gofiber/fiber/v3"
	"github.com/moogar0880/problems"
)

func badRequest(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(400).
		WithInstance(c.Path()).
		WithType("validation_error").
		WithDetail(detail)

	return c.Status(fiber.StatusBadRequest).JSON(problem)
}

func notFound(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(404).
		WithInstance(c.Path()).
		WithType("not_found").
		WithDetail(detail)

	return c.Status(fiber.StatusNotFound).JSON(problem)
}

func problem(c fiber.Ctx, status int, kind, detail string) error {
	p := problems.NewStatusProblem(status).
		WithInstance(c.Path()).
		WithType(kind).
		WithDetail(detail)

	return c.Status(status).JSON(p)
}

// handleRunError maps run, graph and persistence errors to problem responses.
func handleRunError(c fiber.Ctx, err error) error {
	switch {
	case gate.IsConnectionError(err):
		return problem(c, fiber.StatusServiceUnavailable, "no_push_connection", err.Error())

	case gate.IsUnresolvedIssues(err):
		return problem(c, fiber.StatusUnprocessableEntity, "unresolved_issues", err.Error())

	case orchestrator.IsBackendDispatchError(err):
		return problem(c, fiber.StatusBadGateway, "backend_dispatch_failed", err.Error())

	case persistence.IsWorkflowNotFound(err):
		return problem(c, fiber.StatusNotFound, "workflow_not_found", "workflow not found")

	case orchestrator.IsNodeNotFound(err):
		return problem(c, fiber.StatusNotFound, "node_not_found", err.Error())

	case errors.Is(err, graph.ErrCycleFound):
		return problem(c, fiber.StatusUnprocessableEntity, "cycle_detected", err.Error())

	case errors.Is(err, graph.ErrInvalidGraph), persistence.IsInvalidDocument(err):
		return problem(c, fiber.StatusUnprocessableEntity, "invalid_workflow", err.Error())

	default:
		p := problems.NewStatusProblem(500).
			WithInstance(c.Path()).
			WithType("internal_error").
			WithError(err)

		return c.Status(fiber.StatusInternalServerError).JSON(p)
	}
}
