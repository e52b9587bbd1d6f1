package web

import (
	"context"
	"time"

	"github.com/dukex/operion-runner/pkg/graph"
	"github.com/dukex/operion-runner/pkg/models"
	"github.com/dukex/operion-runner/pkg/runplan"
	"github.com/dukex/operion-runner/pkg/session"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// HealthChecker reports whether a dependency is usable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type APIHandlers struct {
	sessions  *session.Manager
	validator *validator.Validate
	storage   HealthChecker
}

func NewAPIHandlers(sessions *session.Manager, validator *validator.Validate, storage HealthChecker) *APIHandlers {
	return &APIHandlers{
		sessions:  sessions,
		validator: validator,
		storage:   storage,
	}
}

// Register mounts the runner routes on app.
func (h *APIHandlers) Register(app *fiber.App) {
	app.Get("/health", h.Health)

	w := app.Group("/workflows")
	w.Post("/:id/run", h.RunWorkflow)
	w.Post("/:id/plan", h.PlanRun)
	w.Put("/:id/pin-data/:node", h.SetPinData)
	w.Delete("/:id/pin-data/:node", h.UnsetPinData)
	w.Get("/:id/run-state", h.GetRunState)
}

func (h *APIHandlers) Health(c fiber.Ctx) error {
	storageCheck := "ok"
	status := fiber.StatusOK

	if err := h.storage.HealthCheck(c.Context()); err != nil {
		storageCheck = err.Error()
		status = fiber.StatusServiceUnavailable
	}

	pushCheck := "ok"
	if !h.sessions.Root().PushConnectionActive() {
		pushCheck = "disconnected"
	}

	return c.Status(status).JSON(fiber.Map{
		"checkers": fiber.Map{
			"storage":         storageCheck,
			"push_connection": pushCheck,
		},
		"timestamp": time.Now().UTC(),
	})
}

func (h *APIHandlers) RunWorkflow(c fiber.Ctx) error {
	var req RunWorkflowRequest

	if len(c.Body()) > 0 {
		if err := c.Bind().JSON(&req); err != nil {
			return badRequest(c, "Invalid JSON format")
		}
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	s, err := h.sessions.Get(c.Context(), c.Params("id"))
	if err != nil {
		return handleRunError(c, err)
	}

	ack, err := s.Orchestrator.RunWorkflow(c.Context(), models.RunOptions{
		DestinationNode: req.DestinationNode,
		TriggerNode:     req.TriggerNode,
		Source:          req.Source,
	})
	if err != nil {
		return handleRunError(c, err)
	}

	if ack == nil {
		return c.JSON(RunWorkflowResponse{Started: false})
	}

	return c.Status(fiber.StatusAccepted).JSON(RunWorkflowResponse{
		Started:           true,
		ExecutionID:       ack.ExecutionID,
		WaitingForWebhook: ack.WaitingForWebhook,
	})
}

func (h *APIHandlers) PlanRun(c fiber.Ctx) error {
	var req PlanRunRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	s, err := h.sessions.Get(c.Context(), c.Params("id"))
	if err != nil {
		return handleRunError(c, err)
	}

	workflow := s.Workflows.CurrentWorkflow()

	g, err := graph.New(workflow)
	if err != nil {
		return handleRunError(c, err)
	}

	pinData := s.Workflows.PinData()

	plan, err := runplan.PlanDestination(g, req.DestinationNode, s.Workflows.RunData(), pinData)
	if err != nil {
		return handleRunError(c, err)
	}

	return c.JSON(PlanRunResponse{
		StartNodes:      plan.StartNodeNames,
		RunData:         plan.RunData,
		RequiresWebhook: runplan.WaitsForWebhook(workflow, plan.StartNodeNames, pinData),
	})
}

func (h *APIHandlers) SetPinData(c fiber.Ctx) error {
	var req SetPinDataRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	id, node := c.Params("id"), c.Params("node")

	s, err := h.sessions.Get(c.Context(), id)
	if err != nil {
		return handleRunError(c, err)
	}

	if _, ok := s.Workflows.CurrentWorkflow().NodeByName(node); !ok {
		return notFound(c, "node not found")
	}

	s.Workflows.SetPinData(node, req.Items)

	if err := h.sessions.Save(c.Context(), id); err != nil {
		return handleRunError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) UnsetPinData(c fiber.Ctx) error {
	id, node := c.Params("id"), c.Params("node")

	s, err := h.sessions.Get(c.Context(), id)
	if err != nil {
		return handleRunError(c, err)
	}

	s.Workflows.UnsetPinData(node)

	if err := h.sessions.Save(c.Context(), id); err != nil {
		return handleRunError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) GetRunState(c fiber.Ctx) error {
	s, err := h.sessions.Get(c.Context(), c.Params("id"))
	if err != nil {
		return handleRunError(c, err)
	}

	return c.JSON(RunStateResponse{
		Running:              s.Orchestrator.Running(),
		ExecutionID:          s.Workflows.ActiveExecutionID(),
		WaitingForWebhook:    s.Workflows.ExecutionWaitingForWebhook(),
		ActiveActions:        s.UI.ActiveActions(),
		PushConnectionActive: h.sessions.Root().PushConnectionActive(),
	})
}
