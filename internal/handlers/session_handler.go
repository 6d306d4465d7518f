package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/murtezataher/AgenticAIFYP/internal/models"
	"github.com/murtezataher/AgenticAIFYP/internal/workflow"
)

type SessionHandler struct {
	registry *workflow.Registry
}

func NewSessionHandler(registry *workflow.Registry) *SessionHandler {
	return &SessionHandler{registry: registry}
}

// HandleCreate handles POST /sessions
func (h *SessionHandler) HandleCreate(c *fiber.Ctx) error {
	id, _ := h.registry.Create()

	return c.Status(fiber.StatusCreated).JSON(models.SessionResponse{ID: id})
}

// HandleDelete handles DELETE /sessions/:sid
func (h *SessionHandler) HandleDelete(c *fiber.Ctx) error {
	if !h.registry.Delete(c.Params("sid")) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "session not found",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

const stateKey = "workflow_state"

// RequireSession resolves the :sid route parameter and stores the session
// state for the handlers that follow.
func (h *SessionHandler) RequireSession(c *fiber.Ctx) error {
	state, err := h.registry.Get(c.Params("sid"))
	if err != nil {
		return workflowError(c, err)
	}

	c.Locals(stateKey, state)
	return c.Next()
}

func stateFrom(c *fiber.Ctx) *workflow.State {
	state, _ := c.Locals(stateKey).(*workflow.State)
	return state
}

// workflowError maps workflow precondition failures onto HTTP responses.
func workflowError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	switch {
	case errors.Is(err, workflow.ErrUnknownJob),
		errors.Is(err, workflow.ErrApplicationNotFound),
		errors.Is(err, workflow.ErrSessionNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, workflow.ErrAlreadyInterviewed),
		errors.Is(err, workflow.ErrInterviewInProgress):
		status = fiber.StatusConflict
	}

	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
