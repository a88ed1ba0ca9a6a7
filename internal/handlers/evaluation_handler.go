package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/arzan03/TalentBridge/internal/services"
	"github.com/arzan03/TalentBridge/internal/validation"
)

type EvaluationHandler struct {
	evaluations *services.EvaluationService
}

// NewEvaluationHandler builds the evaluacion handlers.
func NewEvaluationHandler(evaluations *services.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{evaluations: evaluations}
}

// Create records an evaluation and refreshes the course average rating.
func (h *EvaluationHandler) Create(c *fiber.Ctx) error {
	var req validation.CreateEvaluationRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	eval, err := h.evaluations.Create(c.UserContext(), req)
	if err != nil {
		return fail(c, err, "user or course")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Evaluation created", "evaluation": eval})
}

// ListByUser returns evaluations received by a user with their average.
func (h *EvaluationHandler) ListByUser(c *fiber.Ctx) error {
	summary, err := h.evaluations.ListByEvaluated(c.UserContext(), c.Params("userId"))
	if err != nil {
		return fail(c, err, "user")
	}
	return c.JSON(fiber.Map{
		"message":     "Evaluations retrieved",
		"evaluations": summary.Evaluations,
		"average":     summary.Average,
		"count":       summary.Count,
	})
}
