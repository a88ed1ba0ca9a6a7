package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/arzan03/TalentBridge/internal/services"
	"github.com/arzan03/TalentBridge/internal/validation"
)

type ApplicationHandler struct {
	applications *services.ApplicationService
}

// NewApplicationHandler builds the postulaciones handlers.
func NewApplicationHandler(applications *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applications: applications}
}

// Create handles POST /api/postulaciones.
func (h *ApplicationHandler) Create(c *fiber.Ctx) error {
	var req validation.CreateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	app, err := h.applications.Create(c.UserContext(), req)
	if err != nil {
		return fail(c, err, "application")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Application submitted", "application": app})
}

// ListByApplicant lists a user's applications with their jobs.
func (h *ApplicationHandler) ListByApplicant(c *fiber.Ctx) error {
	apps, err := h.applications.ListByApplicant(c.UserContext(), c.Params("userId"))
	if err != nil {
		return fail(c, err, "user")
	}
	return c.JSON(fiber.Map{"message": "Applications retrieved", "applications": apps})
}

// ListByJob lists a job's applications with their applicants.
func (h *ApplicationHandler) ListByJob(c *fiber.Ctx) error {
	apps, err := h.applications.ListByJob(c.UserContext(), c.Params("jobId"))
	if err != nil {
		return fail(c, err, "job")
	}
	return c.JSON(fiber.Map{"message": "Applications retrieved", "applications": apps})
}

// Get returns one application.
func (h *ApplicationHandler) Get(c *fiber.Ctx) error {
	app, err := h.applications.Get(c.UserContext(), c.Params("postulacionId"))
	if err != nil {
		return fail(c, err, "application")
	}
	return c.JSON(fiber.Map{"message": "Application found", "application": app})
}

// UpdateStatus changes an application's status.
func (h *ApplicationHandler) UpdateStatus(c *fiber.Ctx) error {
	var req validation.UpdateApplicationStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	app, err := h.applications.UpdateStatus(c.UserContext(), c.Params("postulacionId"), req)
	if err != nil {
		return fail(c, err, "application")
	}
	return c.JSON(fiber.Map{"message": "Application status updated", "application": app})
}
