package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/arzan03/TalentBridge/internal/services"
	"github.com/arzan03/TalentBridge/internal/validation"
)

type AdminHandler struct {
	admin *services.AdminService
	jobs  *services.JobService
}

// NewAdminHandler builds the back-office handlers.
func NewAdminHandler(admin *services.AdminService, jobs *services.JobService) *AdminHandler {
	return &AdminHandler{admin: admin, jobs: jobs}
}

// ListUsers returns all users, inactive included.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.admin.ListUsers(c.UserContext())
	if err != nil {
		return fail(c, err, "user")
	}
	return c.JSON(fiber.Map{"message": "Users retrieved", "users": users})
}

// List all companies, inactive ones included
func (h *AdminHandler) ListCompanies(c *fiber.Ctx) error {
	companies, err := h.admin.ListCompanies(c.UserContext())
	if err != nil {
		return fail(c, err, "company")
	}
	return c.JSON(fiber.Map{"message": "Companies retrieved", "companies": companies})
}

// Approve or flag a job posting
func (h *AdminHandler) ModerateJob(c *fiber.Ctx) error {
	var req validation.ModerationRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	job, err := h.jobs.Moderate(c.UserContext(), c.Params("jobId"), req)
	if err != nil {
		return fail(c, err, "job")
	}
	return c.JSON(fiber.Map{"message": "Job moderation updated", "job": job})
}

// Platform counters
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.admin.Stats(c.UserContext())
	if err != nil {
		return fail(c, err, "stats")
	}
	return c.JSON(fiber.Map{"message": "Statistics retrieved", "stats": stats})
}
