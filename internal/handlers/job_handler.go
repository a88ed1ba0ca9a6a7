package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/arzan03/TalentBridge/internal/services"
	"github.com/arzan03/TalentBridge/internal/validation"
)

type JobHandler struct {
	jobs *services.JobService
}

// NewJobHandler builds the jobs handlers.
func NewJobHandler(jobs *services.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// Create publishes a job.
func (h *JobHandler) Create(c *fiber.Ctx) error {
	var req validation.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	job, err := h.jobs.Create(c.UserContext(), req)
	if err != nil {
		return fail(c, err, "job")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Job created successfully", "job": job})
}

// List returns every job.
func (h *JobHandler) List(c *fiber.Ctx) error {
	jobs, err := h.jobs.List(c.UserContext())
	if err != nil {
		return fail(c, err, "job")
	}
	return c.JSON(fiber.Map{"message": "Jobs retrieved", "jobs": jobs})
}

// ListByCompany returns a company's jobs.
func (h *JobHandler) ListByCompany(c *fiber.Ctx) error {
	jobs, err := h.jobs.ListByCompany(c.UserContext(), c.Params("empresaId"))
	if err != nil {
		return fail(c, err, "company")
	}
	return c.JSON(fiber.Map{"message": "Jobs retrieved", "jobs": jobs})
}

// Get returns one job.
func (h *JobHandler) Get(c *fiber.Ctx) error {
	job, err := h.jobs.Get(c.UserContext(), c.Params("jobId"))
	if err != nil {
		return fail(c, err, "job")
	}
	return c.JSON(fiber.Map{"message": "Job found", "job": job})
}

// Update applies a partial job update.
func (h *JobHandler) Update(c *fiber.Ctx) error {
	var req validation.UpdateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	job, err := h.jobs.Update(c.UserContext(), c.Params("jobId"), req)
	if err != nil {
		return fail(c, err, "job")
	}
	return c.JSON(fiber.Map{"message": "Job updated successfully", "job": job})
}

// Delete removes a job and its applications.
func (h *JobHandler) Delete(c *fiber.Ctx) error {
	if err := h.jobs.Delete(c.UserContext(), c.Params("jobId")); err != nil {
		return fail(c, err, "job")
	}
	return c.JSON(fiber.Map{"message": "Job deleted successfully"})
}

// SetQuestions takes the raw body, which must be a JSON array of questions.
func (h *JobHandler) SetQuestions(c *fiber.Ctx) error {
	job, err := h.jobs.SetQuestions(c.UserContext(), c.Params("jobId"), c.Body())
	if err != nil {
		return fail(c, err, "job")
	}
	return c.JSON(fiber.Map{"message": "Questions updated", "job": job})
}
