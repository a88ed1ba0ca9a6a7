package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/arzan03/TalentBridge/internal/middleware"
	"github.com/arzan03/TalentBridge/internal/services"
	"github.com/arzan03/TalentBridge/internal/storage"
	"github.com/arzan03/TalentBridge/internal/validation"
)

type CourseHandler struct {
	courses *services.CourseService
	files   storage.Store
}

// NewCourseHandler builds the cursos handlers.
func NewCourseHandler(courses *services.CourseService, files storage.Store) *CourseHandler {
	return &CourseHandler{courses: courses, files: files}
}

// Create publishes a course.
func (h *CourseHandler) Create(c *fiber.Ctx) error {
	var req validation.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	course, err := h.courses.Create(c.UserContext(), req)
	if err != nil {
		return fail(c, err, "professional")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Course created successfully", "course": course})
}

// List returns active courses.
func (h *CourseHandler) List(c *fiber.Ctx) error {
	courses, err := h.courses.ListActive(c.UserContext())
	if err != nil {
		return fail(c, err, "course")
	}
	return c.JSON(fiber.Map{"message": "Courses retrieved", "courses": courses})
}

// ListByProfessional returns a professional's active courses.
func (h *CourseHandler) ListByProfessional(c *fiber.Ctx) error {
	courses, err := h.courses.ListByProfessional(c.UserContext(), c.Params("userId"))
	if err != nil {
		return fail(c, err, "user")
	}
	return c.JSON(fiber.Map{"message": "Courses retrieved", "courses": courses})
}

// Get returns one course.
func (h *CourseHandler) Get(c *fiber.Ctx) error {
	course, err := h.courses.Get(c.UserContext(), c.Params("cursoId"))
	if err != nil {
		return fail(c, err, "course")
	}
	return c.JSON(fiber.Map{"message": "Course found", "course": course})
}

// Update applies a partial course update.
func (h *CourseHandler) Update(c *fiber.Ctx) error {
	var req validation.UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	course, err := h.courses.Update(c.UserContext(), c.Params("cursoId"), req)
	if err != nil {
		return fail(c, err, "course")
	}
	return c.JSON(fiber.Map{"message": "Course updated successfully", "course": course})
}

// Deactivate unlists a course.
func (h *CourseHandler) Deactivate(c *fiber.Ctx) error {
	course, err := h.courses.Deactivate(c.UserContext(), c.Params("cursoId"))
	if err != nil {
		return fail(c, err, "course")
	}
	return c.JSON(fiber.Map{"message": "Course deactivated", "course": course})
}

// UploadVideo stores the course video.
func (h *CourseHandler) UploadVideo(c *fiber.Ctx) error {
	obj, ok := middleware.Uploaded(c, middleware.FieldCourseVideo)
	if !ok {
		return message(c, fiber.StatusBadRequest, "no courseVideo file uploaded")
	}
	course, err := h.courses.SetVideo(c.UserContext(), c.Params("cursoId"), obj.Path)
	if err != nil {
		middleware.DiscardUploads(c, h.files)
		return fail(c, err, "course")
	}
	return c.JSON(fiber.Map{"message": "File uploaded successfully", "course": course, "file": obj})
}
