package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/arzan03/TalentBridge/internal/middleware"
	"github.com/arzan03/TalentBridge/internal/services"
	"github.com/arzan03/TalentBridge/internal/storage"
	"github.com/arzan03/TalentBridge/internal/validation"
)

type CompanyHandler struct {
	companies *services.CompanyService
	files     storage.Store
}

// NewCompanyHandler builds the empresas handlers.
func NewCompanyHandler(companies *services.CompanyService, files storage.Store) *CompanyHandler {
	return &CompanyHandler{companies: companies, files: files}
}

// Create registers the authenticated company.
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var req validation.CreateCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	company, err := h.companies.Create(c.UserContext(), principalUID(c), req)
	if err != nil {
		return fail(c, err, "company")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Company created successfully", "company": company})
}

// List returns active companies.
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	companies, err := h.companies.ListActive(c.UserContext())
	if err != nil {
		return fail(c, err, "company")
	}
	return c.JSON(fiber.Map{"message": "Companies retrieved", "companies": companies})
}

// GetByUID returns the company profile with executive summaries.
func (h *CompanyHandler) GetByUID(c *fiber.Ctx) error {
	company, err := h.companies.GetByUID(c.UserContext(), c.Params("uid"))
	if err != nil {
		return fail(c, err, "company")
	}
	return c.JSON(fiber.Map{"message": "Company found", "company": company})
}

// Get returns the company with its jobs and their applications.
func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	company, err := h.companies.Detail(c.UserContext(), c.Params("empresaId"))
	if err != nil {
		return fail(c, err, "company")
	}
	return c.JSON(fiber.Map{"message": "Company found", "company": company})
}

// Update applies a partial company update.
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	var req validation.UpdateCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	company, err := h.companies.Update(c.UserContext(), c.Params("empresaId"), req)
	if err != nil {
		return fail(c, err, "company")
	}
	return c.JSON(fiber.Map{"message": "Company updated successfully", "company": company})
}

// Deactivate soft-deletes a company.
func (h *CompanyHandler) Deactivate(c *fiber.Ctx) error {
	company, err := h.companies.Deactivate(c.UserContext(), c.Params("empresaId"))
	if err != nil {
		return fail(c, err, "company")
	}
	return c.JSON(fiber.Map{"message": "Company deactivated", "company": company})
}

// AddExecutive links a professional to the company.
func (h *CompanyHandler) AddExecutive(c *fiber.Ctx) error {
	var req validation.AddExecutiveRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	company, user, err := h.companies.AddExecutive(c.UserContext(), c.Params("empresaId"), req)
	if err != nil {
		return fail(c, err, "company or user")
	}
	return c.JSON(fiber.Map{"message": "Executive added", "company": company, "user": user})
}

// UpdateExecutive adds or removes an executive depending on action.
func (h *CompanyHandler) UpdateExecutive(c *fiber.Ctx) error {
	var req validation.UpdateExecutiveRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	company, user, err := h.companies.UpdateExecutive(c.UserContext(), c.Params("empresaId"), req)
	if err != nil {
		return fail(c, err, "company or user")
	}

	msg := "Executive added"
	if req.Action == validation.ActionRemove {
		msg = "Executive removed"
	}
	return c.JSON(fiber.Map{"message": msg, "company": company, "user": user})
}

// UploadPhoto stores the company logo.
func (h *CompanyHandler) UploadPhoto(c *fiber.Ctx) error {
	obj, ok := middleware.Uploaded(c, middleware.FieldProfilePhoto)
	if !ok {
		return message(c, fiber.StatusBadRequest, "no profilePhoto file uploaded")
	}
	company, err := h.companies.SetPhoto(c.UserContext(), c.Params("empresaId"), obj.Path)
	if err != nil {
		middleware.DiscardUploads(c, h.files)
		return fail(c, err, "company")
	}
	return c.JSON(fiber.Map{"message": "File uploaded successfully", "company": company, "file": obj})
}
