package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/arzan03/TalentBridge/internal/middleware"
	"github.com/arzan03/TalentBridge/internal/services"
	"github.com/arzan03/TalentBridge/internal/storage"
	"github.com/arzan03/TalentBridge/internal/validation"
)

type UserHandler struct {
	users *services.UserService
	files storage.Store
}

// NewUserHandler builds the users handlers.
func NewUserHandler(users *services.UserService, files storage.Store) *UserHandler {
	return &UserHandler{users: users, files: files}
}

// GetByUID looks a user up by identity provider uid.
func (h *UserHandler) GetByUID(c *fiber.Ctx) error {
	user, err := h.users.GetByUID(c.UserContext(), c.Params("uid"))
	if err != nil {
		return fail(c, err, "user")
	}
	return c.JSON(fiber.Map{"message": "User found", "user": user})
}

// GetByID returns a user, active or not.
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	user, err := h.users.GetByID(c.UserContext(), c.Params("userId"))
	if err != nil {
		return fail(c, err, "user")
	}
	return c.JSON(fiber.Map{"message": "User found", "user": user})
}

// ListByRole lists active users with a role.
func (h *UserHandler) ListByRole(c *fiber.Ctx) error {
	users, err := h.users.ListByRole(c.UserContext(), c.Params("role"))
	if err != nil {
		return fail(c, err, "user")
	}
	return c.JSON(fiber.Map{"message": "Users retrieved", "users": users})
}

// Create accepts JSON or multipart with optional profilePhoto, cv and video
// files. Stored files are removed again when the user is not created.
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req validation.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		middleware.DiscardUploads(c, h.files)
		return badBody(c)
	}

	var files services.UserFiles
	if obj, ok := middleware.Uploaded(c, middleware.FieldProfilePhoto); ok {
		files.Photo = obj.Path
	}
	if obj, ok := middleware.Uploaded(c, middleware.FieldCV); ok {
		files.CV = obj.Path
	}
	if obj, ok := middleware.Uploaded(c, middleware.FieldVideo); ok {
		files.Video = obj.Path
	}

	user, err := h.users.Create(c.UserContext(), principalUID(c), req, files)
	if err != nil {
		middleware.DiscardUploads(c, h.files)
		return fail(c, err, "user")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User created successfully", "user": user})
}

// Update applies a partial profile update.
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var req validation.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	user, err := h.users.Update(c.UserContext(), c.Params("userId"), req)
	if err != nil {
		return fail(c, err, "user")
	}
	return c.JSON(fiber.Map{"message": "User updated successfully", "user": user})
}

// Deactivate soft-deletes a user.
func (h *UserHandler) Deactivate(c *fiber.Ctx) error {
	user, err := h.users.Deactivate(c.UserContext(), c.Params("userId"))
	if err != nil {
		return fail(c, err, "user")
	}
	return c.JSON(fiber.Map{"message": "User deactivated", "user": user})
}

// UploadCV stores a PDF CV and records its path.
func (h *UserHandler) UploadCV(c *fiber.Ctx) error {
	return h.setFile(c, middleware.FieldCV, services.UserCV)
}

// UploadVideo stores a presentation video.
func (h *UserHandler) UploadVideo(c *fiber.Ctx) error {
	return h.setFile(c, middleware.FieldVideo, services.UserVideo)
}

// UploadPhoto stores a profile photo.
func (h *UserHandler) UploadPhoto(c *fiber.Ctx) error {
	return h.setFile(c, middleware.FieldProfilePhoto, services.UserPhoto)
}

func (h *UserHandler) setFile(c *fiber.Ctx, field string, kind services.UserFile) error {
	obj, ok := middleware.Uploaded(c, field)
	if !ok {
		return message(c, fiber.StatusBadRequest, "no "+field+" file uploaded")
	}

	user, err := h.users.SetFile(c.UserContext(), c.Params("userId"), kind, obj.Path)
	if err != nil {
		middleware.DiscardUploads(c, h.files)
		return fail(c, err, "user")
	}
	return c.JSON(fiber.Map{"message": "File uploaded successfully", "user": user, "file": obj})
}
