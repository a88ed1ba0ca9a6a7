package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/arzan03/TalentBridge/internal/middleware"
	"github.com/arzan03/TalentBridge/internal/repository"
	"github.com/arzan03/TalentBridge/internal/services"
	"github.com/arzan03/TalentBridge/internal/validation"
)

// fail maps a service error to its HTTP response. resource names the entity
// in not-found and conflict messages unless the error names a missing
// referenced entity itself.
func fail(c *fiber.Ctx, err error, resource string) error {
	var (
		verr    *validation.Error
		missing *services.MissingError
	)
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "validation failed",
			"errors":  verr.Fields,
		})
	case errors.Is(err, services.ErrInvalidID):
		return message(c, fiber.StatusBadRequest, "invalid "+resource+" id")
	case errors.Is(err, services.ErrInvalidAction),
		errors.Is(err, services.ErrInvalidQuestions),
		errors.Is(err, services.ErrNotProfessional),
		errors.Is(err, services.ErrExecutiveRole):
		return message(c, fiber.StatusBadRequest, err.Error())
	case errors.As(err, &missing):
		return message(c, fiber.StatusNotFound, missing.Resource+" not found")
	case errors.Is(err, repository.ErrNotFound):
		return message(c, fiber.StatusNotFound, resource+" not found")
	case errors.Is(err, repository.ErrDuplicate):
		return message(c, fiber.StatusConflict, resource+" already exists")
	case errors.Is(err, services.ErrIdentityMismatch):
		return message(c, fiber.StatusUnauthorized, "unauthorized")
	case errors.Is(err, services.ErrForbidden):
		return message(c, fiber.StatusForbidden, "forbidden")
	}

	log.Errorw("Request failed", "method", c.Method(), "path", c.Path(), "error", err)
	return message(c, fiber.StatusInternalServerError, "internal server error")
}

func message(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"message": msg})
}

func badBody(c *fiber.Ctx) error {
	return message(c, fiber.StatusBadRequest, "invalid request body")
}

// principalUID returns the uid set by the auth middleware, or "".
func principalUID(c *fiber.Ctx) string {
	if p, ok := middleware.PrincipalFrom(c); ok {
		return p.UID
	}
	return ""
}
