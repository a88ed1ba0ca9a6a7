package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/arzan03/TalentBridge/internal/services"
)

// AdminMiddleware lets through only principals whose user record has the
// fractional-admin role. It must run after AuthMiddleware.
func AdminMiddleware(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFrom(c)
		if !ok {
			return unauthorized(c)
		}

		user, err := authService.RequireAdmin(c.UserContext(), principal.UID)
		if errors.Is(err, services.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Access denied. Admins only."})
		}
		if err != nil {
			log.Errorw("Admin check failed", "uid", principal.UID, "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "internal server error"})
		}

		c.Locals("admin", user)
		return c.Next()
	}
}
