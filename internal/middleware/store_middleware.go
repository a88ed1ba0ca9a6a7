package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/arzan03/TalentBridge/internal/db"
)

// RequireStore answers 503 while the document store is unavailable.
func RequireStore(store db.Availability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !store.Available() {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"message": "database unavailable",
			})
		}
		return c.Next()
	}
}
