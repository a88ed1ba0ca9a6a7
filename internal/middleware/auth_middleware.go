package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/arzan03/TalentBridge/internal/auth"
)

const principalKey = "principal"

// AuthMiddleware verifies the bearer token and stores the principal in
// locals ("principal", "uid", "email"). Every failure is a plain 401.
func AuthMiddleware(verifier auth.Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			return unauthorized(c)
		}

		principal, err := verifier.Verify(c.UserContext(), token)
		if err != nil {
			log.Debugw("Token rejected", "path", c.Path(), "error", err)
			return unauthorized(c)
		}

		c.Locals(principalKey, principal)
		c.Locals("uid", principal.UID)
		c.Locals("email", principal.Email)

		return c.Next()
	}
}

// PrincipalFrom returns the principal set by AuthMiddleware.
func PrincipalFrom(c *fiber.Ctx) (*auth.Principal, bool) {
	p, ok := c.Locals(principalKey).(*auth.Principal)
	return p, ok && p != nil
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
}
