package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/arzan03/TalentBridge/internal/docs"
)

type DocsHandler struct{}

// JSON serves the API description converted to JSON.
func (DocsHandler) JSON(c *fiber.Ctx) error {
	spec, err := docs.Spec()
	if err != nil {
		return fail(c, err, "docs")
	}
	return c.JSON(spec)
}

// YAML serves the embedded OpenAPI document as is.
func (DocsHandler) YAML(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "application/yaml")
	return c.Send(docs.Raw())
}
