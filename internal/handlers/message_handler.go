package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/arzan03/TalentBridge/internal/services"
	"github.com/arzan03/TalentBridge/internal/validation"
)

type MessageHandler struct {
	messages *services.MessageService
}

// NewMessageHandler builds the mensajes handlers.
func NewMessageHandler(messages *services.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

// Send delivers a message from the authenticated user.
func (h *MessageHandler) Send(c *fiber.Ctx) error {
	var req validation.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	msg, err := h.messages.Send(c.UserContext(), principalUID(c), req)
	if err != nil {
		return fail(c, err, "sender or recipient")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Message sent", "mensaje": msg})
}

// Inbox lists messages received by a user.
func (h *MessageHandler) Inbox(c *fiber.Ctx) error {
	msgs, err := h.messages.Inbox(c.UserContext(), c.Params("userId"))
	if err != nil {
		return fail(c, err, "user")
	}
	return c.JSON(fiber.Map{"message": "Messages retrieved", "mensajes": msgs})
}

// Conversation lists messages between two users.
func (h *MessageHandler) Conversation(c *fiber.Ctx) error {
	msgs, err := h.messages.Conversation(c.UserContext(), c.Params("userA"), c.Params("userB"))
	if err != nil {
		return fail(c, err, "user")
	}
	return c.JSON(fiber.Map{"message": "Conversation retrieved", "mensajes": msgs})
}

// MarkRead flags a message as read.
func (h *MessageHandler) MarkRead(c *fiber.Ctx) error {
	msg, err := h.messages.MarkRead(c.UserContext(), c.Params("mensajeId"))
	if err != nil {
		return fail(c, err, "message")
	}
	return c.JSON(fiber.Map{"message": "Message marked as read", "mensaje": msg})
}
