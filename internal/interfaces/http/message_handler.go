package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/netyark/mall-api/internal/application/dto"
	"github.com/netyark/mall-api/internal/application/usecase"
)

// MessageHandler handles contact messages: Create is public, the rest protected.
type MessageHandler struct {
	uc *usecase.MessageUseCase
}

// NewMessageHandler builds the handler.
func NewMessageHandler(uc *usecase.MessageUseCase) *MessageHandler {
	return &MessageHandler{uc: uc}
}

// Create godoc
// @Summary      Submit a contact message (public)
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMessageRequest  true  "name, email, content"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/messages [post]
func (h *MessageHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMessageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      List contact messages
// @Tags         messages
// @Security     Bearer
// @Produce      json
// @Param        unread  query  bool  false  "Unread only"
// @Success      200  {object}  dto.MessageListResponse
// @Router       /api/messages [get]
func (h *MessageHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid pagination"})
	}
	out, err := h.uc.List(c.Context(), c.QueryBool("unread"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MarkRead godoc
// @Summary      Mark a message as read
// @Tags         messages
// @Security     Bearer
// @Param        id  path  string  true  "Message ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/messages/{id}/read [put]
func (h *MessageHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.uc.MarkRead(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete godoc
// @Summary      Delete a message
// @Tags         messages
// @Security     Bearer
// @Param        id  path  string  true  "Message ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/messages/{id} [delete]
func (h *MessageHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
