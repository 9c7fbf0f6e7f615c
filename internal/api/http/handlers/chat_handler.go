package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jubbler/portal-service/internal/api/dto"
	"github.com/jubbler/portal-service/internal/auth"
	"github.com/jubbler/portal-service/internal/domain"
	"github.com/jubbler/portal-service/internal/service"
	apperrors "github.com/jubbler/portal-service/pkg/util"
)

// ChatHandler manages live-support conversation endpoints for both roles.
type ChatHandler struct {
	service *service.ChatService
}

// NewChatHandler constructs handler.
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{service: chatService}
}

// StartChat POST /chats.
func (h *ChatHandler) StartChat(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.StartChatRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	chat, err := h.service.StartChat(c.Context(), principal.User, req.Subject)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": chatResponse(chat, principal.User.Role)})
}

// ListChats GET /chats. Clients see their own conversations, agents all.
func (h *ChatHandler) ListChats(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var (
		chats []domain.Chat
		err   error
	)
	if principal.IsAdmin() {
		chats, err = h.service.ListForAdmin(c.Context())
	} else {
		chats, err = h.service.ListForUser(c.Context(), principal.User.ID)
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": chatResponses(chats, principal.User.Role)})
}

// GetChat GET /chats/:id.
func (h *ChatHandler) GetChat(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	chat, err := h.service.GetChat(c.Context(), c.Params("id"), principal.User)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": chatResponse(chat, principal.User.Role)})
}

// SendMessage POST /chats/:id/messages.
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.SendChatMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	chat, err := h.service.SendMessage(c.Context(), c.Params("id"), principal.User,
		domain.ChatMessageType(req.Type), req.Content, req.FileName)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": chatResponse(chat, principal.User.Role)})
}

// MarkMessagesRead POST /chats/:id/read.
func (h *ChatHandler) MarkMessagesRead(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	chat, err := h.service.MarkMessagesRead(c.Context(), c.Params("id"), principal.User)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": chatResponse(chat, principal.User.Role)})
}

// CloseChat POST /admin/chats/:id/close.
func (h *ChatHandler) CloseChat(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	chat, err := h.service.CloseChat(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": chatResponse(chat, principal.User.Role)})
}
