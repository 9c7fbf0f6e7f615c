package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jubbler/portal-service/internal/api/dto"
	"github.com/jubbler/portal-service/internal/auth"
	"github.com/jubbler/portal-service/internal/domain"
	"github.com/jubbler/portal-service/internal/service"
	apperrors "github.com/jubbler/portal-service/pkg/util"
)

// AdminTicketsHandler manages agent-side ticket endpoints.
type AdminTicketsHandler struct {
	tickets  *service.TicketService
	comments *service.CommentService
}

// NewAdminTicketsHandler constructs handler.
func NewAdminTicketsHandler(ticketService *service.TicketService, commentService *service.CommentService) *AdminTicketsHandler {
	return &AdminTicketsHandler{tickets: ticketService, comments: commentService}
}

// ListTickets GET /admin/tickets.
func (h *AdminTicketsHandler) ListTickets(c *fiber.Ctx) error {
	filter := parseAdminTicketQuery(c)
	groups, err := h.tickets.ListForAdmin(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketGroups(groups, domain.RoleSuperadmin)})
}

// GetTicket GET /admin/tickets/:id.
func (h *AdminTicketsHandler) GetTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	ticket, err := h.tickets.GetTicket(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket, domain.RoleSuperadmin)})
}

// UpdateStatus PATCH /admin/tickets/:id/status.
func (h *AdminTicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.UpdateTicketStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	ticket, err := h.tickets.UpdateStatus(c.Context(), principal.User, c.Params("id"), domain.TicketStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket, domain.RoleSuperadmin)})
}

// AddComment POST /admin/tickets/:id/comments.
func (h *AdminTicketsHandler) AddComment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.AddCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	commentType, err := domain.ParseCommentType(req.CommentType)
	if err != nil {
		return apperrors.NewValidationError(err.Error(), map[string]any{"commentType": req.CommentType})
	}
	ticket, err := h.comments.AddComment(c.Context(), c.Params("id"), service.CommentAuthor{
		ID:   principal.User.ID,
		Name: principal.User.Name,
		Role: principal.User.Role,
	}, req.Content, commentType, commentLinkage(&req))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": ticketDetail(ticket, domain.RoleSuperadmin)})
}

// MarkCommentsRead POST /admin/tickets/:id/comments/read.
func (h *AdminTicketsHandler) MarkCommentsRead(c *fiber.Ctx) error {
	ticket, err := h.comments.MarkCommentsRead(c.Context(), c.Params("id"), domain.RoleSuperadmin)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket, domain.RoleSuperadmin)})
}

func parseAdminTicketQuery(c *fiber.Ctx) service.AdminTicketFilter {
	filter := service.AdminTicketFilter{GroupBy: c.Query("groupBy")}
	if companyID := c.Query("companyId"); companyID != "" {
		filter.CompanyID = &companyID
	}
	if createdBy := c.Query("createdBy"); createdBy != "" {
		filter.CreatedBy = &createdBy
	}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			filter.Statuses = append(filter.Statuses, domain.TicketStatus(strings.TrimSpace(part)))
		}
	}
	if typeStr := c.Query("type"); typeStr != "" {
		for _, part := range strings.Split(typeStr, ",") {
			filter.Types = append(filter.Types, domain.TicketType(strings.TrimSpace(part)))
		}
	}
	return filter
}
