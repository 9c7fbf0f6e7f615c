package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jubbler/portal-service/internal/api/dto"
	"github.com/jubbler/portal-service/internal/auth"
	"github.com/jubbler/portal-service/internal/domain"
	"github.com/jubbler/portal-service/internal/service"
	apperrors "github.com/jubbler/portal-service/pkg/util"
)

// TicketsHandler manages client-side ticket endpoints.
type TicketsHandler struct {
	tickets  *service.TicketService
	comments *service.CommentService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService, commentService *service.CommentService) *TicketsHandler {
	return &TicketsHandler{tickets: ticketService, comments: commentService}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	ticket, err := h.tickets.CreateTicket(c.Context(), principal.User, service.TicketCreateInput{
		Type:        domain.TicketType(req.Type),
		Title:       req.Title,
		Description: req.Description,
		Priority:    domain.TicketPriority(req.Priority),
		Urgency:     domain.TicketLevel(req.Urgency),
		Impact:      domain.TicketLevel(req.Impact),
		Origin:      domain.TicketOrigin(req.Origin),
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": ticketDetail(ticket, principal.User.Role)})
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	tickets, err := h.tickets.ListForClient(c.Context(), principal.User)
	if err != nil {
		return err
	}
	items := make([]dto.TicketSummary, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketSummary(&tickets[i], principal.User.Role))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	ticket, err := h.tickets.GetTicket(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket, principal.User.Role)})
}

// AddComment POST /tickets/:id/comments.
func (h *TicketsHandler) AddComment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	// Scope check first so a client cannot comment across companies.
	if _, err := h.tickets.GetTicket(c.Context(), principal.User, c.Params("id")); err != nil {
		return err
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
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": ticketDetail(ticket, principal.User.Role)})
}

// MarkCommentsRead POST /tickets/:id/comments/read.
func (h *TicketsHandler) MarkCommentsRead(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	if _, err := h.tickets.GetTicket(c.Context(), principal.User, c.Params("id")); err != nil {
		return err
	}
	ticket, err := h.comments.MarkCommentsRead(c.Context(), c.Params("id"), principal.User.Role)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket, principal.User.Role)})
}

func commentLinkage(req *dto.AddCommentRequest) *service.CommentLinkage {
	if req.RespondedToCommentID == nil && req.ApprovedCommentID == nil && req.Approved == nil {
		return nil
	}
	linkage := &service.CommentLinkage{}
	if req.RespondedToCommentID != nil {
		linkage.RespondedToCommentID = *req.RespondedToCommentID
	}
	if req.ApprovedCommentID != nil {
		linkage.ApprovedCommentID = *req.ApprovedCommentID
	}
	if req.Approved != nil {
		linkage.Approved = *req.Approved
	}
	return linkage
}
