package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jubbler/portal-service/internal/api/dto"
	"github.com/jubbler/portal-service/internal/auth"
	"github.com/jubbler/portal-service/internal/service"
	apperrors "github.com/jubbler/portal-service/pkg/util"
)

// PortalHandler serves the read-mostly portal sections: projects, the
// account view and per-user notifications.
type PortalHandler struct {
	projects      *service.ProjectService
	account       *service.AccountService
	notifications *service.NotificationService
}

// NewPortalHandler constructs handler.
func NewPortalHandler(projects *service.ProjectService, account *service.AccountService, notifications *service.NotificationService) *PortalHandler {
	return &PortalHandler{projects: projects, account: account, notifications: notifications}
}

// ListProjects GET /projects.
func (h *PortalHandler) ListProjects(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	projects, err := h.projects.ListForViewer(c.Context(), principal.User)
	if err != nil {
		return err
	}
	items := make([]dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		items = append(items, projectResponse(&projects[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetAccount GET /account.
func (h *PortalHandler) GetAccount(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	companyID := accountCompanyID(c, principal)

	invoices, err := h.account.Invoices(c.Context(), companyID)
	if err != nil {
		return err
	}
	movements, err := h.account.Movements(c.Context(), companyID)
	if err != nil {
		return err
	}
	balance, err := h.account.OutstandingBalance(c.Context(), companyID)
	if err != nil {
		return err
	}

	resp := dto.AccountResponse{
		OutstandingBalance: balance,
		Invoices:           make([]dto.InvoiceResponse, 0, len(invoices)),
		Movements:          make([]dto.MovementResponse, 0, len(movements)),
	}
	for i := range invoices {
		resp.Invoices = append(resp.Invoices, invoiceResponse(&invoices[i]))
	}
	for i := range movements {
		resp.Movements = append(resp.Movements, movementResponse(&movements[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// ListInvoices GET /account/invoices.
func (h *PortalHandler) ListInvoices(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	invoices, err := h.account.Invoices(c.Context(), accountCompanyID(c, principal))
	if err != nil {
		return err
	}
	items := make([]dto.InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		items = append(items, invoiceResponse(&invoices[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListMovements GET /account/movements.
func (h *PortalHandler) ListMovements(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	movements, err := h.account.Movements(c.Context(), accountCompanyID(c, principal))
	if err != nil {
		return err
	}
	items := make([]dto.MovementResponse, 0, len(movements))
	for i := range movements {
		items = append(items, movementResponse(&movements[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// accountCompanyID resolves which company's account is being read; agents
// may read any company via the companyId query parameter.
func accountCompanyID(c *fiber.Ctx, principal *auth.Principal) string {
	companyID := principal.User.CompanyID
	if principal.IsAdmin() {
		if queried := c.Query("companyId"); queried != "" {
			companyID = queried
		}
	}
	return companyID
}

// ListNotifications GET /notifications.
func (h *PortalHandler) ListNotifications(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	notifications, err := h.notifications.ListForUser(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	items := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		items = append(items, notificationResponse(&notifications[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// MarkNotificationRead POST /notifications/:id/read.
func (h *PortalHandler) MarkNotificationRead(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	if err := h.notifications.MarkRead(c.Context(), principal.User.ID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"read": true}})
}

// MarkAllNotificationsRead POST /notifications/read-all.
func (h *PortalHandler) MarkAllNotificationsRead(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	if err := h.notifications.MarkAllRead(c.Context(), principal.User.ID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"read": true}})
}
