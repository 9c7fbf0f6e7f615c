package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jubbler/portal-service/internal/api/dto"
	"github.com/jubbler/portal-service/internal/observability"
	"github.com/jubbler/portal-service/internal/service"
)

// DashboardHandler serves the agent landing view and operational counters.
type DashboardHandler struct {
	service *service.DashboardService
	metrics *observability.Metrics
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboardService *service.DashboardService, metrics *observability.Metrics) *DashboardHandler {
	return &DashboardHandler{service: dashboardService, metrics: metrics}
}

// Stats GET /admin/dashboard.
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.Context())
	if err != nil {
		return err
	}
	resp := dto.DashboardResponse{
		ActiveChats:      stats.ActiveChats,
		OpenIncidents:    stats.OpenIncidents,
		OpenRequirements: stats.OpenRequirements,
		ByCompany:        make([]dto.CompanyTicketStatsResponse, 0, len(stats.ByCompany)),
		LastSevenDays:    make([]dto.DayCountResponse, 0, len(stats.LastSevenDays)),
	}
	for _, row := range stats.ByCompany {
		resp.ByCompany = append(resp.ByCompany, dto.CompanyTicketStatsResponse{
			CompanyID:    row.CompanyID,
			CompanyName:  row.CompanyName,
			Incidents:    row.Incidents,
			Requirements: row.Requirements,
		})
	}
	for _, day := range stats.LastSevenDays {
		resp.LastSevenDays = append(resp.LastSevenDays, dto.DayCountResponse{
			Day:     day.Day,
			Date:    day.Date,
			Created: day.Created,
		})
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Metrics GET /admin/metrics.
func (h *DashboardHandler) Metrics(c *fiber.Ctx) error {
	requests, errors := h.metrics.Snapshot()
	return c.JSON(fiber.Map{"data": fiber.Map{
		"requests": requests,
		"errors":   errors,
	}})
}
