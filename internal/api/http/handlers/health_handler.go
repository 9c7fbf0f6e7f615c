package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jubbler/portal-service/internal/persistence"
)

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	dataset     *persistence.Dataset
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, dataset *persistence.Dataset) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, dataset: dataset}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports readiness. The datastore lives in-process, so readiness
// only checks that it was seeded.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	h.dataset.RLock()
	users := len(h.dataset.Users)
	h.dataset.RUnlock()

	if users == 0 {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "DEPENDENCY_UNAVAILABLE",
				"message": "dataset not seeded",
			},
		})
	}
	return c.JSON(fiber.Map{
		"status": "ready",
		"dependencies": fiber.Map{
			"dataset": "ok",
		},
	})
}
