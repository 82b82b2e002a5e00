package handler

import (
	"go-counter-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetCounterStats returns overview statistics for the counter UI
// GET /api/v1/dashboard/stats
func (h *DashboardHandler) GetCounterStats(c *fiber.Ctx) error {
	stats, err := h.service.GetCounterStats()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch counter stats"})
	}
	return c.JSON(stats)
}
