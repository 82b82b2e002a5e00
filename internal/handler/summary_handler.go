package handler

import (
	"strconv"

	"go-counter-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SummaryHandler struct {
	service service.SummaryService
}

func NewSummaryHandler(s service.SummaryService) *SummaryHandler {
	return &SummaryHandler{service: s}
}

func parseLimit(c *fiber.Ctx) int {
	limit, err := strconv.Atoi(c.Query("limit", "0"))
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}

// GetDailySummaries lists daily rollups, newest first
// GET /api/v1/summaries/daily?limit=N
func (h *SummaryHandler) GetDailySummaries(c *fiber.Ctx) error {
	summaries, err := h.service.GetDailySummaries(c.UserContext(), parseLimit(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch daily summaries"})
	}
	return c.JSON(summaries)
}

// GetWeeklySummaries lists weekly rollups, newest first
// GET /api/v1/summaries/weekly?limit=N
func (h *SummaryHandler) GetWeeklySummaries(c *fiber.Ctx) error {
	summaries, err := h.service.GetWeeklySummaries(c.UserContext(), parseLimit(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch weekly summaries"})
	}
	return c.JSON(summaries)
}

// GetMonthlySummaries lists monthly rollups, newest first
// GET /api/v1/summaries/monthly?limit=N
func (h *SummaryHandler) GetMonthlySummaries(c *fiber.Ctx) error {
	summaries, err := h.service.GetMonthlySummaries(c.UserContext(), parseLimit(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch monthly summaries"})
	}
	return c.JSON(summaries)
}

// RetractDay deletes a day's transactions and unwinds its rollups
// DELETE /api/v1/transactions/date/:date
func (h *SummaryHandler) RetractDay(c *fiber.Ctx) error {
	date := c.Params("date")
	if err := h.service.RetractDay(date, getUserID(c)); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Day retracted", "date": date})
}

// RetractWeek deletes a week's transactions and unwinds its rollups
// DELETE /api/v1/summaries/weekly/:weekStart
func (h *SummaryHandler) RetractWeek(c *fiber.Ctx) error {
	weekStart := c.Params("weekStart")
	if err := h.service.RetractWeek(weekStart, getUserID(c)); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Week retracted", "week_start": weekStart})
}

// RetractMonth deletes a month's transactions and its rollups
// DELETE /api/v1/summaries/monthly/:month
func (h *SummaryHandler) RetractMonth(c *fiber.Ctx) error {
	month := c.Params("month")
	if err := h.service.RetractMonth(month, getUserID(c)); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Month retracted", "month": month})
}
