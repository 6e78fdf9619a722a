package handler

import (
	"strconv"

	"go-pos-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type StatsHandler struct {
	service service.ReportService
}

func NewStatsHandler(s service.ReportService) *StatsHandler {
	return &StatsHandler{service: s}
}

// GetSalesStats returns total and count over a trailing window
// GET /api/stats?days=N (default 7)
func (h *StatsHandler) GetSalesStats(c *fiber.Ctx) error {
	days, err := strconv.Atoi(c.Query("days", "7"))
	if err != nil || days <= 0 {
		days = 7
	}

	stats, err := h.service.GetSalesStats(days)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(stats)
}

// GetWeeklySales returns the per-day series for the trailing 7 days
// GET /api/stats/weekly
func (h *StatsHandler) GetWeeklySales(c *fiber.Ctx) error {
	data, err := h.service.GetWeeklySales()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(data)
}

// GetCategorySales returns the top 5 sellers by revenue
// GET /api/stats/categories
func (h *StatsHandler) GetCategorySales(c *fiber.Ctx) error {
	data, err := h.service.GetCategorySales()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(data)
}
