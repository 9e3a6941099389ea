package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupStats(journal *echo.Group) {
	journal.GET("/stats", h.getStats)
	journal.GET("/summary", h.getSummary)
	journal.POST("/refresh-stats", h.refreshStats)
}

func (h *HttpAPIHandler) getStats(c echo.Context) error {
	stats, err := h.service.StatsService.GetStats(c.Request().Context(), periodQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *HttpAPIHandler) getSummary(c echo.Context) error {
	summary, err := h.service.StatsService.GetSummary(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *HttpAPIHandler) refreshStats(c echo.Context) error {
	resp, err := h.service.StatsService.RefreshStats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}
