package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"faktura/internal/service"
)

// StatsHandler handles dashboard endpoints.
type StatsHandler struct {
	statsService service.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// Dashboard handles GET /api/v1/stats
// @Summary Get dashboard statistics
// @Description Aggregate invoice figures for a year, or a single month when month is given. Defaults to the current year.
// @Tags stats
// @Produce json
// @Param year query int false "Year"
// @Param month query int false "Month (1-12)"
// @Success 200 {object} APIResponse{data=domain.DashboardStats}
// @Router /stats [get]
func (h *StatsHandler) Dashboard(c *gin.Context) {
	year, _ := strconv.Atoi(c.Query("year"))
	month, _ := strconv.Atoi(c.Query("month"))

	stats, err := h.statsService.Dashboard(c.Request.Context(), year, month)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, stats)
}

// MonthlyRevenue handles GET /api/v1/stats/monthly
func (h *StatsHandler) MonthlyRevenue(c *gin.Context) {
	year, _ := strconv.Atoi(c.Query("year"))

	months, err := h.statsService.MonthlyRevenue(c.Request.Context(), year)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, months)
}

// RecentInvoices handles GET /api/v1/stats/recent
func (h *StatsHandler) RecentInvoices(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	invoices, err := h.statsService.RecentInvoices(c.Request.Context(), limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, invoices)
}
