package handler

import (
	"net/http"

	"github.com/dafibh/economize/economize-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// DashboardHandler serves the derived metrics
type DashboardHandler struct {
	metricsService *service.MetricsService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(metricsService *service.MetricsService) *DashboardHandler {
	return &DashboardHandler{
		metricsService: metricsService,
	}
}

// GetOverview godoc
// @Summary Dashboard overview
// @Description Income, expenses and savings for the current calendar month
// @Tags dashboard
// @Produce json
// @Success 200 {object} domain.Overview
// @Failure 401 {object} ProblemDetails
// @Router /dashboard/overview [get]
func (h *DashboardHandler) GetOverview(c echo.Context) error {
	return c.JSON(http.StatusOK, h.metricsService.Overview())
}

// GetStrategy godoc
// @Summary Savings strategy
// @Tags dashboard
// @Produce json
// @Success 200 {object} domain.Strategy
// @Failure 401 {object} ProblemDetails
// @Router /dashboard/strategy [get]
func (h *DashboardHandler) GetStrategy(c echo.Context) error {
	return c.JSON(http.StatusOK, h.metricsService.Strategy())
}

// GetReport godoc
// @Summary Report and insights
// @Tags dashboard
// @Produce json
// @Success 200 {object} domain.Report
// @Failure 401 {object} ProblemDetails
// @Router /dashboard/reports [get]
func (h *DashboardHandler) GetReport(c echo.Context) error {
	return c.JSON(http.StatusOK, h.metricsService.Report())
}

// GetBreakdown godoc
// @Summary Spending by category
// @Tags dashboard
// @Produce json
// @Success 200 {object} domain.Breakdown
// @Failure 401 {object} ProblemDetails
// @Router /dashboard/breakdown [get]
func (h *DashboardHandler) GetBreakdown(c echo.Context) error {
	return c.JSON(http.StatusOK, h.metricsService.Breakdown())
}
