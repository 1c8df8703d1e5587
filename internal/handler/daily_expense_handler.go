package handler

import (
	"net/http"
	"time"

	"github.com/dafibh/economize/economize-backend/internal/domain"
	"github.com/dafibh/economize/economize-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// DailyExpenseHandler handles daily expense HTTP requests
type DailyExpenseHandler struct {
	ledgerService  *service.LedgerService
	metricsService *service.MetricsService
	now            func() time.Time
}

// NewDailyExpenseHandler creates a new DailyExpenseHandler
func NewDailyExpenseHandler(ledgerService *service.LedgerService, metricsService *service.MetricsService) *DailyExpenseHandler {
	return &DailyExpenseHandler{
		ledgerService:  ledgerService,
		metricsService: metricsService,
		now:            time.Now,
	}
}

// GetDailyExpenses godoc
// @Summary List daily expenses
// @Description All daily expenses, newest first
// @Tags daily-expenses
// @Produce json
// @Success 200 {array} domain.DailyExpense
// @Failure 401 {object} ProblemDetails
// @Router /daily-expenses [get]
func (h *DailyExpenseHandler) GetDailyExpenses(c echo.Context) error {
	return c.JSON(http.StatusOK, h.metricsService.DailyExpenses())
}

// CreateDailyExpense godoc
// @Summary Create a daily expense
// @Description Record a variable expense; the amount is debited from the balance
// @Tags daily-expenses
// @Accept json
// @Produce json
// @Param request body DailyExpenseRequest true "Daily expense"
// @Success 201 {object} domain.DailyExpense
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /daily-expenses [post]
func (h *DailyExpenseHandler) CreateDailyExpense(c echo.Context) error {
	var req DailyExpenseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, errs := req.toInput(h.now())
	if len(errs) > 0 {
		return NewValidationError(c, "Validation failed", errs)
	}

	expense := h.ledgerService.AddDailyExpense(input)
	log.Info().Str("daily_expense_id", expense.ID).Str("amount", expense.Amount.String()).Msg("Daily expense created")

	return c.JSON(http.StatusCreated, expense)
}

// UpdateDailyExpense godoc
// @Summary Update a daily expense
// @Tags daily-expenses
// @Accept json
// @Produce json
// @Param id path string true "Daily expense ID"
// @Param request body DailyExpenseRequest true "Daily expense"
// @Success 200 {object} domain.DailyExpense
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /daily-expenses/{id} [put]
func (h *DailyExpenseHandler) UpdateDailyExpense(c echo.Context) error {
	id := c.Param("id")

	var req DailyExpenseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, errs := req.toInput(h.now())
	if len(errs) > 0 {
		return NewValidationError(c, "Validation failed", errs)
	}

	if !h.ledgerService.UpdateDailyExpense(id, input) {
		return NewNotFoundError(c, "Daily expense not found")
	}

	return c.JSON(http.StatusOK, domain.DailyExpense{
		ID:          id,
		Description: input.Description,
		Amount:      input.Amount,
		Date:        input.Date,
		Category:    input.Category,
	})
}

// DeleteDailyExpense godoc
// @Summary Delete a daily expense
// @Tags daily-expenses
// @Param id path string true "Daily expense ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /daily-expenses/{id} [delete]
func (h *DailyExpenseHandler) DeleteDailyExpense(c echo.Context) error {
	if !h.ledgerService.DeleteDailyExpense(c.Param("id")) {
		return NewNotFoundError(c, "Daily expense not found")
	}
	return c.NoContent(http.StatusNoContent)
}
