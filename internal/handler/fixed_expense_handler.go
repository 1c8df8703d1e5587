package handler

import (
	"net/http"

	"github.com/dafibh/economize/economize-backend/internal/domain"
	"github.com/dafibh/economize/economize-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// FixedExpenseHandler handles fixed expense HTTP requests.
// Fixed expenses never move the running balance.
type FixedExpenseHandler struct {
	ledgerService *service.LedgerService
}

// NewFixedExpenseHandler creates a new FixedExpenseHandler
func NewFixedExpenseHandler(ledgerService *service.LedgerService) *FixedExpenseHandler {
	return &FixedExpenseHandler{ledgerService: ledgerService}
}

// CreateFixedExpense godoc
// @Summary Create a fixed expense
// @Tags fixed-expenses
// @Accept json
// @Produce json
// @Param request body FixedExpenseRequest true "Fixed expense"
// @Success 201 {object} domain.FixedExpense
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /fixed-expenses [post]
func (h *FixedExpenseHandler) CreateFixedExpense(c echo.Context) error {
	var req FixedExpenseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, errs := req.toInput()
	if len(errs) > 0 {
		return NewValidationError(c, "Validation failed", errs)
	}

	expense := h.ledgerService.AddFixedExpense(input)
	log.Info().Str("fixed_expense_id", expense.ID).Int("due_day", expense.DueDay).Msg("Fixed expense created")

	return c.JSON(http.StatusCreated, expense)
}

// UpdateFixedExpense godoc
// @Summary Update a fixed expense
// @Tags fixed-expenses
// @Accept json
// @Produce json
// @Param id path string true "Fixed expense ID"
// @Param request body FixedExpenseRequest true "Fixed expense"
// @Success 200 {object} domain.FixedExpense
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /fixed-expenses/{id} [put]
func (h *FixedExpenseHandler) UpdateFixedExpense(c echo.Context) error {
	id := c.Param("id")

	var req FixedExpenseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, errs := req.toInput()
	if len(errs) > 0 {
		return NewValidationError(c, "Validation failed", errs)
	}

	if !h.ledgerService.UpdateFixedExpense(id, input) {
		return NewNotFoundError(c, "Fixed expense not found")
	}

	return c.JSON(http.StatusOK, domain.FixedExpense{
		ID:          id,
		Description: input.Description,
		Amount:      input.Amount,
		DueDay:      input.DueDay,
		Category:    input.Category,
		Status:      input.Status,
	})
}

// DeleteFixedExpense godoc
// @Summary Delete a fixed expense
// @Tags fixed-expenses
// @Param id path string true "Fixed expense ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /fixed-expenses/{id} [delete]
func (h *FixedExpenseHandler) DeleteFixedExpense(c echo.Context) error {
	if !h.ledgerService.DeleteFixedExpense(c.Param("id")) {
		return NewNotFoundError(c, "Fixed expense not found")
	}
	return c.NoContent(http.StatusNoContent)
}
