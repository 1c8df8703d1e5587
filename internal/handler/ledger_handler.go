package handler

import (
	"net/http"

	"github.com/dafibh/economize/economize-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// LedgerHandler exposes the whole ledger and direct balance corrections
type LedgerHandler struct {
	ledgerService *service.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledgerService *service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// BalanceAdjustmentRequest represents a manual balance correction
type BalanceAdjustmentRequest struct {
	Delta decimal.Decimal `json:"delta" swaggertype:"string" example:"-12.50"`
}

// BalanceResponse represents the balance after an adjustment
type BalanceResponse struct {
	CurrentBalance decimal.Decimal `json:"currentBalance" swaggertype:"string"`
}

// GetLedger godoc
// @Summary Full ledger
// @Tags ledger
// @Produce json
// @Success 200 {object} domain.LedgerState
// @Failure 401 {object} ProblemDetails
// @Router /ledger [get]
func (h *LedgerHandler) GetLedger(c echo.Context) error {
	return c.JSON(http.StatusOK, h.ledgerService.State())
}

// AdjustBalance godoc
// @Summary Adjust the balance
// @Description Add a signed delta to the balance without recording a transaction
// @Tags ledger
// @Accept json
// @Produce json
// @Param request body BalanceAdjustmentRequest true "Adjustment"
// @Success 200 {object} BalanceResponse
// @Failure 400 {object} ProblemDetails
// @Router /balance/adjustments [post]
func (h *LedgerHandler) AdjustBalance(c echo.Context) error {
	var req BalanceAdjustmentRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if req.Delta.IsZero() {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "delta", Message: "Delta must not be zero"},
		})
	}

	balance := h.ledgerService.UpdateBalance(req.Delta)
	return c.JSON(http.StatusOK, BalanceResponse{CurrentBalance: balance})
}
