package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dafibh/economize/economize-backend/internal/domain"
	"github.com/dafibh/economize/economize-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// EmergencyFundHandler handles emergency fund HTTP requests
type EmergencyFundHandler struct {
	ledgerService  *service.LedgerService
	metricsService *service.MetricsService
}

// NewEmergencyFundHandler creates a new EmergencyFundHandler
func NewEmergencyFundHandler(ledgerService *service.LedgerService, metricsService *service.MetricsService) *EmergencyFundHandler {
	return &EmergencyFundHandler{
		ledgerService:  ledgerService,
		metricsService: metricsService,
	}
}

// ContributionRequest represents the emergency fund contribution body
type ContributionRequest struct {
	Amount decimal.Decimal `json:"amount" swaggertype:"string" example:"800.00"`
}

// WithdrawalRequest represents the emergency fund withdrawal body
type WithdrawalRequest struct {
	Amount decimal.Decimal `json:"amount" swaggertype:"string" example:"250.00"`
	Reason string          `json:"reason" example:"Car repair"`
}

// GetPlan godoc
// @Summary Emergency fund plan
// @Description Fund, target, projections and withdrawal history
// @Tags emergency-fund
// @Produce json
// @Success 200 {object} domain.EmergencyPlan
// @Failure 401 {object} ProblemDetails
// @Router /emergency-fund [get]
func (h *EmergencyFundHandler) GetPlan(c echo.Context) error {
	return c.JSON(http.StatusOK, h.metricsService.EmergencyPlan())
}

// Contribute godoc
// @Summary Contribute to the emergency fund
// @Description Move money from the balance into the fund
// @Tags emergency-fund
// @Accept json
// @Produce json
// @Param request body ContributionRequest true "Contribution"
// @Success 201 {object} domain.EmergencyPlan
// @Failure 400 {object} ProblemDetails
// @Router /emergency-fund/contributions [post]
func (h *EmergencyFundHandler) Contribute(c echo.Context) error {
	var req ContributionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if errs := validateAmount(req.Amount); len(errs) > 0 {
		return NewValidationError(c, "Validation failed", errs)
	}

	h.ledgerService.AddToEmergencyFund(req.Amount)

	return c.JSON(http.StatusCreated, h.metricsService.EmergencyPlan())
}

// Withdraw godoc
// @Summary Withdraw from the emergency fund
// @Description Move money from the fund back to the balance and record why
// @Tags emergency-fund
// @Accept json
// @Produce json
// @Param request body WithdrawalRequest true "Withdrawal"
// @Success 201 {object} domain.EmergencyWithdrawal
// @Failure 400 {object} ProblemDetails
// @Failure 422 {object} ProblemDetails
// @Router /emergency-fund/withdrawals [post]
func (h *EmergencyFundHandler) Withdraw(c echo.Context) error {
	var req WithdrawalRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	var errs []ValidationError
	if strings.TrimSpace(req.Reason) == "" {
		errs = append(errs, ValidationError{Field: "reason", Message: "Reason is required"})
	}
	errs = append(errs, validateAmount(req.Amount)...)
	if len(errs) > 0 {
		return NewValidationError(c, "Validation failed", errs)
	}

	withdrawal, err := h.ledgerService.WithdrawFromEmergencyFund(req.Amount, strings.TrimSpace(req.Reason))
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientEmergencyFund) {
			return NewUnprocessableError(c, "Withdrawal exceeds the emergency fund")
		}
		if errors.Is(err, domain.ErrWithdrawalReasonRequired) || errors.Is(err, domain.ErrInvalidAmount) {
			return NewValidationError(c, err.Error(), nil)
		}
		log.Error().Err(err).Msg("Failed to withdraw from emergency fund")
		return NewInternalError(c, "Failed to withdraw from emergency fund")
	}

	return c.JSON(http.StatusCreated, withdrawal)
}
