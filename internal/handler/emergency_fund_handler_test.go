package handler

import (
	"net/http"
	"testing"

	"github.com/dafibh/economize/economize-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContribute(t *testing.T) {
	s := newTestServer(t)
	s.login(t)

	rec := s.do(http.MethodPost, "/api/v1/emergency-fund/contributions", `{"amount": "800"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	plan := decodeJSON[domain.EmergencyPlan](t, rec)
	assert.Equal(t, "800", plan.Fund.String())
	assert.Equal(t, "-800", s.ledger.State().CurrentBalance.String())
	assert.Contains(t, s.publisher.Types(), "emergency_fund.contributed")
}

func TestContribute_RejectsNonPositive(t *testing.T) {
	s := newTestServer(t)
	s.login(t)

	rec := s.do(http.MethodPost, "/api/v1/emergency-fund/contributions", `{"amount": "0"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.True(t, s.ledger.State().EmergencyFund.IsZero())
}

func TestWithdraw(t *testing.T) {
	s := newTestServer(t)
	s.login(t)
	s.ledger.AddToEmergencyFund(dec("800"))

	rec := s.do(http.MethodPost, "/api/v1/emergency-fund/withdrawals", `{"amount": "300", "reason": " Car repair "}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	withdrawal := decodeJSON[domain.EmergencyWithdrawal](t, rec)
	assert.NotEmpty(t, withdrawal.ID)
	assert.Equal(t, "Car repair", withdrawal.Reason)

	state := s.ledger.State()
	assert.Equal(t, "500", state.EmergencyFund.String())
	assert.Equal(t, "-500", state.CurrentBalance.String())
	require.Len(t, state.EmergencyWithdrawals, 1)
}

func TestWithdraw_ExceedsFund(t *testing.T) {
	s := newTestServer(t)
	s.login(t)
	s.ledger.AddToEmergencyFund(dec("100"))

	rec := s.do(http.MethodPost, "/api/v1/emergency-fund/withdrawals", `{"amount": "100.01", "reason": "Too much"}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, ErrorTypeUnprocessable, decodeJSON[ProblemDetails](t, rec).Type)

	state := s.ledger.State()
	assert.Equal(t, "100", state.EmergencyFund.String())
	assert.Empty(t, state.EmergencyWithdrawals)
}

func TestWithdraw_Validation(t *testing.T) {
	s := newTestServer(t)
	s.login(t)
	s.ledger.AddToEmergencyFund(dec("100"))

	rec := s.do(http.MethodPost, "/api/v1/emergency-fund/withdrawals", `{"amount": "0", "reason": "  "}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"reason", "amount"}, fieldsOf(decodeJSON[ProblemDetails](t, rec)))
	assert.Equal(t, "100", s.ledger.State().EmergencyFund.String())
}

func TestGetPlan(t *testing.T) {
	s := newTestServer(t)
	s.login(t)
	s.ledger.AddFixedExpense(domain.FixedExpenseInput{Description: "Rent", Amount: dec("1000"), DueDay: 1, Status: domain.ExpenseStatusPaid})
	s.ledger.AddToEmergencyFund(dec("1500"))

	rec := s.do(http.MethodGet, "/api/v1/emergency-fund", "")

	require.Equal(t, http.StatusOK, rec.Code)
	plan := decodeJSON[domain.EmergencyPlan](t, rec)
	assert.Equal(t, "6000", plan.Target.String())
	assert.Equal(t, "25", plan.Progress.String())
	assert.Equal(t, "1.5", plan.CoverageMonths.String())
	assert.Equal(t, int64(6), plan.MonthsToTarget)
	assert.Equal(t, "3900", plan.ThreeMonthProjection.String())
	assert.Equal(t, "6300", plan.SixMonthProjection.String())
	assert.Equal(t, "11100", plan.TwelveMonthProjection.String())
}
