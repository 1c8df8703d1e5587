package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/dafibh/economize/economize-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDailyExpense_DebitsBalance(t *testing.T) {
	s := newTestServer(t)
	s.login(t)
	s.ledger.UpdateBalance(dec("100"))

	rec := s.do(http.MethodPost, "/api/v1/daily-expenses", `{"description": "Lunch", "amount": "30.25", "category": "Food"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	expense := decodeJSON[domain.DailyExpense](t, rec)
	assert.Equal(t, "2026-03-10", expense.Date.String())
	assert.Equal(t, "69.75", s.ledger.State().CurrentBalance.String())
}

func TestGetDailyExpenses_NewestFirst(t *testing.T) {
	s := newTestServer(t)
	s.login(t)
	s.ledger.AddDailyExpense(domain.DailyExpenseInput{Description: "Old", Amount: dec("5"), Date: domain.NewDate(2026, time.March, 1)})
	s.ledger.AddDailyExpense(domain.DailyExpenseInput{Description: "New", Amount: dec("5"), Date: domain.NewDate(2026, time.March, 9)})

	rec := s.do(http.MethodGet, "/api/v1/daily-expenses", "")

	require.Equal(t, http.StatusOK, rec.Code)
	expenses := decodeJSON[[]domain.DailyExpense](t, rec)
	require.Len(t, expenses, 2)
	assert.Equal(t, "New", expenses[0].Description)
	assert.Equal(t, "Old", expenses[1].Description)
}

func TestUpdateDailyExpense(t *testing.T) {
	s := newTestServer(t)
	s.login(t)
	expense := s.ledger.AddDailyExpense(domain.DailyExpenseInput{Description: "Lunch", Amount: dec("30"), Date: domain.NewDate(2026, time.March, 9)})

	rec := s.do(http.MethodPut, "/api/v1/daily-expenses/"+expense.ID, `{"description": "Lunch", "amount": "20", "date": "2026-03-09"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "-20", s.ledger.State().CurrentBalance.String())

	rec = s.do(http.MethodPut, "/api/v1/daily-expenses/missing", `{"description": "Lunch", "amount": "20"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteDailyExpense(t *testing.T) {
	s := newTestServer(t)
	s.login(t)
	expense := s.ledger.AddDailyExpense(domain.DailyExpenseInput{Description: "Lunch", Amount: dec("30"), Date: domain.NewDate(2026, time.March, 9)})

	rec := s.do(http.MethodDelete, "/api/v1/daily-expenses/"+expense.ID, "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, s.ledger.State().CurrentBalance.IsZero())

	rec = s.do(http.MethodDelete, "/api/v1/daily-expenses/"+expense.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateDailyExpense_Validation(t *testing.T) {
	s := newTestServer(t)
	s.login(t)

	rec := s.do(http.MethodPost, "/api/v1/daily-expenses", `{"description": "", "amount": "-1", "date": "nope"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.ElementsMatch(t, []string{"description", "amount", "date"}, fieldsOf(decodeJSON[ProblemDetails](t, rec)))
}
