package handler

import (
	"net/http"
	"testing"

	"github.com/dafibh/economize/economize-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEntry_RequiresSession(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/v1/entries", `{"description": "Salary", "amount": "5000", "recurring": "monthly"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, s.ledger.State().Entries)
}

func TestCreateEntry_Success(t *testing.T) {
	s := newTestServer(t)
	s.login(t)

	rec := s.do(http.MethodPost, "/api/v1/entries", `{"description": " Salary ", "amount": 5000.50, "date": "2026-03-01", "recurring": "monthly", "category": "Work"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	entry := decodeJSON[domain.Entry](t, rec)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "Salary", entry.Description)
	assert.Equal(t, "5000.5", entry.Amount.String())
	assert.Equal(t, "2026-03-01", entry.Date.String())
	assert.Equal(t, domain.RecurrenceMonthly, entry.Recurring)

	assert.Equal(t, "5000.5", s.ledger.State().CurrentBalance.String())
	assert.Contains(t, s.publisher.Types(), "entry.created")
}

func TestCreateEntry_DefaultsDateToToday(t *testing.T) {
	s := newTestServer(t)
	s.login(t)

	rec := s.do(http.MethodPost, "/api/v1/entries", `{"description": "Bonus", "amount": "100", "recurring": "one_time"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	entry := decodeJSON[domain.Entry](t, rec)
	assert.Equal(t, "2026-03-10", entry.Date.String())
}

func TestCreateEntry_AcceptsLegacyRecurrence(t *testing.T) {
	s := newTestServer(t)
	s.login(t)

	rec := s.do(http.MethodPost, "/api/v1/entries", `{"description": "Salary", "amount": "100", "recurring": "mensal"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, domain.RecurrenceMonthly, decodeJSON[domain.Entry](t, rec).Recurring)
}

func TestCreateEntry_Validation(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing description", `{"amount": "10", "recurring": "monthly"}`, "description"},
		{"zero amount", `{"description": "x", "amount": "0", "recurring": "monthly"}`, "amount"},
		{"negative amount", `{"description": "x", "amount": "-5", "recurring": "monthly"}`, "amount"},
		{"unknown recurrence", `{"description": "x", "amount": "10", "recurring": "weekly"}`, "recurring"},
		{"bad date", `{"description": "x", "amount": "10", "recurring": "monthly", "date": "10/03/2026"}`, "date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			s.login(t)

			rec := s.do(http.MethodPost, "/api/v1/entries", tt.body)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, []string{tt.field}, fieldsOf(decodeJSON[ProblemDetails](t, rec)))
			assert.Empty(t, s.ledger.State().Entries)
		})
	}
}

func TestUpdateEntry(t *testing.T) {
	s := newTestServer(t)
	s.login(t)
	entry := s.ledger.AddEntry(domain.EntryInput{Description: "Salary", Amount: dec("1000"), Recurring: domain.RecurrenceMonthly})

	rec := s.do(http.MethodPut, "/api/v1/entries/"+entry.ID, `{"description": "Salary", "amount": "1200", "recurring": "monthly"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, entry.ID, decodeJSON[domain.Entry](t, rec).ID)
	assert.Equal(t, "1200", s.ledger.State().CurrentBalance.String())
}

func TestUpdateEntry_NotFound(t *testing.T) {
	s := newTestServer(t)
	s.login(t)

	rec := s.do(http.MethodPut, "/api/v1/entries/missing", `{"description": "Salary", "amount": "1200", "recurring": "monthly"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.True(t, s.ledger.State().CurrentBalance.IsZero())
}

func TestDeleteEntry(t *testing.T) {
	s := newTestServer(t)
	s.login(t)
	entry := s.ledger.AddEntry(domain.EntryInput{Description: "Salary", Amount: dec("1000"), Recurring: domain.RecurrenceMonthly})

	rec := s.do(http.MethodDelete, "/api/v1/entries/"+entry.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, s.ledger.State().CurrentBalance.IsZero())

	rec = s.do(http.MethodDelete, "/api/v1/entries/"+entry.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
