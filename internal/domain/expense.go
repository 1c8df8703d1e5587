package domain

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// ExpenseStatus is the payment state of a fixed expense
type ExpenseStatus string

const (
	ExpenseStatusPaid    ExpenseStatus = "paid"
	ExpenseStatusPending ExpenseStatus = "pending"
)

var legacyExpenseStatus = map[string]ExpenseStatus{
	"pago":     ExpenseStatusPaid,
	"pendente": ExpenseStatusPending,
}

// ParseExpenseStatus normalizes a status label
func ParseExpenseStatus(s string) (ExpenseStatus, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	switch ExpenseStatus(key) {
	case ExpenseStatusPaid, ExpenseStatusPending:
		return ExpenseStatus(key), nil
	}
	if st, ok := legacyExpenseStatus[key]; ok {
		return st, nil
	}
	return "", ErrInvalidExpenseStatus
}

// UnmarshalJSON accepts current and legacy labels
func (s *ExpenseStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseExpenseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// FixedExpense is a recurring monthly obligation.
// It does not move the running balance; see LedgerService.
type FixedExpense struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	DueDay      int             `json:"dueDate"`
	Category    string          `json:"category"`
	Status      ExpenseStatus   `json:"status"`
}

// FixedExpenseInput holds every FixedExpense field except the id
type FixedExpenseInput struct {
	Description string
	Amount      decimal.Decimal
	DueDay      int
	Category    string
	Status      ExpenseStatus
}

// IsPending reports whether the expense has not been paid yet
func (e FixedExpense) IsPending() bool {
	return e.Status == ExpenseStatusPending
}

// DailyExpense is a variable, ad-hoc expense
type DailyExpense struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        Date            `json:"date"`
	Category    string          `json:"category"`
}

// DailyExpenseInput holds every DailyExpense field except the id
type DailyExpenseInput struct {
	Description string
	Amount      decimal.Decimal
	Date        Date
	Category    string
}
