package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmergencyWithdrawal is the audit record of money taken out of the emergency fund.
// Records are only ever appended.
type EmergencyWithdrawal struct {
	ID     string          `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason"`
	Date   time.Time       `json:"date"`
}

// LedgerState is the aggregate root of the financial data
type LedgerState struct {
	Entries              []Entry               `json:"entries"`
	FixedExpenses        []FixedExpense        `json:"fixedExpenses"`
	DailyExpenses        []DailyExpense        `json:"dailyExpenses"`
	EmergencyFund        decimal.Decimal       `json:"emergencyFund"`
	EmergencyWithdrawals []EmergencyWithdrawal `json:"emergencyWithdrawals"`
	CurrentBalance       decimal.Decimal       `json:"currentBalance"`
}

// NewLedgerState returns the empty, zero-valued state
func NewLedgerState() LedgerState {
	return LedgerState{
		Entries:              []Entry{},
		FixedExpenses:        []FixedExpense{},
		DailyExpenses:        []DailyExpense{},
		EmergencyFund:        decimal.Zero,
		EmergencyWithdrawals: []EmergencyWithdrawal{},
		CurrentBalance:       decimal.Zero,
	}
}

// Normalize replaces nil lists with empty ones so older documents
// without a withdrawals list restore cleanly
func (s *LedgerState) Normalize() {
	if s.Entries == nil {
		s.Entries = []Entry{}
	}
	if s.FixedExpenses == nil {
		s.FixedExpenses = []FixedExpense{}
	}
	if s.DailyExpenses == nil {
		s.DailyExpenses = []DailyExpense{}
	}
	if s.EmergencyWithdrawals == nil {
		s.EmergencyWithdrawals = []EmergencyWithdrawal{}
	}
}

// Clone returns a deep copy that shares no slices with s
func (s LedgerState) Clone() LedgerState {
	out := s
	out.Entries = append([]Entry{}, s.Entries...)
	out.FixedExpenses = append([]FixedExpense{}, s.FixedExpenses...)
	out.DailyExpenses = append([]DailyExpense{}, s.DailyExpenses...)
	out.EmergencyWithdrawals = append([]EmergencyWithdrawal{}, s.EmergencyWithdrawals...)
	return out
}
