package domain

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Recurrence describes how often an income entry repeats
type Recurrence string

const (
	RecurrenceMonthly Recurrence = "monthly"
	RecurrenceOneTime Recurrence = "one_time"
)

// legacyRecurrence maps labels written by older clients
var legacyRecurrence = map[string]Recurrence{
	"mensal":   RecurrenceMonthly,
	"eventual": RecurrenceOneTime,
	"onetime":  RecurrenceOneTime,
	"one-time": RecurrenceOneTime,
}

// ParseRecurrence normalizes a recurrence label
func ParseRecurrence(s string) (Recurrence, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	switch Recurrence(key) {
	case RecurrenceMonthly, RecurrenceOneTime:
		return Recurrence(key), nil
	}
	if r, ok := legacyRecurrence[key]; ok {
		return r, nil
	}
	return "", ErrInvalidRecurrence
}

// UnmarshalJSON accepts current and legacy labels
func (r *Recurrence) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseRecurrence(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Entry is an income record
type Entry struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        Date            `json:"date"`
	Recurring   Recurrence      `json:"recurring"`
	Category    string          `json:"category"`
}

// EntryInput holds every Entry field except the id
type EntryInput struct {
	Description string
	Amount      decimal.Decimal
	Date        Date
	Recurring   Recurrence
	Category    string
}

// IsMonthly reports whether the entry counts toward monthly income
func (e Entry) IsMonthly() bool {
	return e.Recurring == RecurrenceMonthly
}
