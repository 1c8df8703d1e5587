package handler

import (
	"fmt"
	"strings"
	"time"

	"github.com/dafibh/economize/economize-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// validateDescription requires a non-blank description within the length limit
func validateDescription(description string) []ValidationError {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return []ValidationError{{Field: "description", Message: "Description is required"}}
	}
	if len(trimmed) > domain.MaxDescriptionLength {
		return []ValidationError{{Field: "description", Message: fmt.Sprintf("Description must be %d characters or less", domain.MaxDescriptionLength)}}
	}
	return nil
}

func validateAmount(amount decimal.Decimal) []ValidationError {
	if amount.LessThanOrEqual(decimal.Zero) {
		return []ValidationError{{Field: "amount", Message: "Amount must be greater than zero"}}
	}
	return nil
}

func validateCategory(category string) []ValidationError {
	if len(strings.TrimSpace(category)) > domain.MaxCategoryLength {
		return []ValidationError{{Field: "category", Message: fmt.Sprintf("Category must be %d characters or less", domain.MaxCategoryLength)}}
	}
	return nil
}

// parseDate parses an optional YYYY-MM-DD value, defaulting to today
func parseDate(value string, now time.Time) (domain.Date, []ValidationError) {
	if strings.TrimSpace(value) == "" {
		return domain.DateOf(now), nil
	}
	date, err := domain.ParseDate(value)
	if err != nil {
		return domain.Date{}, []ValidationError{{Field: "date", Message: "Date must be formatted as YYYY-MM-DD"}}
	}
	return date, nil
}

// EntryRequest is the body of entry create and update requests
type EntryRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string" example:"5000.00"`
	Date        string          `json:"date" example:"2026-03-01"`
	Recurring   string          `json:"recurring" example:"monthly"`
	Category    string          `json:"category"`
}

func (r EntryRequest) toInput(now time.Time) (domain.EntryInput, []ValidationError) {
	var errs []ValidationError
	errs = append(errs, validateDescription(r.Description)...)
	errs = append(errs, validateAmount(r.Amount)...)
	errs = append(errs, validateCategory(r.Category)...)

	date, dateErrs := parseDate(r.Date, now)
	errs = append(errs, dateErrs...)

	recurring, err := domain.ParseRecurrence(r.Recurring)
	if err != nil {
		errs = append(errs, ValidationError{Field: "recurring", Message: "Recurring must be one of: monthly, one_time"})
	}

	return domain.EntryInput{
		Description: strings.TrimSpace(r.Description),
		Amount:      r.Amount,
		Date:        date,
		Recurring:   recurring,
		Category:    strings.TrimSpace(r.Category),
	}, errs
}

// FixedExpenseRequest is the body of fixed expense create and update requests
type FixedExpenseRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string" example:"1500.00"`
	DueDate     int             `json:"dueDate" example:"5"`
	Category    string          `json:"category"`
	Status      string          `json:"status" example:"pending"`
}

func (r FixedExpenseRequest) toInput() (domain.FixedExpenseInput, []ValidationError) {
	var errs []ValidationError
	errs = append(errs, validateDescription(r.Description)...)
	errs = append(errs, validateAmount(r.Amount)...)
	errs = append(errs, validateCategory(r.Category)...)

	if r.DueDate < 1 || r.DueDate > 31 {
		errs = append(errs, ValidationError{Field: "dueDate", Message: "Due date must be a day between 1 and 31"})
	}

	status := domain.ExpenseStatusPending
	if strings.TrimSpace(r.Status) != "" {
		parsed, err := domain.ParseExpenseStatus(r.Status)
		if err != nil {
			errs = append(errs, ValidationError{Field: "status", Message: "Status must be one of: paid, pending"})
		}
		status = parsed
	}

	return domain.FixedExpenseInput{
		Description: strings.TrimSpace(r.Description),
		Amount:      r.Amount,
		DueDay:      r.DueDate,
		Category:    strings.TrimSpace(r.Category),
		Status:      status,
	}, errs
}

// DailyExpenseRequest is the body of daily expense create and update requests
type DailyExpenseRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string" example:"42.90"`
	Date        string          `json:"date" example:"2026-03-10"`
	Category    string          `json:"category"`
}

func (r DailyExpenseRequest) toInput(now time.Time) (domain.DailyExpenseInput, []ValidationError) {
	var errs []ValidationError
	errs = append(errs, validateDescription(r.Description)...)
	errs = append(errs, validateAmount(r.Amount)...)
	errs = append(errs, validateCategory(r.Category)...)

	date, dateErrs := parseDate(r.Date, now)
	errs = append(errs, dateErrs...)

	return domain.DailyExpenseInput{
		Description: strings.TrimSpace(r.Description),
		Amount:      r.Amount,
		Date:        date,
		Category:    strings.TrimSpace(r.Category),
	}, errs
}
