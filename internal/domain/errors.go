package domain

import "errors"

// Domain errors
var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrInternalError = errors.New("internal error")

	// Ledger
	ErrInvalidAmount             = errors.New("amount must be greater than zero")
	ErrInvalidDueDay             = errors.New("due day must be between 1 and 31")
	ErrDescriptionRequired       = errors.New("description is required")
	ErrDescriptionTooLong        = errors.New("description exceeds maximum length")
	ErrInvalidRecurrence         = errors.New("invalid recurrence")
	ErrInvalidExpenseStatus      = errors.New("invalid expense status")
	ErrWithdrawalReasonRequired  = errors.New("withdrawal reason is required")
	ErrInsufficientEmergencyFund = errors.New("withdrawal exceeds emergency fund")

	// Identity
	ErrNameRequired     = errors.New("name is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrPasswordTooShort = errors.New("password is too short")
	ErrNameTaken        = errors.New("name already registered")
	ErrBadCredentials   = errors.New("invalid name or password")
	ErrNoSession        = errors.New("no active session")

	// Persistence
	ErrKeyNotFound   = errors.New("key not found")
	ErrCorruptRecord = errors.New("corrupt persisted record")
)

// Validation constants
const (
	MaxDescriptionLength = 255
	MaxCategoryLength    = 100
	MinPasswordLength    = 4
)
