package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dafibh/economize/economize-backend/internal/domain"
	"github.com/dafibh/economize/economize-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// LedgerService owns the LedgerState and every operation that mutates it.
//
// The running balance is maintained incrementally: entries add to it,
// daily expenses and emergency-fund contributions subtract from it, and
// fixed expenses never touch it. Every successful mutation writes the whole
// state through to the persistence area under domain.KeyLedger.
type LedgerService struct {
	mu             sync.Mutex
	store          domain.KeyValueStore
	state          domain.LedgerState
	diagnostics    []error
	eventPublisher websocket.EventPublisher
	now            func() time.Time
}

// NewLedgerService creates a LedgerService and restores any persisted state
func NewLedgerService(store domain.KeyValueStore) *LedgerService {
	s := &LedgerService{
		store: store,
		state: domain.NewLedgerState(),
		now:   time.Now,
	}
	s.restore()
	return s
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *LedgerService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// publishEvent publishes a change event if a publisher is configured
func (s *LedgerService) publishEvent(event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(event)
	}
}

// restore loads the persisted ledger. Corrupt records fail closed to the empty state.
func (s *LedgerService) restore() {
	data, err := s.store.Get(domain.KeyLedger)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return
	}
	if err != nil {
		s.diagnostics = append(s.diagnostics, fmt.Errorf("read %s: %w", domain.KeyLedger, err))
		log.Error().Err(err).Str("key", domain.KeyLedger).Msg("Failed to read persisted ledger, starting empty")
		return
	}

	var state domain.LedgerState
	if err := json.Unmarshal(data, &state); err != nil {
		s.diagnostics = append(s.diagnostics, fmt.Errorf("%w: %s: %v", domain.ErrCorruptRecord, domain.KeyLedger, err))
		log.Error().Err(err).Str("key", domain.KeyLedger).Msg("Persisted ledger is corrupt, starting empty")
		return
	}
	state.Normalize()
	s.state = state

	log.Info().
		Int("entries", len(state.Entries)).
		Int("fixed_expenses", len(state.FixedExpenses)).
		Int("daily_expenses", len(state.DailyExpenses)).
		Str("balance", state.CurrentBalance.String()).
		Msg("Restored ledger")
}

// RestoreDiagnostics returns the problems found while restoring persisted state
func (s *LedgerService) RestoreDiagnostics() []error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]error(nil), s.diagnostics...)
}

// persistLocked writes the state through. Failures are logged, not returned.
// Caller must hold s.mu.
func (s *LedgerService) persistLocked() {
	data, err := json.Marshal(s.state)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode ledger")
		return
	}
	if err := s.store.Set(domain.KeyLedger, data); err != nil {
		log.Error().Err(err).Str("key", domain.KeyLedger).Msg("Failed to persist ledger")
	}
}

// State returns a deep copy of the current ledger
func (s *LedgerService) State() domain.LedgerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Reset clears the ledger and erases its persisted record
func (s *LedgerService) Reset() {
	s.mu.Lock()
	s.state = domain.NewLedgerState()
	if err := s.store.Delete(domain.KeyLedger); err != nil {
		log.Error().Err(err).Str("key", domain.KeyLedger).Msg("Failed to erase persisted ledger")
	}
	s.mu.Unlock()

	log.Info().Msg("Ledger reset")
	s.publishEvent(websocket.LedgerReset(nil))
}

// AddEntry records an income entry and credits the balance
func (s *LedgerService) AddEntry(input domain.EntryInput) *domain.Entry {
	entry := domain.Entry{
		ID:          uuid.New().String(),
		Description: input.Description,
		Amount:      input.Amount,
		Date:        input.Date,
		Recurring:   input.Recurring,
		Category:    input.Category,
	}

	s.mu.Lock()
	s.state.Entries = append(s.state.Entries, entry)
	s.state.CurrentBalance = s.state.CurrentBalance.Add(entry.Amount)
	s.persistLocked()
	s.mu.Unlock()

	log.Debug().Str("entry_id", entry.ID).Str("amount", entry.Amount.String()).Msg("Entry added")
	s.publishEvent(websocket.EntryCreated(entry))
	return &entry
}

// UpdateEntry replaces every field of an entry and moves the balance by the
// amount difference. It reports false, changing nothing, for an unknown id.
func (s *LedgerService) UpdateEntry(id string, input domain.EntryInput) bool {
	s.mu.Lock()
	idx := indexOf(s.state.Entries, func(e domain.Entry) bool { return e.ID == id })
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	old := s.state.Entries[idx]
	updated := domain.Entry{
		ID:          id,
		Description: input.Description,
		Amount:      input.Amount,
		Date:        input.Date,
		Recurring:   input.Recurring,
		Category:    input.Category,
	}
	s.state.Entries[idx] = updated
	s.state.CurrentBalance = s.state.CurrentBalance.Add(updated.Amount.Sub(old.Amount))
	s.persistLocked()
	s.mu.Unlock()

	log.Debug().Str("entry_id", id).Str("amount", updated.Amount.String()).Msg("Entry updated")
	s.publishEvent(websocket.EntryUpdated(updated))
	return true
}

// DeleteEntry removes an entry and debits its amount
func (s *LedgerService) DeleteEntry(id string) bool {
	s.mu.Lock()
	idx := indexOf(s.state.Entries, func(e domain.Entry) bool { return e.ID == id })
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	removed := s.state.Entries[idx]
	s.state.Entries = append(s.state.Entries[:idx], s.state.Entries[idx+1:]...)
	s.state.CurrentBalance = s.state.CurrentBalance.Sub(removed.Amount)
	s.persistLocked()
	s.mu.Unlock()

	log.Debug().Str("entry_id", id).Msg("Entry deleted")
	s.publishEvent(websocket.EntryDeleted(map[string]string{"id": id}))
	return true
}

// AddFixedExpense records a monthly obligation; the balance is untouched
func (s *LedgerService) AddFixedExpense(input domain.FixedExpenseInput) *domain.FixedExpense {
	expense := domain.FixedExpense{
		ID:          uuid.New().String(),
		Description: input.Description,
		Amount:      input.Amount,
		DueDay:      input.DueDay,
		Category:    input.Category,
		Status:      input.Status,
	}

	s.mu.Lock()
	s.state.FixedExpenses = append(s.state.FixedExpenses, expense)
	s.persistLocked()
	s.mu.Unlock()

	log.Debug().Str("fixed_expense_id", expense.ID).Msg("Fixed expense added")
	s.publishEvent(websocket.FixedExpenseCreated(expense))
	return &expense
}

// UpdateFixedExpense replaces every field of a fixed expense
func (s *LedgerService) UpdateFixedExpense(id string, input domain.FixedExpenseInput) bool {
	s.mu.Lock()
	idx := indexOf(s.state.FixedExpenses, func(e domain.FixedExpense) bool { return e.ID == id })
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	updated := domain.FixedExpense{
		ID:          id,
		Description: input.Description,
		Amount:      input.Amount,
		DueDay:      input.DueDay,
		Category:    input.Category,
		Status:      input.Status,
	}
	s.state.FixedExpenses[idx] = updated
	s.persistLocked()
	s.mu.Unlock()

	log.Debug().Str("fixed_expense_id", id).Str("status", string(updated.Status)).Msg("Fixed expense updated")
	s.publishEvent(websocket.FixedExpenseUpdated(updated))
	return true
}

// DeleteFixedExpense removes a fixed expense
func (s *LedgerService) DeleteFixedExpense(id string) bool {
	s.mu.Lock()
	idx := indexOf(s.state.FixedExpenses, func(e domain.FixedExpense) bool { return e.ID == id })
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.state.FixedExpenses = append(s.state.FixedExpenses[:idx], s.state.FixedExpenses[idx+1:]...)
	s.persistLocked()
	s.mu.Unlock()

	log.Debug().Str("fixed_expense_id", id).Msg("Fixed expense deleted")
	s.publishEvent(websocket.FixedExpenseDeleted(map[string]string{"id": id}))
	return true
}

// AddDailyExpense records a variable expense and debits the balance
func (s *LedgerService) AddDailyExpense(input domain.DailyExpenseInput) *domain.DailyExpense {
	expense := domain.DailyExpense{
		ID:          uuid.New().String(),
		Description: input.Description,
		Amount:      input.Amount,
		Date:        input.Date,
		Category:    input.Category,
	}

	s.mu.Lock()
	s.state.DailyExpenses = append(s.state.DailyExpenses, expense)
	s.state.CurrentBalance = s.state.CurrentBalance.Sub(expense.Amount)
	s.persistLocked()
	s.mu.Unlock()

	log.Debug().Str("daily_expense_id", expense.ID).Str("amount", expense.Amount.String()).Msg("Daily expense added")
	s.publishEvent(websocket.DailyExpenseCreated(expense))
	return &expense
}

// UpdateDailyExpense replaces every field of a daily expense; the balance
// moves by old amount minus new amount
func (s *LedgerService) UpdateDailyExpense(id string, input domain.DailyExpenseInput) bool {
	s.mu.Lock()
	idx := indexOf(s.state.DailyExpenses, func(e domain.DailyExpense) bool { return e.ID == id })
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	old := s.state.DailyExpenses[idx]
	updated := domain.DailyExpense{
		ID:          id,
		Description: input.Description,
		Amount:      input.Amount,
		Date:        input.Date,
		Category:    input.Category,
	}
	s.state.DailyExpenses[idx] = updated
	s.state.CurrentBalance = s.state.CurrentBalance.Add(old.Amount.Sub(updated.Amount))
	s.persistLocked()
	s.mu.Unlock()

	log.Debug().Str("daily_expense_id", id).Str("amount", updated.Amount.String()).Msg("Daily expense updated")
	s.publishEvent(websocket.DailyExpenseUpdated(updated))
	return true
}

// DeleteDailyExpense removes a daily expense and credits its amount back
func (s *LedgerService) DeleteDailyExpense(id string) bool {
	s.mu.Lock()
	idx := indexOf(s.state.DailyExpenses, func(e domain.DailyExpense) bool { return e.ID == id })
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	removed := s.state.DailyExpenses[idx]
	s.state.DailyExpenses = append(s.state.DailyExpenses[:idx], s.state.DailyExpenses[idx+1:]...)
	s.state.CurrentBalance = s.state.CurrentBalance.Add(removed.Amount)
	s.persistLocked()
	s.mu.Unlock()

	log.Debug().Str("daily_expense_id", id).Msg("Daily expense deleted")
	s.publishEvent(websocket.DailyExpenseDeleted(map[string]string{"id": id}))
	return true
}

// FundMovement is the change-feed payload of an emergency-fund operation
type FundMovement struct {
	Amount         decimal.Decimal             `json:"amount"`
	EmergencyFund  decimal.Decimal             `json:"emergencyFund"`
	CurrentBalance decimal.Decimal             `json:"currentBalance"`
	Withdrawal     *domain.EmergencyWithdrawal `json:"withdrawal,omitempty"`
}

// AddToEmergencyFund moves amount from the balance into the fund.
// Callers validate amount > 0.
func (s *LedgerService) AddToEmergencyFund(amount decimal.Decimal) {
	s.mu.Lock()
	s.state.EmergencyFund = s.state.EmergencyFund.Add(amount)
	s.state.CurrentBalance = s.state.CurrentBalance.Sub(amount)
	movement := FundMovement{
		Amount:         amount,
		EmergencyFund:  s.state.EmergencyFund,
		CurrentBalance: s.state.CurrentBalance,
	}
	s.persistLocked()
	s.mu.Unlock()

	log.Info().Str("amount", amount.String()).Str("emergency_fund", movement.EmergencyFund.String()).Msg("Emergency fund contribution")
	s.publishEvent(websocket.EmergencyFundContributed(movement))
}

// WithdrawFromEmergencyFund moves amount from the fund back to the balance and
// appends an audit record. On rejection the state is left untouched.
func (s *LedgerService) WithdrawFromEmergencyFund(amount decimal.Decimal, reason string) (*domain.EmergencyWithdrawal, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, domain.ErrWithdrawalReasonRequired
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	s.mu.Lock()
	if amount.GreaterThan(s.state.EmergencyFund) {
		available := s.state.EmergencyFund
		s.mu.Unlock()
		log.Warn().Str("amount", amount.String()).Str("emergency_fund", available.String()).Msg("Withdrawal rejected")
		return nil, domain.ErrInsufficientEmergencyFund
	}

	withdrawal := domain.EmergencyWithdrawal{
		ID:     uuid.New().String(),
		Amount: amount,
		Reason: reason,
		Date:   s.now().UTC(),
	}
	s.state.EmergencyFund = s.state.EmergencyFund.Sub(amount)
	s.state.CurrentBalance = s.state.CurrentBalance.Add(amount)
	s.state.EmergencyWithdrawals = append(s.state.EmergencyWithdrawals, withdrawal)
	movement := FundMovement{
		Amount:         amount,
		EmergencyFund:  s.state.EmergencyFund,
		CurrentBalance: s.state.CurrentBalance,
		Withdrawal:     &withdrawal,
	}
	s.persistLocked()
	s.mu.Unlock()

	log.Info().Str("withdrawal_id", withdrawal.ID).Str("amount", amount.String()).Msg("Emergency fund withdrawal")
	s.publishEvent(websocket.EmergencyFundWithdrawn(movement))
	return &withdrawal, nil
}

// BalanceChange is the change-feed payload of a direct balance adjustment
type BalanceChange struct {
	Delta          decimal.Decimal `json:"delta"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
}

// UpdateBalance adds delta (possibly negative) to the balance directly.
// It bypasses the incremental bookkeeping and exists for manual corrections.
func (s *LedgerService) UpdateBalance(delta decimal.Decimal) decimal.Decimal {
	s.mu.Lock()
	s.state.CurrentBalance = s.state.CurrentBalance.Add(delta)
	balance := s.state.CurrentBalance
	s.persistLocked()
	s.mu.Unlock()

	log.Info().Str("delta", delta.String()).Str("balance", balance.String()).Msg("Balance adjusted")
	s.publishEvent(websocket.BalanceAdjusted(BalanceChange{Delta: delta, CurrentBalance: balance}))
	return balance
}

// indexOf returns the index of the first element matching match, or -1
func indexOf[T any](items []T, match func(T) bool) int {
	for i, item := range items {
		if match(item) {
			return i
		}
	}
	return -1
}
