package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dafibh/economize/economize-backend/internal/domain"
	"github.com/dafibh/economize/economize-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// LedgerResetter clears the financial ledger when the session ends
type LedgerResetter interface {
	Reset()
}

// IdentityService owns the registered accounts and the current session.
// Credentials are compared in plaintext.
type IdentityService struct {
	mu             sync.RWMutex
	store          domain.KeyValueStore
	ledger         LedgerResetter
	accounts       []domain.UserAccount
	session        *domain.Session
	delay          time.Duration
	diagnostics    []error
	eventPublisher websocket.EventPublisher
}

// NewIdentityService creates an IdentityService and restores accounts and
// any recorded session. A restored session is trusted without re-verification.
func NewIdentityService(store domain.KeyValueStore, ledger LedgerResetter, delay time.Duration) *IdentityService {
	s := &IdentityService{
		store:    store,
		ledger:   ledger,
		accounts: []domain.UserAccount{},
		delay:    delay,
	}
	s.restore()
	return s
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *IdentityService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *IdentityService) publishEvent(event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(event)
	}
}

func (s *IdentityService) restore() {
	var accounts []domain.UserAccount
	if s.load(domain.KeyAccounts, &accounts) && accounts != nil {
		s.accounts = accounts
	}

	var session domain.Session
	if s.load(domain.KeySession, &session) {
		if session.ID == "" {
			s.diagnostics = append(s.diagnostics, fmt.Errorf("%w: %s: missing id", domain.ErrCorruptRecord, domain.KeySession))
			log.Error().Str("key", domain.KeySession).Msg("Persisted session has no id, ignoring it")
		} else {
			s.session = &session
			log.Info().Str("user_id", session.ID).Msg("Restored session")
		}
	}
}

// load decodes the record under key into dst. It reports false when the record
// is absent or unusable; unusable records are logged and kept as diagnostics.
func (s *IdentityService) load(key string, dst interface{}) bool {
	data, err := s.store.Get(key)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return false
	}
	if err != nil {
		s.diagnostics = append(s.diagnostics, fmt.Errorf("read %s: %w", key, err))
		log.Error().Err(err).Str("key", key).Msg("Failed to read persisted record")
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		s.diagnostics = append(s.diagnostics, fmt.Errorf("%w: %s: %v", domain.ErrCorruptRecord, key, err))
		log.Error().Err(err).Str("key", key).Msg("Persisted record is corrupt, ignoring it")
		return false
	}
	return true
}

// RestoreDiagnostics returns the problems found while restoring persisted records
func (s *IdentityService) RestoreDiagnostics() []error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]error(nil), s.diagnostics...)
}

func (s *IdentityService) save(key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to encode record")
		return
	}
	if err := s.store.Set(key, data); err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to persist record")
	}
}

// simulateLatency waits out the configured auth delay. It runs before any lock is taken.
func (s *IdentityService) simulateLatency() {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
}

// Register creates an account and makes it the current session.
// It returns false when the name is already taken (exact match).
func (s *IdentityService) Register(name, password string) bool {
	s.simulateLatency()

	s.mu.Lock()
	for _, a := range s.accounts {
		if a.Name == name {
			s.mu.Unlock()
			log.Info().Str("name", name).Msg("Registration rejected, name taken")
			return false
		}
	}

	account := domain.UserAccount{
		ID:       uuid.New().String(),
		Name:     name,
		Password: password,
	}
	s.accounts = append(s.accounts, account)
	session := account.Session()
	s.session = &session
	s.save(domain.KeyAccounts, s.accounts)
	s.save(domain.KeySession, session)
	s.mu.Unlock()

	log.Info().Str("user_id", account.ID).Msg("Account registered")
	s.publishEvent(websocket.SessionStarted(session))
	return true
}

// Login makes the matching account the current session.
// It returns false, leaving any session as it was, when no account matches.
func (s *IdentityService) Login(name, password string) bool {
	s.simulateLatency()

	s.mu.Lock()
	var matched *domain.UserAccount
	for i := range s.accounts {
		if s.accounts[i].Name == name && s.accounts[i].Password == password {
			matched = &s.accounts[i]
			break
		}
	}
	if matched == nil {
		s.mu.Unlock()
		log.Info().Str("name", name).Msg("Login rejected")
		return false
	}

	session := matched.Session()
	s.session = &session
	s.save(domain.KeySession, session)
	s.mu.Unlock()

	log.Info().Str("user_id", session.ID).Msg("Logged in")
	s.publishEvent(websocket.SessionStarted(session))
	return true
}

// Logout ends the session, erases the persisted session and resets the ledger
func (s *IdentityService) Logout() {
	s.mu.Lock()
	previous := s.session
	s.session = nil
	if err := s.store.Delete(domain.KeySession); err != nil {
		log.Error().Err(err).Str("key", domain.KeySession).Msg("Failed to erase persisted session")
	}
	s.mu.Unlock()

	if s.ledger != nil {
		s.ledger.Reset()
	}

	if previous != nil {
		log.Info().Str("user_id", previous.ID).Msg("Logged out")
		s.publishEvent(websocket.SessionEnded(previous.ID, *previous))
	}
}

// CurrentSession returns a copy of the active session, or nil
func (s *IdentityService) CurrentSession() *domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	session := *s.session
	return &session
}

// Accounts returns the number of registered accounts
func (s *IdentityService) Accounts() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts)
}
