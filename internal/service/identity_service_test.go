package service

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/dafibh/economize/economize-backend/internal/domain"
	"github.com/dafibh/economize/economize-backend/internal/testutil"
)

func newTestIdentity(t *testing.T) (*IdentityService, *testutil.MockKeyValueStore, *testutil.MockLedgerResetter) {
	t.Helper()
	store := testutil.NewMockKeyValueStore()
	resetter := &testutil.MockLedgerResetter{}
	return NewIdentityService(store, resetter, 0), store, resetter
}

func TestRegister_Success(t *testing.T) {
	identity, store, _ := newTestIdentity(t)

	if !identity.Register("alice", "pass1") {
		t.Fatal("Expected registration to succeed")
	}

	session := identity.CurrentSession()
	if session == nil {
		t.Fatal("Expected a session after registration")
	}
	if session.Name != "alice" || session.ID == "" {
		t.Errorf("Unexpected session %+v", session)
	}

	raw, ok := store.Raw(domain.KeyAccounts)
	if !ok {
		t.Fatal("Expected accounts to be persisted")
	}
	var accounts []domain.UserAccount
	if err := json.Unmarshal(raw, &accounts); err != nil {
		t.Fatalf("Expected valid accounts JSON, got %v", err)
	}
	if len(accounts) != 1 || accounts[0].Password != "pass1" || accounts[0].ID != session.ID {
		t.Errorf("Unexpected persisted accounts %+v", accounts)
	}

	raw, ok = store.Raw(domain.KeySession)
	if !ok {
		t.Fatal("Expected session to be persisted")
	}
	var persistedSession map[string]interface{}
	if err := json.Unmarshal(raw, &persistedSession); err != nil {
		t.Fatalf("Expected valid session JSON, got %v", err)
	}
	if _, hasPassword := persistedSession["password"]; hasPassword {
		t.Error("Session record must not contain the password")
	}
}

func TestRegister_DuplicateName(t *testing.T) {
	identity, _, _ := newTestIdentity(t)

	identity.Register("alice", "pass1")
	if identity.Register("alice", "pass1") {
		t.Error("Expected second registration to fail")
	}
	if identity.Accounts() != 1 {
		t.Errorf("Expected 1 account, got %d", identity.Accounts())
	}

	// Names are case-sensitive
	if !identity.Register("Alice", "pass2") {
		t.Error("Expected registration of a differently-cased name to succeed")
	}
	if identity.Accounts() != 2 {
		t.Errorf("Expected 2 accounts, got %d", identity.Accounts())
	}
}

func TestRegister_OverwritesPriorSession(t *testing.T) {
	identity, _, _ := newTestIdentity(t)

	identity.Register("alice", "pass1")
	identity.Register("bob", "pass2")

	if s := identity.CurrentSession(); s == nil || s.Name != "bob" {
		t.Errorf("Expected bob's session, got %+v", s)
	}
}

func TestLogin_Success(t *testing.T) {
	identity, _, _ := newTestIdentity(t)
	identity.Register("alice", "pass1")
	identity.Logout()

	if !identity.Login("alice", "pass1") {
		t.Fatal("Expected login to succeed")
	}
	if s := identity.CurrentSession(); s == nil || s.Name != "alice" {
		t.Errorf("Expected alice's session, got %+v", s)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	identity, store, _ := newTestIdentity(t)
	identity.Register("alice", "pass1")
	identity.Logout()

	if identity.Login("alice", "wrong") {
		t.Error("Expected login with wrong password to fail")
	}
	if identity.CurrentSession() != nil {
		t.Error("Expected no session after failed login")
	}
	if _, ok := store.Raw(domain.KeySession); ok {
		t.Error("Expected no persisted session after failed login")
	}
}

func TestLogin_UnknownName(t *testing.T) {
	identity, _, _ := newTestIdentity(t)

	if identity.Login("nobody", "pass") {
		t.Error("Expected login of unknown name to fail")
	}
}

func TestLogin_FailureKeepsExistingSession(t *testing.T) {
	identity, _, _ := newTestIdentity(t)
	identity.Register("alice", "pass1")

	identity.Login("alice", "nope")

	if s := identity.CurrentSession(); s == nil || s.Name != "alice" {
		t.Errorf("Expected alice's session to survive a failed login, got %+v", s)
	}
}

func TestLogout_ClearsSessionAndResetsLedger(t *testing.T) {
	identity, store, resetter := newTestIdentity(t)
	identity.Register("alice", "pass1")

	identity.Logout()

	if identity.CurrentSession() != nil {
		t.Error("Expected no session after logout")
	}
	if _, ok := store.Raw(domain.KeySession); ok {
		t.Error("Expected session record to be erased")
	}
	if resetter.ResetCount() != 1 {
		t.Errorf("Expected ledger reset once, got %d", resetter.ResetCount())
	}
	if identity.Accounts() != 1 {
		t.Error("Expected accounts to survive logout")
	}
}

func TestLogout_PublishesSessionEndedForSession(t *testing.T) {
	identity, _, _ := newTestIdentity(t)
	publisher := testutil.NewRecordingPublisher()
	identity.SetEventPublisher(publisher)
	identity.Register("alice", "pass1")
	sessionID := identity.CurrentSession().ID

	identity.Logout()

	last, ok := publisher.Last()
	if !ok {
		t.Fatal("Expected an event on logout")
	}
	if last.Type != "session.ended" {
		t.Errorf("Expected session.ended, got %s", last.Type)
	}
	if last.SessionID != sessionID {
		t.Errorf("Expected event for session %s, got %q", sessionID, last.SessionID)
	}
}

func TestLogout_ErasesPersistedLedger(t *testing.T) {
	store := testutil.NewMockKeyValueStore()
	ledger := NewLedgerService(store)
	identity := NewIdentityService(store, ledger, 0)

	identity.Register("alice", "pass1")
	ledger.AddEntry(salary("100"))
	if _, ok := store.Raw(domain.KeyLedger); !ok {
		t.Fatal("Expected ledger record before logout")
	}

	identity.Logout()

	if _, ok := store.Raw(domain.KeyLedger); ok {
		t.Error("Expected ledger record to be erased on logout")
	}
	if len(ledger.State().Entries) != 0 {
		t.Error("Expected in-memory ledger to be empty after logout")
	}
}

func TestNewIdentityService_RestoresSession(t *testing.T) {
	store := testutil.NewMockKeyValueStore()
	store.Seed(domain.KeyAccounts, `[{"id":"u1","name":"alice","password":"pass1"}]`)
	store.Seed(domain.KeySession, `{"id":"u1","name":"alice"}`)

	identity := NewIdentityService(store, nil, 0)

	s := identity.CurrentSession()
	if s == nil || s.ID != "u1" || s.Name != "alice" {
		t.Errorf("Expected restored session, got %+v", s)
	}
	if identity.Accounts() != 1 {
		t.Errorf("Expected 1 restored account, got %d", identity.Accounts())
	}
	if len(identity.RestoreDiagnostics()) != 0 {
		t.Errorf("Expected no diagnostics, got %v", identity.RestoreDiagnostics())
	}
}

func TestNewIdentityService_CorruptRecordsFailClosed(t *testing.T) {
	store := testutil.NewMockKeyValueStore()
	store.Seed(domain.KeyAccounts, `not json`)
	store.Seed(domain.KeySession, `{"name":"ghost"}`)

	identity := NewIdentityService(store, nil, 0)

	if identity.CurrentSession() != nil {
		t.Error("Expected no session from a corrupt record")
	}
	if identity.Accounts() != 0 {
		t.Errorf("Expected no accounts from a corrupt record, got %d", identity.Accounts())
	}
	if len(identity.RestoreDiagnostics()) != 2 {
		t.Errorf("Expected 2 diagnostics, got %v", identity.RestoreDiagnostics())
	}

	// Registration still works afterwards
	if !identity.Register("alice", "pass1") {
		t.Error("Expected registration to succeed after failed restore")
	}
}

func TestCurrentSession_ReturnsCopy(t *testing.T) {
	identity, _, _ := newTestIdentity(t)
	identity.Register("alice", "pass1")

	s := identity.CurrentSession()
	s.Name = "mallory"

	if identity.CurrentSession().Name != "alice" {
		t.Error("Expected CurrentSession to return a copy")
	}
}

func TestLogin_DelayDoesNotBlockSessionReads(t *testing.T) {
	store := testutil.NewMockKeyValueStore()
	identity := NewIdentityService(store, nil, 0)
	identity.Register("alice", "pass1")
	identity.delay = 200 * time.Millisecond

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		identity.Login("alice", "pass1")
	}()

	time.Sleep(20 * time.Millisecond)
	start := time.Now()
	identity.CurrentSession()
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("Expected CurrentSession not to wait for the login delay, took %v", elapsed)
	}
	wg.Wait()
}

func TestRegister_SimulatedDelay(t *testing.T) {
	identity := NewIdentityService(testutil.NewMockKeyValueStore(), nil, 30*time.Millisecond)

	start := time.Now()
	identity.Register("alice", "pass1")
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("Expected register to take at least the configured delay, took %v", elapsed)
	}
}
