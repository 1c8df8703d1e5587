package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dafibh/economize/economize-backend/internal/middleware"
	"github.com/dafibh/economize/economize-backend/internal/service"
	"github.com/dafibh/economize/economize-backend/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// testClock is the fixed "now" used by handlers and metrics in tests
var testClock = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

type testServer struct {
	e         *echo.Echo
	store     *testutil.MockKeyValueStore
	publisher *testutil.RecordingPublisher
	ledger    *service.LedgerService
	identity  *service.IdentityService
	metrics   *service.MetricsService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWithLimiter(t, middleware.NewRateLimiterWithConfig(600, 100))
}

func newTestServerWithLimiter(t *testing.T, rl *middleware.RateLimiter) *testServer {
	t.Helper()
	t.Cleanup(rl.Stop)

	store := testutil.NewMockKeyValueStore()
	publisher := testutil.NewRecordingPublisher()

	ledger := service.NewLedgerService(store)
	ledger.SetEventPublisher(publisher)
	identity := service.NewIdentityService(store, ledger, 0)
	identity.SetEventPublisher(publisher)
	metrics := service.NewMetricsService(ledger, dec("800"))
	metrics.SetClock(func() time.Time { return testClock })

	entries := NewEntryHandler(ledger)
	entries.now = func() time.Time { return testClock }
	daily := NewDailyExpenseHandler(ledger, metrics)
	daily.now = func() time.Time { return testClock }

	e := echo.New()
	e.IPExtractor = echo.ExtractIPDirect()
	RegisterRoutes(e, identity, rl, Handlers{
		Auth:          NewAuthHandler(identity),
		Ledger:        NewLedgerHandler(ledger),
		Entries:       entries,
		FixedExpenses: NewFixedExpenseHandler(ledger),
		DailyExpenses: daily,
		EmergencyFund: NewEmergencyFundHandler(ledger, metrics),
		Dashboard:     NewDashboardHandler(metrics),
	})

	return &testServer{
		e:         e,
		store:     store,
		publisher: publisher,
		ledger:    ledger,
		identity:  identity,
		metrics:   metrics,
	}
}

// do sends a request through the full router, middleware included
func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

// login registers and logs in a default account
func (s *testServer) login(t *testing.T) {
	t.Helper()
	if !s.identity.Register("alice", "pass1") {
		t.Fatal("Failed to register test account")
	}
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("Failed to unmarshal response %q: %v", rec.Body.String(), err)
	}
	return v
}

func fieldsOf(problem ProblemDetails) []string {
	fields := make([]string, len(problem.Errors))
	for i, e := range problem.Errors {
		fields[i] = e.Field
	}
	return fields
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
