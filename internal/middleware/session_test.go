package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dafibh/economize/economize-backend/internal/domain"
	"github.com/labstack/echo/v4"
)

type stubSessionProvider struct {
	session *domain.Session
}

func (s stubSessionProvider) CurrentSession() *domain.Session {
	return s.session
}

func TestRequireSession_NoSession(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/entries", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	}

	if err := RequireSession(stubSessionProvider{})(handler)(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if called {
		t.Error("Handler should not run without a session")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}

	var problem problemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Expected problem details JSON, got %v", err)
	}
	if problem.Type != errorTypeUnauthorized || problem.Instance != "/api/v1/entries" {
		t.Errorf("Unexpected problem details %+v", problem)
	}
}

func TestRequireSession_StoresSession(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/entries", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	provider := stubSessionProvider{session: &domain.Session{ID: "u1", Name: "alice"}}

	var got domain.Session
	var ok bool
	handler := func(c echo.Context) error {
		got, ok = GetSession(c)
		return c.NoContent(http.StatusOK)
	}

	if err := RequireSession(provider)(handler)(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
	if !ok || got.ID != "u1" || got.Name != "alice" {
		t.Errorf("Expected session in context, got %+v (ok=%v)", got, ok)
	}
}

func TestGetSession_Missing(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	if _, ok := GetSession(c); ok {
		t.Error("Expected no session in a bare context")
	}
}
