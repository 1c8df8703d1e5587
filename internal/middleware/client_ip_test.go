package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newLimitedServer(t *testing.T, trustedProxies []string) *echo.Echo {
	t.Helper()
	extractor, err := IPExtractor(trustedProxies)
	if err != nil {
		t.Fatalf("Expected valid proxies, got %v", err)
	}

	rl := NewRateLimiterWithConfig(1, 1)
	t.Cleanup(rl.Stop)

	e := echo.New()
	e.IPExtractor = extractor
	e.POST("/login", func(c echo.Context) error {
		return c.String(http.StatusOK, c.RealIP())
	}, RateLimitMiddleware(rl))
	return e
}

func postLogin(e *echo.Echo, remoteAddr, forwardedFor string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = remoteAddr
	if forwardedFor != "" {
		req.Header.Set(echo.HeaderXForwardedFor, forwardedFor)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRateLimitMiddleware_IgnoresSpoofedForwardedFor(t *testing.T) {
	e := newLimitedServer(t, nil)

	allowed := 0
	for i := 0; i < 20; i++ {
		rec := postLogin(e, "203.0.113.7:50000", fmt.Sprintf("10.0.0.%d", i))
		if rec.Code == http.StatusOK {
			allowed++
			if rec.Body.String() != "203.0.113.7" {
				t.Errorf("Expected the peer address as client IP, got %q", rec.Body.String())
			}
		}
	}

	if allowed != 1 {
		t.Errorf("Expected 1 request allowed from one peer, got %d", allowed)
	}
}

func TestRateLimitMiddleware_TrustedProxyForwardsClientIP(t *testing.T) {
	e := newLimitedServer(t, []string{"198.51.100.0/24"})

	for i := 0; i < 3; i++ {
		rec := postLogin(e, "198.51.100.1:443", fmt.Sprintf("203.0.113.%d", i+1))
		if rec.Code != http.StatusOK {
			t.Errorf("Client %d behind the proxy: expected 200, got %d", i+1, rec.Code)
		}
	}

	// Same forwarded client again is limited
	if rec := postLogin(e, "198.51.100.1:443", "203.0.113.1"); rec.Code != http.StatusTooManyRequests {
		t.Errorf("Expected 429 for a repeated forwarded client, got %d", rec.Code)
	}
}

func TestRateLimitMiddleware_UntrustedPeerCannotForward(t *testing.T) {
	e := newLimitedServer(t, []string{"198.51.100.1"})

	if rec := postLogin(e, "192.0.2.50:1000", "203.0.113.1"); rec.Code != http.StatusOK {
		t.Fatalf("Expected first request to pass, got %d", rec.Code)
	}
	if rec := postLogin(e, "192.0.2.50:1000", "203.0.113.2"); rec.Code != http.StatusTooManyRequests {
		t.Errorf("Expected header from an untrusted peer to be ignored, got %d", rec.Code)
	}
}

func TestIPExtractor_InvalidProxy(t *testing.T) {
	if _, err := IPExtractor([]string{"not-an-ip"}); err == nil {
		t.Error("Expected an error for an invalid proxy")
	}
}
