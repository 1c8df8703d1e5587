package middleware

import (
	"context"

	"github.com/dafibh/economize/economize-backend/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

// SessionKey is the context key for the active session
const SessionKey contextKey = "session"

// SessionProvider exposes the active session
type SessionProvider interface {
	CurrentSession() *domain.Session
}

// RequireSession rejects requests made while nobody is logged in and
// stores the session in the request context otherwise
func RequireSession(provider SessionProvider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session := provider.CurrentSession()
			if session == nil {
				log.Debug().Str("path", c.Request().URL.Path).Msg("Request rejected: no active session")
				return unauthorizedError(c, "Log in to access this resource")
			}

			ctx := context.WithValue(c.Request().Context(), SessionKey, *session)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// GetSession extracts the session stored by RequireSession
func GetSession(c echo.Context) (domain.Session, bool) {
	session, ok := c.Request().Context().Value(SessionKey).(domain.Session)
	return session, ok
}
