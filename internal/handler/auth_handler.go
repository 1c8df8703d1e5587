package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dafibh/economize/economize-backend/internal/domain"
	"github.com/dafibh/economize/economize-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles registration, login and the current session
type AuthHandler struct {
	identityService *service.IdentityService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(identityService *service.IdentityService) *AuthHandler {
	return &AuthHandler{
		identityService: identityService,
	}
}

// CredentialsRequest represents the register and login request body
type CredentialsRequest struct {
	Name     string `json:"name" example:"alice"`
	Password string `json:"password" example:"s3cret"`
}

// SessionResponse represents the active session in API responses
type SessionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func validateCredentials(req CredentialsRequest) []ValidationError {
	var errs []ValidationError
	if strings.TrimSpace(req.Name) == "" {
		errs = append(errs, ValidationError{Field: "name", Message: "Name is required"})
	}
	if req.Password == "" {
		errs = append(errs, ValidationError{Field: "password", Message: "Password is required"})
	} else if len(req.Password) < domain.MinPasswordLength {
		errs = append(errs, ValidationError{Field: "password", Message: fmt.Sprintf("Password must be at least %d characters", domain.MinPasswordLength)})
	}
	return errs
}

func toSessionResponse(session *domain.Session) SessionResponse {
	return SessionResponse{ID: session.ID, Name: session.Name}
}

// Register godoc
// @Summary Register an account
// @Description Create an account and start a session for it
// @Tags auth
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Account credentials"
// @Success 201 {object} SessionResponse
// @Failure 400 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Failure 429 {object} ProblemDetails
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if errs := validateCredentials(req); len(errs) > 0 {
		return NewValidationError(c, "Validation failed", errs)
	}

	if !h.identityService.Register(req.Name, req.Password) {
		return NewConflictError(c, "An account with this name already exists")
	}

	session := h.identityService.CurrentSession()
	if session == nil {
		log.Error().Str("name", req.Name).Msg("Session missing right after registration")
		return NewInternalError(c, "Failed to start session")
	}

	return c.JSON(http.StatusCreated, toSessionResponse(session))
}

// Login godoc
// @Summary Log in
// @Description Start a session for an existing account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Account credentials"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 429 {object} ProblemDetails
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if errs := validateCredentials(req); len(errs) > 0 {
		return NewValidationError(c, "Validation failed", errs)
	}

	if !h.identityService.Login(req.Name, req.Password) {
		return NewUnauthorizedError(c, "Invalid name or password")
	}

	session := h.identityService.CurrentSession()
	if session == nil {
		log.Error().Str("name", req.Name).Msg("Session missing right after login")
		return NewInternalError(c, "Failed to start session")
	}

	return c.JSON(http.StatusOK, toSessionResponse(session))
}

// Logout godoc
// @Summary Log out
// @Description End the session and clear the financial data
// @Tags auth
// @Success 204
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.identityService.Logout()
	return c.NoContent(http.StatusNoContent)
}

// Session godoc
// @Summary Current session
// @Tags auth
// @Produce json
// @Success 200 {object} SessionResponse
// @Failure 401 {object} ProblemDetails
// @Router /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	session := h.identityService.CurrentSession()
	if session == nil {
		return NewUnauthorizedError(c, "No active session")
	}
	return c.JSON(http.StatusOK, toSessionResponse(session))
}
