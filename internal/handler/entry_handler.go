package handler

import (
	"net/http"
	"time"

	"github.com/dafibh/economize/economize-backend/internal/domain"
	"github.com/dafibh/economize/economize-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// EntryHandler handles income entry HTTP requests
type EntryHandler struct {
	ledgerService *service.LedgerService
	now           func() time.Time
}

// NewEntryHandler creates a new EntryHandler
func NewEntryHandler(ledgerService *service.LedgerService) *EntryHandler {
	return &EntryHandler{
		ledgerService: ledgerService,
		now:           time.Now,
	}
}

// CreateEntry godoc
// @Summary Create an entry
// @Description Record income; the amount is credited to the balance
// @Tags entries
// @Accept json
// @Produce json
// @Param request body EntryRequest true "Entry"
// @Success 201 {object} domain.Entry
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /entries [post]
func (h *EntryHandler) CreateEntry(c echo.Context) error {
	var req EntryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, errs := req.toInput(h.now())
	if len(errs) > 0 {
		return NewValidationError(c, "Validation failed", errs)
	}

	entry := h.ledgerService.AddEntry(input)
	log.Info().Str("entry_id", entry.ID).Str("amount", entry.Amount.String()).Msg("Entry created")

	return c.JSON(http.StatusCreated, entry)
}

// UpdateEntry godoc
// @Summary Update an entry
// @Description Replace an entry; the balance moves by the amount difference
// @Tags entries
// @Accept json
// @Produce json
// @Param id path string true "Entry ID"
// @Param request body EntryRequest true "Entry"
// @Success 200 {object} domain.Entry
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /entries/{id} [put]
func (h *EntryHandler) UpdateEntry(c echo.Context) error {
	id := c.Param("id")

	var req EntryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, errs := req.toInput(h.now())
	if len(errs) > 0 {
		return NewValidationError(c, "Validation failed", errs)
	}

	if !h.ledgerService.UpdateEntry(id, input) {
		return NewNotFoundError(c, "Entry not found")
	}

	return c.JSON(http.StatusOK, domain.Entry{
		ID:          id,
		Description: input.Description,
		Amount:      input.Amount,
		Date:        input.Date,
		Recurring:   input.Recurring,
		Category:    input.Category,
	})
}

// DeleteEntry godoc
// @Summary Delete an entry
// @Description Remove an entry; its amount is debited from the balance
// @Tags entries
// @Param id path string true "Entry ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /entries/{id} [delete]
func (h *EntryHandler) DeleteEntry(c echo.Context) error {
	if !h.ledgerService.DeleteEntry(c.Param("id")) {
		return NewNotFoundError(c, "Entry not found")
	}
	return c.NoContent(http.StatusNoContent)
}
