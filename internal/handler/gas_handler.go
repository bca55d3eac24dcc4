package handler

import (
	"errors"
	"net/http"

	"github.com/dafibh/kakeibo/kakeibo-backend/internal/domain"
	"github.com/dafibh/kakeibo/kakeibo-backend/internal/repository/sheets"
	"github.com/dafibh/kakeibo/kakeibo-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// GASHandler serves the spreadsheet wire format at /api/gas so that clients
// written against the Apps Script proxy keep working with any store backend
type GASHandler struct {
	stateService *service.StateService
}

// NewGASHandler creates a new GASHandler
func NewGASHandler(stateService *service.StateService) *GASHandler {
	return &GASHandler{
		stateService: stateService,
	}
}

// gasErrorResponse is the proxy's error envelope
type gasErrorResponse struct {
	Error string `json:"error"`
}

// GetState returns the state in the spreadsheet wire format
func (h *GASHandler) GetState(c echo.Context) error {
	state, err := h.stateService.GetState(c.Request().Context())
	if err != nil {
		log.Error().Err(err).Msg("Legacy proxy read failed")
		return c.JSON(http.StatusInternalServerError, gasErrorResponse{Error: "Failed to fetch data: " + err.Error()})
	}
	return c.JSON(http.StatusOK, sheets.FromDomain(state))
}

// UpdateState applies a wire-format patch and returns the new state
func (h *GASHandler) UpdateState(c echo.Context) error {
	var wire sheets.Patch
	if err := c.Echo().JSONSerializer.Deserialize(c, &wire); err != nil {
		return c.JSON(http.StatusBadRequest, gasErrorResponse{Error: "Invalid request body"})
	}

	state, err := h.stateService.UpdateState(c.Request().Context(), wire.ToDomain())
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return c.JSON(http.StatusBadRequest, gasErrorResponse{Error: err.Error()})
		}
		log.Error().Err(err).Msg("Legacy proxy update failed")
		return c.JSON(http.StatusInternalServerError, gasErrorResponse{Error: "Failed to update data: " + err.Error()})
	}
	return c.JSON(http.StatusOK, sheets.FromDomain(state))
}
