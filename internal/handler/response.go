package handler

import (
	"errors"
	"net/http"

	"github.com/dafibh/kakeibo/kakeibo-backend/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error types
const (
	ErrorTypeValidation  = "https://kakeibo.app/errors/validation"
	ErrorTypeNotFound    = "https://kakeibo.app/errors/not-found"
	ErrorTypeUpstream    = "https://kakeibo.app/errors/upstream"
	ErrorTypeUnavailable = "https://kakeibo.app/errors/unavailable"
	ErrorTypeInternal    = "https://kakeibo.app/errors/internal"
)

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, detail string, errors []ValidationError) error {
	return c.JSON(http.StatusBadRequest, ProblemDetails{
		Type:     ErrorTypeValidation,
		Title:    "Validation Error",
		Status:   http.StatusBadRequest,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errors,
	})
}

// NewNotFoundError creates a not found error response
func NewNotFoundError(c echo.Context, detail string) error {
	return c.JSON(http.StatusNotFound, ProblemDetails{
		Type:     ErrorTypeNotFound,
		Title:    "Not Found",
		Status:   http.StatusNotFound,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewBadGatewayError creates an error response for a failing state store
func NewBadGatewayError(c echo.Context, detail string) error {
	return c.JSON(http.StatusBadGateway, ProblemDetails{
		Type:     ErrorTypeUpstream,
		Title:    "Bad Gateway",
		Status:   http.StatusBadGateway,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewServiceUnavailableError creates an error response for a disabled feature
func NewServiceUnavailableError(c echo.Context, detail string) error {
	return c.JSON(http.StatusServiceUnavailable, ProblemDetails{
		Type:     ErrorTypeUnavailable,
		Title:    "Service Unavailable",
		Status:   http.StatusServiceUnavailable,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewInternalError creates an internal error response
func NewInternalError(c echo.Context, detail string) error {
	return c.JSON(http.StatusInternalServerError, ProblemDetails{
		Type:     ErrorTypeInternal,
		Title:    "Internal Server Error",
		Status:   http.StatusInternalServerError,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// respondServiceError maps a service error onto a Problem Details response
func respondServiceError(c echo.Context, err error, action string) error {
	var fieldErrors domain.ValidationErrors
	switch {
	case errors.As(err, &fieldErrors):
		out := make([]ValidationError, len(fieldErrors))
		for i, fe := range fieldErrors {
			out[i] = ValidationError{Field: fe.Field, Message: fe.Message}
		}
		return NewValidationError(c, "Invalid budget state", out)
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidInput):
		return NewValidationError(c, err.Error(), nil)
	case errors.Is(err, domain.ErrNotFound):
		return NewNotFoundError(c, err.Error())
	case errors.Is(err, domain.ErrFetch):
		log.Error().Err(err).Msg(action)
		return NewBadGatewayError(c, domain.ErrFetch.Error())
	case errors.Is(err, domain.ErrBackupDisabled):
		return NewServiceUnavailableError(c, err.Error())
	default:
		log.Error().Err(err).Msg(action)
		return NewInternalError(c, action)
	}
}
