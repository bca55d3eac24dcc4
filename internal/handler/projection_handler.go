package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dafibh/kakeibo/kakeibo-backend/internal/domain"
	"github.com/dafibh/kakeibo/kakeibo-backend/internal/projection"
	"github.com/dafibh/kakeibo/kakeibo-backend/internal/service"
	"github.com/dafibh/kakeibo/kakeibo-backend/internal/util"
	"github.com/labstack/echo/v4"
)

// ProjectionHandler handles balance projection HTTP requests
type ProjectionHandler struct {
	projectionService *service.ProjectionService
	now               func() time.Time
}

// NewProjectionHandler creates a new ProjectionHandler
func NewProjectionHandler(projectionService *service.ProjectionService) *ProjectionHandler {
	return &ProjectionHandler{
		projectionService: projectionService,
		now:               time.Now,
	}
}

// ProjectionPointResponse represents a single projected balance
type ProjectionPointResponse struct {
	Label   string `json:"label"`
	Date    string `json:"date"`
	Balance string `json:"balance"`
}

// DailyProjectionResponse represents the sampled daily trajectory
type DailyProjectionResponse struct {
	HorizonDays int                       `json:"horizonDays"`
	SampleEvery int                       `json:"sampleEvery"`
	Points      []ProjectionPointResponse `json:"points"`
}

// MonthProjectionResponse represents the trajectory for the rest of the month
type MonthProjectionResponse struct {
	Points []ProjectionPointResponse `json:"points"`
}

// TotalsResponse represents the monthly aggregates
type TotalsResponse struct {
	MonthlyIncome  string `json:"monthlyIncome"`
	MonthlyExpense string `json:"monthlyExpense"`
	MonthlyNet     string `json:"monthlyNet"`
	CreditCardDebt string `json:"creditCardDebt"`
}

// MonthlyProjectionResponse represents the twelve month trajectory
type MonthlyProjectionResponse struct {
	Points []ProjectionPointResponse `json:"points"`
	Totals TotalsResponse            `json:"totals"`
}

func toPointResponses(points []domain.ProjectionPoint) []ProjectionPointResponse {
	out := make([]ProjectionPointResponse, len(points))
	for i, p := range points {
		out[i] = ProjectionPointResponse{
			Label:   p.Label,
			Date:    p.Date.Format("2006-01-02"),
			Balance: p.Balance.StringFixed(0),
		}
	}
	return out
}

func toTotalsResponse(t domain.Totals) TotalsResponse {
	return TotalsResponse{
		MonthlyIncome:  t.MonthlyIncome.StringFixed(0),
		MonthlyExpense: t.MonthlyExpense.StringFixed(0),
		MonthlyNet:     t.MonthlyNet.StringFixed(0),
		CreditCardDebt: t.CreditCardDebt.StringFixed(0),
	}
}

// parseToday reads the optional date query param, defaulting to the server's local day
func parseToday(c echo.Context, now func() time.Time) (time.Time, bool) {
	dateStr := c.QueryParam("date")
	if dateStr == "" {
		return util.DateOnly(now()), true
	}
	today, err := util.ParseDate(dateStr)
	if err != nil {
		return time.Time{}, false
	}
	return today, true
}

func invalidDate(c echo.Context) error {
	return NewValidationError(c, "Invalid date format", []ValidationError{{Field: "date", Message: "Must be YYYY-MM-DD"}})
}

// parseIntParam reads an optional integer query param within [min, max]
func parseIntParam(c echo.Context, name string, defaultValue, min, max int) (int, *ValidationError) {
	raw := c.QueryParam(name)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ValidationError{Field: name, Message: "Must be a valid integer"}
	}
	if v < min || v > max {
		return 0, &ValidationError{Field: name, Message: "Must be between " + strconv.Itoa(min) + " and " + strconv.Itoa(max)}
	}
	return v, nil
}

// GetDaily returns the sampled daily trajectory
// @Summary Daily balance projection
// @Description Simulates the balance day by day and samples every N days
// @Tags projections
// @Produce json
// @Param horizon query int false "Days to simulate (1-366)" default(90)
// @Param sample query int false "Record every N days (1-horizon)" default(10)
// @Param date query string false "Start date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} DailyProjectionResponse
// @Failure 400 {object} ProblemDetails
// @Failure 502 {object} ProblemDetails
// @Router /projections/daily [get]
func (h *ProjectionHandler) GetDaily(c echo.Context) error {
	horizon, verr := parseIntParam(c, "horizon", projection.DefaultHorizonDays, 1, projection.MaxHorizonDays)
	if verr != nil {
		return NewValidationError(c, "Invalid horizon", []ValidationError{*verr})
	}
	sample, verr := parseIntParam(c, "sample", projection.DefaultSampleEvery, 1, horizon)
	if verr != nil {
		return NewValidationError(c, "Invalid sample interval", []ValidationError{*verr})
	}
	today, ok := parseToday(c, h.now)
	if !ok {
		return invalidDate(c)
	}

	points, err := h.projectionService.Daily(c.Request().Context(), today, horizon, sample)
	if err != nil {
		return respondServiceError(c, err, "Failed to project daily balance")
	}

	return c.JSON(http.StatusOK, DailyProjectionResponse{
		HorizonDays: horizon,
		SampleEvery: sample,
		Points:      toPointResponses(points),
	})
}

// GetMonth returns the daily trajectory for the rest of the month
// @Summary Rest-of-month balance projection
// @Tags projections
// @Produce json
// @Param date query string false "Start date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} MonthProjectionResponse
// @Failure 400 {object} ProblemDetails
// @Failure 502 {object} ProblemDetails
// @Router /projections/month [get]
func (h *ProjectionHandler) GetMonth(c echo.Context) error {
	today, ok := parseToday(c, h.now)
	if !ok {
		return invalidDate(c)
	}

	points, err := h.projectionService.Month(c.Request().Context(), today)
	if err != nil {
		return respondServiceError(c, err, "Failed to project month balance")
	}

	return c.JSON(http.StatusOK, MonthProjectionResponse{Points: toPointResponses(points)})
}

// GetMonthly returns the twelve month trajectory
// @Summary Monthly balance projection
// @Description Twelve points labeled YYYY-MM, dated the first of each month starting with the current one. The first point is the current balance unchanged; each later point adds the recurring monthly net
// @Tags projections
// @Produce json
// @Param date query string false "Start date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} MonthlyProjectionResponse
// @Failure 400 {object} ProblemDetails
// @Failure 502 {object} ProblemDetails
// @Router /projections/monthly [get]
func (h *ProjectionHandler) GetMonthly(c echo.Context) error {
	today, ok := parseToday(c, h.now)
	if !ok {
		return invalidDate(c)
	}

	result, err := h.projectionService.Monthly(c.Request().Context(), today)
	if err != nil {
		return respondServiceError(c, err, "Failed to project monthly balance")
	}

	return c.JSON(http.StatusOK, MonthlyProjectionResponse{
		Points: toPointResponses(result.Points),
		Totals: toTotalsResponse(result.Totals),
	})
}
