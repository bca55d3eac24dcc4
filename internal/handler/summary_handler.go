package handler

import (
	"net/http"
	"time"

	"github.com/dafibh/kakeibo/kakeibo-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// SummaryHandler handles financial summary HTTP requests
type SummaryHandler struct {
	dashboardService *service.DashboardService
	now              func() time.Time
}

// NewSummaryHandler creates a new SummaryHandler
func NewSummaryHandler(dashboardService *service.DashboardService) *SummaryHandler {
	return &SummaryHandler{
		dashboardService: dashboardService,
		now:              time.Now,
	}
}

// CardStatusResponse represents a credit card with its derived status
type CardStatusResponse struct {
	CreditCardResponse
	UtilizationPercent string `json:"utilizationPercent"`
	UtilizationLevel   string `json:"utilizationLevel"`
	DaysUntilPayment   int    `json:"daysUntilPayment"`
	PaymentUrgency     string `json:"paymentUrgency"`
}

// SummaryResponse represents the financial summary API response
type SummaryResponse struct {
	CurrentBalance  string               `json:"currentBalance"`
	MonthlyIncome   string               `json:"monthlyIncome"`
	MonthlyExpenses string               `json:"monthlyExpenses"`
	MonthlySavings  string               `json:"monthlySavings"`
	CreditCardDebt  string               `json:"creditCardDebt"`
	DaysLeft        int                  `json:"daysLeft"`
	Cards           []CardStatusResponse `json:"cards"`
}

// GetSummary returns the headline numbers for the current month
// @Summary Financial summary
// @Description Monthly income, expenses, savings, card debt and per-card status
// @Tags summary
// @Produce json
// @Param date query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} SummaryResponse
// @Failure 400 {object} ProblemDetails
// @Failure 502 {object} ProblemDetails
// @Router /summary [get]
func (h *SummaryHandler) GetSummary(c echo.Context) error {
	today, ok := parseToday(c, h.now)
	if !ok {
		return invalidDate(c)
	}

	summary, err := h.dashboardService.GetSummary(c.Request().Context(), today)
	if err != nil {
		return respondServiceError(c, err, "Failed to get financial summary")
	}

	cards := make([]CardStatusResponse, len(summary.Cards))
	for i, cs := range summary.Cards {
		cards[i] = CardStatusResponse{
			CreditCardResponse: CreditCardResponse{
				ID:             cs.Card.ID,
				Name:           cs.Card.Name,
				CreditLimit:    cs.Card.CreditLimit.StringFixed(0),
				AnchorDay:      cs.Card.AnchorDay,
				CurrentBalance: cs.Card.CurrentBalance.StringFixed(0),
			},
			UtilizationPercent: cs.UtilizationPercent.StringFixed(1),
			UtilizationLevel:   string(cs.UtilizationLevel),
			DaysUntilPayment:   cs.DaysUntilPayment,
			PaymentUrgency:     string(cs.PaymentUrgency),
		}
	}

	return c.JSON(http.StatusOK, SummaryResponse{
		CurrentBalance:  summary.CurrentBalance.StringFixed(0),
		MonthlyIncome:   summary.MonthlyIncome.StringFixed(0),
		MonthlyExpenses: summary.MonthlyExpenses.StringFixed(0),
		MonthlySavings:  summary.MonthlySavings.StringFixed(0),
		CreditCardDebt:  summary.CreditCardDebt.StringFixed(0),
		DaysLeft:        summary.DaysLeft,
		Cards:           cards,
	})
}
