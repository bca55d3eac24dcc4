package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSummary_Success(t *testing.T) {
	s := newTestServer()

	rec := s.do(http.MethodGet, "/api/v1/summary", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp SummaryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "100000", resp.CurrentBalance)
	assert.Equal(t, "280000", resp.MonthlyIncome)
	assert.Equal(t, "80000", resp.MonthlyExpenses)
	assert.Equal(t, "200000", resp.MonthlySavings)
	assert.Equal(t, "50000", resp.CreditCardDebt)
	assert.Equal(t, 20, resp.DaysLeft)

	require.Len(t, resp.Cards, 1)
	card := resp.Cards[0]
	assert.Equal(t, "c1", card.ID)
	assert.Equal(t, "25.0", card.UtilizationPercent)
	assert.Equal(t, "low", card.UtilizationLevel)
	assert.Equal(t, 5, card.DaysUntilPayment)
	assert.Equal(t, "soon", card.PaymentUrgency)
}

func TestGetSummary_PaymentWrapsIntoNextMonth(t *testing.T) {
	s := newTestServer()

	rec := s.do(http.MethodGet, "/api/v1/summary?date=2026-04-20", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp SummaryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Len(t, resp.Cards, 1)
	assert.Equal(t, 25, resp.Cards[0].DaysUntilPayment)
	assert.Equal(t, "ok", resp.Cards[0].PaymentUrgency)
	assert.Equal(t, 10, resp.DaysLeft)
}

func TestGetSummary_InvalidDate(t *testing.T) {
	s := newTestServer()

	rec := s.do(http.MethodGet, "/api/v1/summary?date=tomorrow", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
