package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectionPoint is one labeled balance in a projected trajectory
type ProjectionPoint struct {
	Label   string          `json:"label"`
	Date    time.Time       `json:"date"`
	Balance decimal.Decimal `json:"balance"`
}

// Totals holds the monthly aggregates of recurring items
type Totals struct {
	MonthlyIncome  decimal.Decimal `json:"monthlyIncome"`
	MonthlyExpense decimal.Decimal `json:"monthlyExpense"`
	MonthlyNet     decimal.Decimal `json:"monthlyNet"`
	CreditCardDebt decimal.Decimal `json:"creditCardDebt"`
}
