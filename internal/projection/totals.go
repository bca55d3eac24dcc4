package projection

import (
	"time"

	"github.com/dafibh/kakeibo/kakeibo-backend/internal/domain"
	"github.com/dafibh/kakeibo/kakeibo-backend/internal/util"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ComputeTotals sums the recurring incomes and expenses and the outstanding card balances
func ComputeTotals(state *domain.BudgetState) domain.Totals {
	totals := domain.Totals{
		MonthlyIncome:  decimal.Zero,
		MonthlyExpense: decimal.Zero,
		CreditCardDebt: decimal.Zero,
	}
	if state == nil {
		totals.MonthlyNet = decimal.Zero
		return totals
	}

	for _, income := range state.Incomes {
		if income.IsRecurring {
			totals.MonthlyIncome = totals.MonthlyIncome.Add(income.Amount)
		}
	}
	for _, expense := range state.Expenses {
		if expense.IsRecurring {
			totals.MonthlyExpense = totals.MonthlyExpense.Add(expense.Amount)
		}
	}
	for _, card := range state.CreditCards {
		totals.CreditCardDebt = totals.CreditCardDebt.Add(card.CurrentBalance)
	}
	totals.MonthlyNet = totals.MonthlyIncome.Sub(totals.MonthlyExpense)
	return totals
}

// Utilization returns the card's balance as a percentage of its limit,
// rounded to two places. A card without a positive limit is 0% utilized.
func Utilization(card domain.CreditCard) decimal.Decimal {
	return utilizationRaw(card).Round(2)
}

// utilizationRaw is the unrounded percentage; levels are bucketed on it
func utilizationRaw(card domain.CreditCard) decimal.Decimal {
	if !card.CreditLimit.IsPositive() {
		return decimal.Zero
	}
	return card.CurrentBalance.Div(card.CreditLimit).Mul(hundred)
}

// LevelFor buckets a utilization percentage. Pass the unrounded value,
// since rounding can move a card across the 50 or 80 threshold.
func LevelFor(percent decimal.Decimal) domain.UtilizationLevel {
	switch {
	case percent.GreaterThan(decimal.NewFromInt(80)):
		return domain.UtilizationHigh
	case percent.GreaterThan(decimal.NewFromInt(50)):
		return domain.UtilizationMedium
	default:
		return domain.UtilizationLow
	}
}

// UrgencyFor buckets the days left until a card payment
func UrgencyFor(days int) domain.PaymentUrgency {
	switch {
	case days <= 3:
		return domain.PaymentUrgent
	case days <= 7:
		return domain.PaymentSoon
	default:
		return domain.PaymentOK
	}
}

// Summarize builds the headline numbers for the month containing today
func Summarize(state *domain.BudgetState, today time.Time) *domain.FinancialSummary {
	if state == nil {
		state = domain.NewBudgetState()
	}
	totals := ComputeTotals(state)

	cards := make([]domain.CardStatus, 0, len(state.CreditCards))
	for _, card := range state.CreditCards {
		raw := utilizationRaw(card)
		days := util.DaysUntilAnchor(today.Day(), card.AnchorDay)
		cards = append(cards, domain.CardStatus{
			Card:               card,
			UtilizationPercent: raw.Round(2),
			UtilizationLevel:   LevelFor(raw),
			DaysUntilPayment:   days,
			PaymentUrgency:     UrgencyFor(days),
		})
	}

	return &domain.FinancialSummary{
		CurrentBalance:  state.CurrentBalance,
		MonthlyIncome:   totals.MonthlyIncome,
		MonthlyExpenses: totals.MonthlyExpense,
		MonthlySavings:  totals.MonthlyNet,
		CreditCardDebt:  totals.CreditCardDebt,
		DaysLeft:        util.DaysLeftInMonth(today),
		Cards:           cards,
	}
}
