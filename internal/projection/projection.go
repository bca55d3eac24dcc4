// Package projection turns a budget snapshot into projected balance trajectories.
//
// Every function here is pure: inputs are never mutated, nothing is cached,
// and the same snapshot and reference date always yield the same points.
// Calls may run concurrently without coordination.
package projection

import (
	"fmt"
	"time"

	"github.com/dafibh/kakeibo/kakeibo-backend/internal/domain"
	"github.com/dafibh/kakeibo/kakeibo-backend/internal/util"
	"github.com/shopspring/decimal"
)

const (
	// DefaultHorizonDays is the long-range daily view length
	DefaultHorizonDays = 90
	// DefaultSampleEvery is the sampling stride of the long-range daily view
	DefaultSampleEvery = 10
	// MaxHorizonDays bounds the daily view accepted from callers
	MaxHorizonDays = 366
	// MonthlyPoints is the fixed length of the monthly trajectory
	MonthlyPoints = 12
)

// ProjectDaily simulates the balance one calendar day at a time starting at today.
//
// The first point is the seed: state.CurrentBalance unmodified, labeled with today.
// Today's own events are considered already reflected in the current balance.
// Every later day i applies that day's recurring incomes, then recurring expenses,
// then credit card payments. A point is emitted for every sampleEvery-th day and
// for the final day of the horizon.
//
// Non-positive horizonDays and sampleEvery fall back to DefaultHorizonDays and
// DefaultSampleEvery.
func ProjectDaily(state *domain.BudgetState, today time.Time, horizonDays, sampleEvery int) []domain.ProjectionPoint {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	if sampleEvery <= 0 {
		sampleEvery = DefaultSampleEvery
	}
	return simulate(state, util.DateOnly(today), horizonDays, sampleEvery, shortDateLabel)
}

// ProjectMonth is the day-by-day view from today through the last day of the
// current month. It returns daysInMonth - dayOfMonth + 1 points.
func ProjectMonth(state *domain.BudgetState, today time.Time) []domain.ProjectionPoint {
	start := util.DateOnly(today)
	days := util.DaysInMonth(start) - start.Day() + 1
	return simulate(state, start, days, 1, dayOfMonthLabel)
}

// ProjectMonthly is the coarse twelve month view. It ignores anchor days and
// credit card payments: each month after the first adds MonthlyNet.
func ProjectMonthly(state *domain.BudgetState, today time.Time) []domain.ProjectionPoint {
	if state == nil {
		state = domain.NewBudgetState()
	}
	totals := ComputeTotals(state)
	first := util.FirstOfMonth(today)

	points := make([]domain.ProjectionPoint, 0, MonthlyPoints)
	balance := state.CurrentBalance
	for i := 0; i < MonthlyPoints; i++ {
		if i > 0 {
			balance = balance.Add(totals.MonthlyNet)
		}
		month := first.AddDate(0, i, 0)
		points = append(points, domain.ProjectionPoint{
			Label:   month.Format("2006-01"),
			Date:    month,
			Balance: balance,
		})
	}
	return points
}

func simulate(state *domain.BudgetState, start time.Time, days, every int, label func(time.Time) string) []domain.ProjectionPoint {
	if state == nil {
		state = domain.NewBudgetState()
	}

	points := make([]domain.ProjectionPoint, 0, days/every+2)
	balance := state.CurrentBalance
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)
		if i > 0 {
			balance = applyDay(state, balance, date.Day())
		}
		if i%every == 0 || i == days-1 {
			points = append(points, domain.ProjectionPoint{
				Label:   label(date),
				Date:    date,
				Balance: balance,
			})
		}
	}
	return points
}

// applyDay applies every event anchored on dom. An anchor only fires on an
// exact match, so day 31 never fires in a 30 day month.
func applyDay(state *domain.BudgetState, balance decimal.Decimal, dom int) decimal.Decimal {
	for _, income := range state.Incomes {
		if income.IsRecurring && income.AnchorDay == dom {
			balance = balance.Add(income.Amount)
		}
	}
	for _, expense := range state.Expenses {
		if expense.IsRecurring && expense.AnchorDay == dom {
			balance = balance.Sub(expense.Amount)
		}
	}
	for _, card := range state.CreditCards {
		if card.AnchorDay == dom {
			balance = balance.Sub(card.CurrentBalance)
		}
	}
	return balance
}

func shortDateLabel(t time.Time) string {
	return fmt.Sprintf("%d/%d", int(t.Month()), t.Day())
}

func dayOfMonthLabel(t time.Time) string {
	return fmt.Sprintf("%d日", t.Day())
}
