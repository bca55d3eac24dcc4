package domain

import "github.com/shopspring/decimal"

// UtilizationLevel buckets a card's utilization percentage
type UtilizationLevel string

const (
	UtilizationLow    UtilizationLevel = "low"
	UtilizationMedium UtilizationLevel = "medium"
	UtilizationHigh   UtilizationLevel = "high"
)

// PaymentUrgency buckets the days left until a card payment
type PaymentUrgency string

const (
	PaymentUrgent PaymentUrgency = "urgent"
	PaymentSoon   PaymentUrgency = "soon"
	PaymentOK     PaymentUrgency = "ok"
)

// CardStatus is the derived display state of a single credit card
type CardStatus struct {
	Card               CreditCard       `json:"card"`
	UtilizationPercent decimal.Decimal  `json:"utilizationPercent"`
	UtilizationLevel   UtilizationLevel `json:"utilizationLevel"`
	DaysUntilPayment   int              `json:"daysUntilPayment"`
	PaymentUrgency     PaymentUrgency   `json:"paymentUrgency"`
}

// FinancialSummary contains the headline numbers for the current month
type FinancialSummary struct {
	CurrentBalance  decimal.Decimal `json:"currentBalance"`
	MonthlyIncome   decimal.Decimal `json:"monthlyIncome"`
	MonthlyExpenses decimal.Decimal `json:"monthlyExpenses"`
	MonthlySavings  decimal.Decimal `json:"monthlySavings"`
	CreditCardDebt  decimal.Decimal `json:"creditCardDebt"`
	DaysLeft        int             `json:"daysLeft"`
	Cards           []CardStatus    `json:"cards"`
}
