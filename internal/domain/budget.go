package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// Income is money received every month on AnchorDay when IsRecurring is set
type Income struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	AnchorDay   int             `json:"anchorDay"`
	IsRecurring bool            `json:"isRecurring"`
}

// Expense is money paid every month on AnchorDay when IsRecurring is set
type Expense struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	AnchorDay   int             `json:"anchorDay"`
	IsRecurring bool            `json:"isRecurring"`
}

// CreditCard is a card whose CurrentBalance is settled on AnchorDay every month
type CreditCard struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	CreditLimit    decimal.Decimal `json:"creditLimit"`
	AnchorDay      int             `json:"anchorDay"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
}

// BudgetState is the whole household snapshot
type BudgetState struct {
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	CreditCards    []CreditCard    `json:"creditCards"`
	Expenses       []Expense       `json:"expenses"`
	Incomes        []Income        `json:"incomes"`
}

// StatePatch is a partial update. Nil fields are left untouched,
// present lists replace the stored list.
type StatePatch struct {
	CurrentBalance *decimal.Decimal `json:"currentBalance,omitempty"`
	CreditCards    *[]CreditCard    `json:"creditCards,omitempty"`
	Expenses       *[]Expense       `json:"expenses,omitempty"`
	Incomes        *[]Income        `json:"incomes,omitempty"`
}

// IsEmpty reports whether the patch changes nothing
func (p *StatePatch) IsEmpty() bool {
	return p == nil || (p.CurrentBalance == nil && p.CreditCards == nil && p.Expenses == nil && p.Incomes == nil)
}

// Apply returns a copy of state with the patch applied
func (p *StatePatch) Apply(state *BudgetState) *BudgetState {
	out := state.Clone()
	if p == nil {
		return out
	}
	if p.CurrentBalance != nil {
		out.CurrentBalance = *p.CurrentBalance
	}
	if p.CreditCards != nil {
		out.CreditCards = append([]CreditCard{}, (*p.CreditCards)...)
	}
	if p.Expenses != nil {
		out.Expenses = append([]Expense{}, (*p.Expenses)...)
	}
	if p.Incomes != nil {
		out.Incomes = append([]Income{}, (*p.Incomes)...)
	}
	return out
}

// Clone returns a deep copy of the state; nil slices become empty slices
func (s *BudgetState) Clone() *BudgetState {
	if s == nil {
		return NewBudgetState()
	}
	return &BudgetState{
		CurrentBalance: s.CurrentBalance,
		CreditCards:    append([]CreditCard{}, s.CreditCards...),
		Expenses:       append([]Expense{}, s.Expenses...),
		Incomes:        append([]Income{}, s.Incomes...),
	}
}

// NewBudgetState returns an empty state with a zero balance
func NewBudgetState() *BudgetState {
	return &BudgetState{
		CurrentBalance: decimal.Zero,
		CreditCards:    []CreditCard{},
		Expenses:       []Expense{},
		Incomes:        []Income{},
	}
}

// StateRepository is the persistence backend holding the budget state
type StateRepository interface {
	GetState(ctx context.Context) (*BudgetState, error)
	PutState(ctx context.Context, patch *StatePatch) (*BudgetState, error)
}

// AssignMissingIDs gives every listed entity without an id a fresh one
func (p *StatePatch) AssignMissingIDs(newID func() string) {
	if p == nil {
		return
	}
	if p.CreditCards != nil {
		for i := range *p.CreditCards {
			if (*p.CreditCards)[i].ID == "" {
				(*p.CreditCards)[i].ID = newID()
			}
		}
	}
	if p.Expenses != nil {
		for i := range *p.Expenses {
			if (*p.Expenses)[i].ID == "" {
				(*p.Expenses)[i].ID = newID()
			}
		}
	}
	if p.Incomes != nil {
		for i := range *p.Incomes {
			if (*p.Incomes)[i].ID == "" {
				(*p.Incomes)[i].ID = newID()
			}
		}
	}
}
