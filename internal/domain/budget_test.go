package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func sampleState() *BudgetState {
	return &BudgetState{
		CurrentBalance: decimal.NewFromInt(100000),
		CreditCards: []CreditCard{
			{ID: "1", Name: "JCB", CreditLimit: decimal.NewFromInt(200000), AnchorDay: 15, CurrentBalance: decimal.NewFromInt(50000)},
		},
		Expenses: []Expense{
			{ID: "1", Name: "Rent", Amount: decimal.NewFromInt(80000), AnchorDay: 5, IsRecurring: true},
		},
		Incomes: []Income{
			{ID: "1", Name: "Salary", Amount: decimal.NewFromInt(280000), AnchorDay: 25, IsRecurring: true},
		},
	}
}

func TestStatePatch_IsEmpty(t *testing.T) {
	var nilPatch *StatePatch
	if !nilPatch.IsEmpty() {
		t.Error("Expected nil patch to be empty")
	}
	if !(&StatePatch{}).IsEmpty() {
		t.Error("Expected zero patch to be empty")
	}
	balance := decimal.NewFromInt(1)
	if (&StatePatch{CurrentBalance: &balance}).IsEmpty() {
		t.Error("Expected balance patch to be non-empty")
	}
	expenses := []Expense{}
	if (&StatePatch{Expenses: &expenses}).IsEmpty() {
		t.Error("Expected patch with empty expense list to be non-empty")
	}
}

func TestStatePatch_Apply(t *testing.T) {
	state := sampleState()
	balance := decimal.NewFromInt(5000)
	incomes := []Income{}
	patch := &StatePatch{CurrentBalance: &balance, Incomes: &incomes}

	out := patch.Apply(state)

	if !out.CurrentBalance.Equal(balance) {
		t.Errorf("Expected balance %s, got %s", balance, out.CurrentBalance)
	}
	if len(out.Incomes) != 0 {
		t.Errorf("Expected incomes to be replaced by empty list, got %d", len(out.Incomes))
	}
	if len(out.Expenses) != 1 || len(out.CreditCards) != 1 {
		t.Error("Expected untouched lists to be kept")
	}
	// Input must not change
	if !state.CurrentBalance.Equal(decimal.NewFromInt(100000)) || len(state.Incomes) != 1 {
		t.Error("Apply mutated its input")
	}
}

func TestBudgetState_CloneIsDeep(t *testing.T) {
	state := sampleState()
	clone := state.Clone()
	clone.Expenses[0].Amount = decimal.NewFromInt(1)

	if !state.Expenses[0].Amount.Equal(decimal.NewFromInt(80000)) {
		t.Error("Clone shares backing array with original")
	}

	var nilState *BudgetState
	empty := nilState.Clone()
	if empty.CreditCards == nil || empty.Expenses == nil || empty.Incomes == nil {
		t.Error("Expected clone of nil state to have empty lists")
	}
}

func TestStatePatch_AssignMissingIDs(t *testing.T) {
	n := 0
	newID := func() string {
		n++
		return fmt.Sprintf("gen-%d", n)
	}
	cards := []CreditCard{{ID: "keep"}, {}}
	expenses := []Expense{{}}
	patch := &StatePatch{CreditCards: &cards, Expenses: &expenses}

	patch.AssignMissingIDs(newID)

	if cards[0].ID != "keep" {
		t.Errorf("Expected existing id to be kept, got %s", cards[0].ID)
	}
	if cards[1].ID != "gen-1" || expenses[0].ID != "gen-2" {
		t.Errorf("Unexpected generated ids: %s, %s", cards[1].ID, expenses[0].ID)
	}
}

func TestStatePatch_Validate(t *testing.T) {
	fractional := decimal.RequireFromString("100.5")

	tests := []struct {
		name       string
		patch      StatePatch
		wantErr    bool
		wantFields []string
	}{
		{
			name:  "valid patch",
			patch: StatePatch{CreditCards: &sampleState().CreditCards, Expenses: &sampleState().Expenses, Incomes: &sampleState().Incomes},
		},
		{
			name:       "fractional balance",
			patch:      StatePatch{CurrentBalance: &fractional},
			wantErr:    true,
			wantFields: []string{"currentBalance"},
		},
		{
			name: "anchor day out of range",
			patch: StatePatch{Expenses: &[]Expense{
				{Name: "Rent", Amount: decimal.NewFromInt(1), AnchorDay: 32},
				{Name: "Gym", Amount: decimal.NewFromInt(1), AnchorDay: 0},
			}},
			wantErr:    true,
			wantFields: []string{"expenses[0].anchorDay", "expenses[1].anchorDay"},
		},
		{
			name: "negative credit limit and missing name",
			patch: StatePatch{CreditCards: &[]CreditCard{
				{Name: " ", CreditLimit: decimal.NewFromInt(-1), AnchorDay: 10},
			}},
			wantErr:    true,
			wantFields: []string{"creditCards[0].name", "creditCards[0].creditLimit"},
		},
		{
			name: "fractional income",
			patch: StatePatch{Incomes: &[]Income{
				{Name: "Salary", Amount: fractional, AnchorDay: 25},
			}},
			wantErr:    true,
			wantFields: []string{"incomes[0].amount"},
		},
		{
			name: "duplicate ids",
			patch: StatePatch{Expenses: &[]Expense{
				{ID: "a", Name: "Rent", Amount: decimal.NewFromInt(1), AnchorDay: 5},
				{ID: "a", Name: "Gym", Amount: decimal.NewFromInt(1), AnchorDay: 6},
				{Name: "Phone", Amount: decimal.NewFromInt(1), AnchorDay: 7},
				{Name: "Water", Amount: decimal.NewFromInt(1), AnchorDay: 8},
			}},
			wantErr:    true,
			wantFields: []string{"expenses[1].id"},
		},
		{
			name: "same id in different lists",
			patch: StatePatch{
				CreditCards: &[]CreditCard{{ID: "1", Name: "JCB", CreditLimit: decimal.NewFromInt(1), AnchorDay: 15}},
				Incomes:     &[]Income{{ID: "1", Name: "Salary", Amount: decimal.NewFromInt(1), AnchorDay: 25}},
			},
		},
		{
			name: "long japanese name within limit",
			patch: StatePatch{Incomes: &[]Income{
				{Name: strings.Repeat("給", MaxNameLength), Amount: decimal.NewFromInt(1), AnchorDay: 25},
			}},
		},
		{
			name: "name over limit",
			patch: StatePatch{Incomes: &[]Income{
				{Name: strings.Repeat("給", MaxNameLength+1), Amount: decimal.NewFromInt(1), AnchorDay: 25},
			}},
			wantErr:    true,
			wantFields: []string{"incomes[0].name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.patch.Validate()
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("Expected ErrValidation, got %v", err)
			}
			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("Expected ValidationErrors, got %T", err)
			}
			if len(verrs) != len(tt.wantFields) {
				t.Fatalf("Expected %d field errors, got %d: %v", len(tt.wantFields), len(verrs), verrs)
			}
			for i, field := range tt.wantFields {
				if verrs[i].Field != field {
					t.Errorf("Expected field %s, got %s", field, verrs[i].Field)
				}
			}
		})
	}
}
