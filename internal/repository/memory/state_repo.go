// Package memory keeps the budget state in process memory. It backs
// STORE_BACKEND=mock for demos and local UI work.
package memory

import (
	"context"
	"sync"

	"github.com/dafibh/kakeibo/kakeibo-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// StateRepository implements domain.StateRepository in memory
type StateRepository struct {
	mu    sync.RWMutex
	state *domain.BudgetState
}

// NewStateRepository creates a repository holding a copy of state
func NewStateRepository(state *domain.BudgetState) *StateRepository {
	return &StateRepository{state: state.Clone()}
}

// NewMockStateRepository creates a repository seeded with the demo household
func NewMockStateRepository() *StateRepository {
	return NewStateRepository(MockState())
}

// GetState returns a copy of the stored state
func (r *StateRepository) GetState(ctx context.Context) (*domain.BudgetState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state.Clone(), nil
}

// PutState applies the patch and returns a copy of the new state
func (r *StateRepository) PutState(ctx context.Context, patch *domain.StatePatch) (*domain.BudgetState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = patch.Apply(r.state)
	return r.state.Clone(), nil
}

// MockState is the demo household shown when no real store is configured
func MockState() *domain.BudgetState {
	return &domain.BudgetState{
		CurrentBalance: decimal.NewFromInt(100000),
		CreditCards: []domain.CreditCard{
			{ID: "1", Name: "JCBカード", CreditLimit: decimal.NewFromInt(200000), AnchorDay: 15, CurrentBalance: decimal.NewFromInt(50000)},
			{ID: "2", Name: "VISAカード", CreditLimit: decimal.NewFromInt(300000), AnchorDay: 25, CurrentBalance: decimal.NewFromInt(75000)},
		},
		Expenses: []domain.Expense{
			{ID: "1", Name: "家賃", Amount: decimal.NewFromInt(80000), AnchorDay: 5, IsRecurring: true},
			{ID: "2", Name: "光熱費", Amount: decimal.NewFromInt(15000), AnchorDay: 10, IsRecurring: true},
			{ID: "3", Name: "携帯電話", Amount: decimal.NewFromInt(8000), AnchorDay: 15, IsRecurring: true},
		},
		Incomes: []domain.Income{
			{ID: "1", Name: "給料", Amount: decimal.NewFromInt(280000), AnchorDay: 25, IsRecurring: true},
			{ID: "2", Name: "夏のボーナス", Amount: decimal.NewFromInt(500000), AnchorDay: 15, IsRecurring: false},
		},
	}
}
