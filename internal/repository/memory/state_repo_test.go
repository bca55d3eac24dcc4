package memory

import (
	"context"
	"testing"

	"github.com/dafibh/kakeibo/kakeibo-backend/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockState(t *testing.T) {
	state, err := NewMockStateRepository().GetState(context.Background())
	require.NoError(t, err)

	assert.True(t, state.CurrentBalance.Equal(decimal.NewFromInt(100000)))
	assert.Len(t, state.CreditCards, 2)
	assert.Len(t, state.Expenses, 3)
	assert.Len(t, state.Incomes, 2)
}

func TestStateRepository_PutReplacesListsWholesale(t *testing.T) {
	repo := NewMockStateRepository()
	cards := []domain.CreditCard{
		{ID: "9", Name: "Amex", CreditLimit: decimal.NewFromInt(500000), AnchorDay: 10},
	}

	state, err := repo.PutState(context.Background(), &domain.StatePatch{CreditCards: &cards})
	require.NoError(t, err)

	require.Len(t, state.CreditCards, 1)
	assert.Equal(t, "9", state.CreditCards[0].ID)
	assert.Len(t, state.Expenses, 3)
}

func TestStateRepository_ReturnsCopies(t *testing.T) {
	repo := NewMockStateRepository()

	state, err := repo.GetState(context.Background())
	require.NoError(t, err)
	state.Expenses[0].Name = "changed"
	state.Incomes = nil

	again, err := repo.GetState(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "家賃", again.Expenses[0].Name)
	assert.Len(t, again.Incomes, 2)
}
