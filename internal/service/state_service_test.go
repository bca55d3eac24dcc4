package service

import (
	"context"
	"errors"
	"testing"

	"github.com/dafibh/kakeibo/kakeibo-backend/internal/domain"
	"github.com/dafibh/kakeibo/kakeibo-backend/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStateService() (*StateService, *testutil.MockStateRepository, *testutil.MockEventPublisher) {
	repo := testutil.NewMockStateRepository()
	repo.SetState(testutil.ReferenceHousehold())
	publisher := testutil.NewMockEventPublisher()

	svc := NewStateService(repo)
	svc.SetEventPublisher(publisher)
	return svc, repo, publisher
}

func TestStateService_GetState(t *testing.T) {
	svc, _, _ := setupStateService()

	state, err := svc.GetState(context.Background())
	require.NoError(t, err)
	assert.True(t, state.CurrentBalance.Equal(decimal.NewFromInt(100000)))
	assert.Len(t, state.Incomes, 2)
}

func TestStateService_UpdateBalance(t *testing.T) {
	svc, repo, publisher := setupStateService()
	balance := decimal.NewFromInt(250000)

	state, err := svc.UpdateState(context.Background(), &domain.StatePatch{CurrentBalance: &balance})
	require.NoError(t, err)

	assert.True(t, state.CurrentBalance.Equal(balance))
	assert.Len(t, state.Expenses, 1, "untouched lists are kept")
	assert.Len(t, repo.Patches, 1)
	assert.Equal(t, []string{"state.updated"}, publisher.Types())
}

func TestStateService_UpdateAssignsMissingIDs(t *testing.T) {
	svc, _, _ := setupStateService()
	expenses := []domain.Expense{
		{ID: "e1", Name: "Rent", Amount: decimal.NewFromInt(80000), AnchorDay: 5, IsRecurring: true},
		{Name: "Utilities", Amount: decimal.NewFromInt(15000), AnchorDay: 10, IsRecurring: true},
	}

	state, err := svc.UpdateState(context.Background(), &domain.StatePatch{Expenses: &expenses})
	require.NoError(t, err)

	require.Len(t, state.Expenses, 2)
	assert.Equal(t, "e1", state.Expenses[0].ID)
	assert.NotEmpty(t, state.Expenses[1].ID)
	assert.Len(t, state.Expenses[1].ID, 36)
}

func TestStateService_UpdateRejectsInvalidPatch(t *testing.T) {
	svc, repo, publisher := setupStateService()
	incomes := []domain.Income{
		{Name: "Salary", Amount: decimal.NewFromInt(280000), AnchorDay: 32, IsRecurring: true},
	}

	_, err := svc.UpdateState(context.Background(), &domain.StatePatch{Incomes: &incomes})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Empty(t, repo.Patches, "invalid patch must not reach the store")
	assert.Empty(t, publisher.Events)
}

func TestStateService_EmptyPatchIsARead(t *testing.T) {
	svc, repo, publisher := setupStateService()

	state, err := svc.UpdateState(context.Background(), &domain.StatePatch{})
	require.NoError(t, err)

	assert.True(t, state.CurrentBalance.Equal(decimal.NewFromInt(100000)))
	assert.Empty(t, repo.Patches)
	assert.Empty(t, publisher.Events)
}

func TestStateService_StoreErrorsAreReturnedUnchanged(t *testing.T) {
	svc, repo, publisher := setupStateService()
	storeErr := errors.New("sheet locked")
	repo.FailWith(storeErr)
	balance := decimal.NewFromInt(1)

	_, err := svc.UpdateState(context.Background(), &domain.StatePatch{CurrentBalance: &balance})
	assert.ErrorIs(t, err, storeErr)

	_, err = svc.GetState(context.Background())
	assert.ErrorIs(t, err, storeErr)
	assert.Empty(t, publisher.Events)
}

func TestStateService_WorksWithoutPublisher(t *testing.T) {
	repo := testutil.NewMockStateRepository()
	svc := NewStateService(repo)
	balance := decimal.NewFromInt(10)

	_, err := svc.UpdateState(context.Background(), &domain.StatePatch{CurrentBalance: &balance})
	assert.NoError(t, err)
}
