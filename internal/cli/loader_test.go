package cli

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dafibh/kakeibo/kakeibo-backend/internal/domain"
)

const householdTOML = `
current_balance = 100000

[[credit_cards]]
id = "jcb"
name = "JCBカード"
credit_limit = 200000
anchor_day = 15
current_balance = 50000

[[expenses]]
name = "家賃"
amount = 80000
anchor_day = 5

[[incomes]]
id = "salary"
name = "給料"
amount = 280000
anchor_day = 25

[[incomes]]
id = "bonus"
name = "夏のボーナス"
amount = 500000
anchor_day = 15
recurring = false
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadScenarioFile(t *testing.T) {
	state, err := LoadScenarioFile(writeScenario(t, householdTOML))
	require.NoError(t, err)

	assert.True(t, state.CurrentBalance.Equal(decimal.NewFromInt(100000)))

	require.Len(t, state.CreditCards, 1)
	assert.Equal(t, "jcb", state.CreditCards[0].ID)
	assert.Equal(t, 15, state.CreditCards[0].AnchorDay)
	assert.True(t, state.CreditCards[0].CreditLimit.Equal(decimal.NewFromInt(200000)))

	require.Len(t, state.Expenses, 1)
	assert.Len(t, state.Expenses[0].ID, 36, "missing id is generated")
	assert.True(t, state.Expenses[0].IsRecurring, "recurring defaults to true")

	require.Len(t, state.Incomes, 2)
	assert.True(t, state.Incomes[0].IsRecurring)
	assert.False(t, state.Incomes[1].IsRecurring)
}

func TestLoadScenarioFile_UnknownKey(t *testing.T) {
	_, err := LoadScenarioFile(writeScenario(t, "current_balance = 1\nbalanse = 2\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "balanse")
}

func TestLoadScenarioFile_Missing(t *testing.T) {
	_, err := LoadScenarioFile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestDecodeScenario_Validation(t *testing.T) {
	_, err := decodeScenario("scenario", `
[[expenses]]
name = "家賃"
amount = 80000
anchor_day = 32
`)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "expenses[0]")
}

func TestDecodeScenario_UnknownNestedKey(t *testing.T) {
	_, err := decodeScenario("scenario", `
[[incomes]]
name = "給料"
amount = 280000
anchor_day = 25
recuring = false
`)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "incomes.recuring")
}

func TestDecodeScenario_Empty(t *testing.T) {
	state, err := decodeScenario("scenario", "")
	require.NoError(t, err)
	assert.True(t, state.CurrentBalance.IsZero())
	assert.Empty(t, state.CreditCards)
	assert.Empty(t, state.Expenses)
	assert.Empty(t, state.Incomes)
}

func TestLoadState_NoSource(t *testing.T) {
	_, err := LoadState(context.Background(), Source{})
	assert.True(t, errors.Is(err, ErrNoSource))
}

func TestLoadState_Mock(t *testing.T) {
	state, err := LoadState(context.Background(), Source{Mock: true})
	require.NoError(t, err)
	assert.Len(t, state.CreditCards, 2)
}

func TestLoadState_FileBeatsMock(t *testing.T) {
	state, err := LoadState(context.Background(), Source{File: writeScenario(t, householdTOML), Mock: true})
	require.NoError(t, err)
	assert.Len(t, state.CreditCards, 1)
}

func TestLoadState_Endpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"currentBalance":5000,"creditCards":[],"expenses":[{"id":1,"name":"光熱費","amount":15000,"dueDate":10,"isRecurring":"TRUE"}],"incomes":[]}`))
	}))
	defer srv.Close()

	state, err := LoadState(context.Background(), Source{Endpoint: srv.URL, File: "ignored.toml", Timeout: 5 * time.Second})
	require.NoError(t, err)
	assert.True(t, state.CurrentBalance.Equal(decimal.NewFromInt(5000)))
	require.Len(t, state.Expenses, 1)
	assert.Equal(t, "1", state.Expenses[0].ID)
	assert.Equal(t, 10, state.Expenses[0].AnchorDay)
	assert.True(t, state.Expenses[0].IsRecurring)
}
