package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dafibh/kakeibo/kakeibo-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeState(t *testing.T, body []byte) StateResponse {
	t.Helper()
	var resp StateResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func TestGetState_Success(t *testing.T) {
	s := newTestServer()

	rec := s.do(http.MethodGet, "/api/v1/state", "")

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeState(t, rec.Body.Bytes())
	assert.Equal(t, "100000", resp.CurrentBalance)
	require.Len(t, resp.CreditCards, 1)
	assert.Equal(t, "200000", resp.CreditCards[0].CreditLimit)
	assert.Equal(t, 15, resp.CreditCards[0].AnchorDay)
	assert.Len(t, resp.Incomes, 2)
}

func TestGetState_StoreFailure(t *testing.T) {
	s := newTestServer()
	s.repo.FailWith(domain.ErrFetch)

	rec := s.do(http.MethodGet, "/api/v1/state", "")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	var problem ProblemDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, ErrorTypeUpstream, problem.Type)
	assert.Equal(t, "/api/v1/state", problem.Instance)
}

func TestPatchState_ReplacesListsAndKeepsOthers(t *testing.T) {
	s := newTestServer()

	rec := s.do(http.MethodPatch, "/api/v1/state", `{
		"currentBalance": 150000,
		"expenses": [{"name": "Rent", "amount": "85000", "anchorDay": 5, "isRecurring": true}]
	}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeState(t, rec.Body.Bytes())
	assert.Equal(t, "150000", resp.CurrentBalance)
	require.Len(t, resp.Expenses, 1)
	assert.Equal(t, "85000", resp.Expenses[0].Amount)
	assert.NotEmpty(t, resp.Expenses[0].ID, "server assigns missing ids")
	assert.Len(t, resp.CreditCards, 1)
	assert.Equal(t, []string{"state.updated"}, s.publisher.Types())
}

func TestPatchState_ValidationErrors(t *testing.T) {
	s := newTestServer()

	rec := s.do(http.MethodPatch, "/api/v1/state", `{
		"currentBalance": 100.5,
		"incomes": [{"id": "i1", "name": "", "amount": 1000, "anchorDay": 0, "isRecurring": true}]
	}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var problem ProblemDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, ErrorTypeValidation, problem.Type)

	fields := make([]string, len(problem.Errors))
	for i, fe := range problem.Errors {
		fields[i] = fe.Field
	}
	assert.Contains(t, fields, "currentBalance")
	assert.Contains(t, fields, "incomes[0].name")
	assert.Contains(t, fields, "incomes[0].anchorDay")
	assert.Empty(t, s.repo.Patches)
}

func TestPatchState_DuplicateIDsAreBadRequest(t *testing.T) {
	s := newTestServer()

	rec := s.do(http.MethodPatch, "/api/v1/state", `{
		"expenses": [
			{"id": "a", "name": "家賃", "amount": 80000, "anchorDay": 5, "isRecurring": true},
			{"id": "a", "name": "光熱費", "amount": 15000, "anchorDay": 10, "isRecurring": true}
		]
	}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var problem ProblemDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	require.Len(t, problem.Errors, 1)
	assert.Equal(t, "expenses[1].id", problem.Errors[0].Field)
	assert.Empty(t, s.repo.Patches)
}

func TestPatchState_MalformedBody(t *testing.T) {
	s := newTestServer()

	rec := s.do(http.MethodPatch, "/api/v1/state", `{"currentBalance": `)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPutBalance(t *testing.T) {
	s := newTestServer()

	rec := s.do(http.MethodPut, "/api/v1/state/balance", `{"currentBalance": 42000}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "42000", decodeState(t, rec.Body.Bytes()).CurrentBalance)

	rec = s.do(http.MethodPut, "/api/v1/state/balance", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPutCreditCards(t *testing.T) {
	s := newTestServer()

	rec := s.do(http.MethodPut, "/api/v1/state/credit-cards", `[
		{"id": "c1", "name": "JCB", "creditLimit": 200000, "anchorDay": 15, "currentBalance": 0},
		{"name": "VISA", "creditLimit": 300000, "anchorDay": 25, "currentBalance": 75000}
	]`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeState(t, rec.Body.Bytes())
	require.Len(t, resp.CreditCards, 2)
	assert.Equal(t, "0", resp.CreditCards[0].CurrentBalance)
	assert.Equal(t, "VISA", resp.CreditCards[1].Name)
}

func TestPutExpenses_EmptyListClears(t *testing.T) {
	s := newTestServer()

	rec := s.do(http.MethodPut, "/api/v1/state/expenses", `[]`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeState(t, rec.Body.Bytes()).Expenses)
}

func TestPutIncomes_RejectsObjectBody(t *testing.T) {
	s := newTestServer()

	rec := s.do(http.MethodPut, "/api/v1/state/incomes", `{"incomes": []}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, s.repo.Patches)
}
