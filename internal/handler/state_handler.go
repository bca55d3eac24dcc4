package handler

import (
	"net/http"

	"github.com/dafibh/kakeibo/kakeibo-backend/internal/domain"
	"github.com/dafibh/kakeibo/kakeibo-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// StateHandler handles budget state HTTP requests
type StateHandler struct {
	stateService *service.StateService
}

// NewStateHandler creates a new StateHandler
func NewStateHandler(stateService *service.StateService) *StateHandler {
	return &StateHandler{
		stateService: stateService,
	}
}

// CreditCardResponse represents a credit card in API responses
type CreditCardResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	CreditLimit    string `json:"creditLimit"`
	AnchorDay      int    `json:"anchorDay"`
	CurrentBalance string `json:"currentBalance"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Amount      string `json:"amount"`
	AnchorDay   int    `json:"anchorDay"`
	IsRecurring bool   `json:"isRecurring"`
}

// IncomeResponse represents an income in API responses
type IncomeResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Amount      string `json:"amount"`
	AnchorDay   int    `json:"anchorDay"`
	IsRecurring bool   `json:"isRecurring"`
}

// StateResponse represents the budget state in API responses
type StateResponse struct {
	CurrentBalance string               `json:"currentBalance"`
	CreditCards    []CreditCardResponse `json:"creditCards"`
	Expenses       []ExpenseResponse    `json:"expenses"`
	Incomes        []IncomeResponse     `json:"incomes"`
}

// UpdateBalanceRequest represents the request body for updating the balance
type UpdateBalanceRequest struct {
	CurrentBalance *decimal.Decimal `json:"currentBalance"`
}

func toStateResponse(state *domain.BudgetState) StateResponse {
	resp := StateResponse{
		CurrentBalance: state.CurrentBalance.StringFixed(0),
		CreditCards:    make([]CreditCardResponse, len(state.CreditCards)),
		Expenses:       make([]ExpenseResponse, len(state.Expenses)),
		Incomes:        make([]IncomeResponse, len(state.Incomes)),
	}
	for i, c := range state.CreditCards {
		resp.CreditCards[i] = CreditCardResponse{
			ID:             c.ID,
			Name:           c.Name,
			CreditLimit:    c.CreditLimit.StringFixed(0),
			AnchorDay:      c.AnchorDay,
			CurrentBalance: c.CurrentBalance.StringFixed(0),
		}
	}
	for i, e := range state.Expenses {
		resp.Expenses[i] = ExpenseResponse{
			ID:          e.ID,
			Name:        e.Name,
			Amount:      e.Amount.StringFixed(0),
			AnchorDay:   e.AnchorDay,
			IsRecurring: e.IsRecurring,
		}
	}
	for i, inc := range state.Incomes {
		resp.Incomes[i] = IncomeResponse{
			ID:          inc.ID,
			Name:        inc.Name,
			Amount:      inc.Amount.StringFixed(0),
			AnchorDay:   inc.AnchorDay,
			IsRecurring: inc.IsRecurring,
		}
	}
	return resp
}

// GetState returns the whole budget state
// @Summary Get budget state
// @Description Returns the current balance, credit cards, expenses and incomes
// @Tags state
// @Produce json
// @Success 200 {object} StateResponse
// @Failure 502 {object} ProblemDetails
// @Router /state [get]
func (h *StateHandler) GetState(c echo.Context) error {
	state, err := h.stateService.GetState(c.Request().Context())
	if err != nil {
		return respondServiceError(c, err, "Failed to get budget state")
	}
	return c.JSON(http.StatusOK, toStateResponse(state))
}

// PatchState applies a partial update
// @Summary Update budget state
// @Description Replaces every part present in the body. Lists are replaced wholesale.
// @Tags state
// @Accept json
// @Produce json
// @Param request body domain.StatePatch true "Partial state"
// @Success 200 {object} StateResponse
// @Failure 400 {object} ProblemDetails
// @Failure 502 {object} ProblemDetails
// @Router /state [patch]
func (h *StateHandler) PatchState(c echo.Context) error {
	var patch domain.StatePatch
	if err := c.Bind(&patch); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	return h.update(c, &patch)
}

// PutBalance replaces the current balance
// @Summary Set current balance
// @Tags state
// @Accept json
// @Produce json
// @Param request body UpdateBalanceRequest true "New balance"
// @Success 200 {object} StateResponse
// @Failure 400 {object} ProblemDetails
// @Failure 502 {object} ProblemDetails
// @Router /state/balance [put]
func (h *StateHandler) PutBalance(c echo.Context) error {
	var req UpdateBalanceRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if req.CurrentBalance == nil {
		return NewValidationError(c, "currentBalance is required", []ValidationError{{Field: "currentBalance", Message: "Required"}})
	}
	return h.update(c, &domain.StatePatch{CurrentBalance: req.CurrentBalance})
}

// PutCreditCards replaces the credit card list
// @Summary Replace credit cards
// @Tags state
// @Accept json
// @Produce json
// @Param request body []domain.CreditCard true "Credit cards"
// @Success 200 {object} StateResponse
// @Failure 400 {object} ProblemDetails
// @Failure 502 {object} ProblemDetails
// @Router /state/credit-cards [put]
func (h *StateHandler) PutCreditCards(c echo.Context) error {
	var cards []domain.CreditCard
	if err := decodeList(c, &cards); err != nil {
		return NewValidationError(c, "Request body must be a JSON array of credit cards", nil)
	}
	return h.update(c, &domain.StatePatch{CreditCards: &cards})
}

// PutExpenses replaces the expense list
// @Summary Replace expenses
// @Tags state
// @Accept json
// @Produce json
// @Param request body []domain.Expense true "Expenses"
// @Success 200 {object} StateResponse
// @Failure 400 {object} ProblemDetails
// @Failure 502 {object} ProblemDetails
// @Router /state/expenses [put]
func (h *StateHandler) PutExpenses(c echo.Context) error {
	var expenses []domain.Expense
	if err := decodeList(c, &expenses); err != nil {
		return NewValidationError(c, "Request body must be a JSON array of expenses", nil)
	}
	return h.update(c, &domain.StatePatch{Expenses: &expenses})
}

// PutIncomes replaces the income list
// @Summary Replace incomes
// @Tags state
// @Accept json
// @Produce json
// @Param request body []domain.Income true "Incomes"
// @Success 200 {object} StateResponse
// @Failure 400 {object} ProblemDetails
// @Failure 502 {object} ProblemDetails
// @Router /state/incomes [put]
func (h *StateHandler) PutIncomes(c echo.Context) error {
	var incomes []domain.Income
	if err := decodeList(c, &incomes); err != nil {
		return NewValidationError(c, "Request body must be a JSON array of incomes", nil)
	}
	return h.update(c, &domain.StatePatch{Incomes: &incomes})
}

func (h *StateHandler) update(c echo.Context, patch *domain.StatePatch) error {
	state, err := h.stateService.UpdateState(c.Request().Context(), patch)
	if err != nil {
		return respondServiceError(c, err, "Failed to update budget state")
	}
	return c.JSON(http.StatusOK, toStateResponse(state))
}

// decodeList decodes a JSON array body. A null body decodes to an empty list.
func decodeList[T any](c echo.Context, out *[]T) error {
	if err := c.Echo().JSONSerializer.Deserialize(c, out); err != nil {
		return err
	}
	if *out == nil {
		*out = []T{}
	}
	return nil
}
