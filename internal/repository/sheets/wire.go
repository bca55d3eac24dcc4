package sheets

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/dafibh/kakeibo/kakeibo-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// The spreadsheet returns cell values as-is, so ids come back as numbers,
// flags as "TRUE" and empty cells as "". The flexible types below accept
// all of those and always encode the canonical form.

// FlexID is an entity id that may be encoded as a JSON string or number
type FlexID string

// UnmarshalJSON accepts strings and numbers
func (f *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*f = FlexID(n.String())
	return nil
}

// FlexBool is a flag that may be encoded as a JSON bool or a "TRUE"/"FALSE" string
type FlexBool bool

// UnmarshalJSON accepts bools and their string spellings
func (f *FlexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("true")):
		*f = true
	case bytes.Equal(data, []byte("false")), bytes.Equal(data, []byte("null")):
		*f = false
	default:
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("flag must be a bool or string: %w", err)
		}
		switch strings.ToUpper(strings.TrimSpace(s)) {
		case "TRUE", "1":
			*f = true
		case "FALSE", "0", "":
			*f = false
		default:
			return fmt.Errorf("invalid flag %q", s)
		}
	}
	return nil
}

// FlexAmount is a money value that may be encoded as a number, a numeric
// string or an empty string (zero)
type FlexAmount struct {
	decimal.Decimal
}

// UnmarshalJSON accepts numbers and numeric strings
func (f *FlexAmount) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" || s == "null" {
		f.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", s, err)
	}
	f.Decimal = d
	return nil
}

// MarshalJSON encodes the amount as a bare JSON number
func (f FlexAmount) MarshalJSON() ([]byte, error) {
	return []byte(f.Decimal.String()), nil
}

// FlexDay is a day of month that may be encoded as a number or numeric string
type FlexDay int

// UnmarshalJSON accepts numbers and numeric strings
func (f *FlexDay) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(strings.Trim(string(bytes.TrimSpace(data)), `"`))
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid day %q: %w", s, err)
	}
	*f = FlexDay(int(n))
	return nil
}

// CreditCard is a card in the spreadsheet wire format
type CreditCard struct {
	ID             FlexID     `json:"id"`
	Name           string     `json:"name"`
	Limit          FlexAmount `json:"limit"`
	PaymentDate    FlexDay    `json:"paymentDate"`
	CurrentBalance FlexAmount `json:"currentBalance"`
}

// Expense is an expense in the spreadsheet wire format
type Expense struct {
	ID          FlexID     `json:"id"`
	Name        string     `json:"name"`
	Amount      FlexAmount `json:"amount"`
	DueDate     FlexDay    `json:"dueDate"`
	IsRecurring FlexBool   `json:"isRecurring"`
}

// Income is an income in the spreadsheet wire format. Older clients send
// receiptDate instead of paymentDate.
type Income struct {
	ID          FlexID     `json:"id"`
	Name        string     `json:"name"`
	Amount      FlexAmount `json:"amount"`
	PaymentDate FlexDay    `json:"paymentDate"`
	ReceiptDate FlexDay    `json:"receiptDate,omitempty"`
	IsRecurring FlexBool   `json:"isRecurring"`
}

// State is the full budget state in the spreadsheet wire format
type State struct {
	CurrentBalance FlexAmount   `json:"currentBalance"`
	CreditCards    []CreditCard `json:"creditCards"`
	Expenses       []Expense    `json:"expenses"`
	Incomes        []Income     `json:"incomes"`
}

// Patch is a partial update in the spreadsheet wire format
type Patch struct {
	CurrentBalance *FlexAmount   `json:"currentBalance,omitempty"`
	CreditCards    *[]CreditCard `json:"creditCards,omitempty"`
	Expenses       *[]Expense    `json:"expenses,omitempty"`
	Incomes        *[]Income     `json:"incomes,omitempty"`
}

func (i Income) anchorDay() int {
	if i.PaymentDate == 0 {
		return int(i.ReceiptDate)
	}
	return int(i.PaymentDate)
}

func cardToDomain(c CreditCard) domain.CreditCard {
	return domain.CreditCard{
		ID:             string(c.ID),
		Name:           c.Name,
		CreditLimit:    c.Limit.Decimal,
		AnchorDay:      int(c.PaymentDate),
		CurrentBalance: c.CurrentBalance.Decimal,
	}
}

func expenseToDomain(e Expense) domain.Expense {
	return domain.Expense{
		ID:          string(e.ID),
		Name:        e.Name,
		Amount:      e.Amount.Decimal,
		AnchorDay:   int(e.DueDate),
		IsRecurring: bool(e.IsRecurring),
	}
}

func incomeToDomain(i Income) domain.Income {
	return domain.Income{
		ID:          string(i.ID),
		Name:        i.Name,
		Amount:      i.Amount.Decimal,
		AnchorDay:   i.anchorDay(),
		IsRecurring: bool(i.IsRecurring),
	}
}

func cardFromDomain(c domain.CreditCard) CreditCard {
	return CreditCard{
		ID:             FlexID(c.ID),
		Name:           c.Name,
		Limit:          FlexAmount{c.CreditLimit},
		PaymentDate:    FlexDay(c.AnchorDay),
		CurrentBalance: FlexAmount{c.CurrentBalance},
	}
}

func expenseFromDomain(e domain.Expense) Expense {
	return Expense{
		ID:          FlexID(e.ID),
		Name:        e.Name,
		Amount:      FlexAmount{e.Amount},
		DueDate:     FlexDay(e.AnchorDay),
		IsRecurring: FlexBool(e.IsRecurring),
	}
}

func incomeFromDomain(i domain.Income) Income {
	return Income{
		ID:          FlexID(i.ID),
		Name:        i.Name,
		Amount:      FlexAmount{i.Amount},
		PaymentDate: FlexDay(i.AnchorDay),
		IsRecurring: FlexBool(i.IsRecurring),
	}
}

// ToDomain converts the wire state into a domain.BudgetState.
// Rows without an id are blank spreadsheet rows and are skipped.
func (s *State) ToDomain() *domain.BudgetState {
	state := domain.NewBudgetState()
	state.CurrentBalance = s.CurrentBalance.Decimal
	for _, c := range s.CreditCards {
		if c.ID != "" {
			state.CreditCards = append(state.CreditCards, cardToDomain(c))
		}
	}
	for _, e := range s.Expenses {
		if e.ID != "" {
			state.Expenses = append(state.Expenses, expenseToDomain(e))
		}
	}
	for _, i := range s.Incomes {
		if i.ID != "" {
			state.Incomes = append(state.Incomes, incomeToDomain(i))
		}
	}
	return state
}

// FromDomain converts a domain.BudgetState into the wire format
func FromDomain(state *domain.BudgetState) *State {
	if state == nil {
		state = domain.NewBudgetState()
	}
	out := &State{
		CurrentBalance: FlexAmount{state.CurrentBalance},
		CreditCards:    make([]CreditCard, 0, len(state.CreditCards)),
		Expenses:       make([]Expense, 0, len(state.Expenses)),
		Incomes:        make([]Income, 0, len(state.Incomes)),
	}
	for _, c := range state.CreditCards {
		out.CreditCards = append(out.CreditCards, cardFromDomain(c))
	}
	for _, e := range state.Expenses {
		out.Expenses = append(out.Expenses, expenseFromDomain(e))
	}
	for _, i := range state.Incomes {
		out.Incomes = append(out.Incomes, incomeFromDomain(i))
	}
	return out
}

// ToDomain converts a wire patch into a domain.StatePatch. Unlike state rows,
// patch entries without an id are kept so the server can assign one.
func (p *Patch) ToDomain() *domain.StatePatch {
	patch := &domain.StatePatch{}
	if p.CurrentBalance != nil {
		balance := p.CurrentBalance.Decimal
		patch.CurrentBalance = &balance
	}
	if p.CreditCards != nil {
		cards := make([]domain.CreditCard, 0, len(*p.CreditCards))
		for _, c := range *p.CreditCards {
			cards = append(cards, cardToDomain(c))
		}
		patch.CreditCards = &cards
	}
	if p.Expenses != nil {
		expenses := make([]domain.Expense, 0, len(*p.Expenses))
		for _, e := range *p.Expenses {
			expenses = append(expenses, expenseToDomain(e))
		}
		patch.Expenses = &expenses
	}
	if p.Incomes != nil {
		incomes := make([]domain.Income, 0, len(*p.Incomes))
		for _, i := range *p.Incomes {
			incomes = append(incomes, incomeToDomain(i))
		}
		patch.Incomes = &incomes
	}
	return patch
}

// PatchFromDomain converts a domain.StatePatch into the wire format
func PatchFromDomain(patch *domain.StatePatch) *Patch {
	out := &Patch{}
	if patch == nil {
		return out
	}
	if patch.CurrentBalance != nil {
		out.CurrentBalance = &FlexAmount{*patch.CurrentBalance}
	}
	if patch.CreditCards != nil {
		cards := make([]CreditCard, 0, len(*patch.CreditCards))
		for _, c := range *patch.CreditCards {
			cards = append(cards, cardFromDomain(c))
		}
		out.CreditCards = &cards
	}
	if patch.Expenses != nil {
		expenses := make([]Expense, 0, len(*patch.Expenses))
		for _, e := range *patch.Expenses {
			expenses = append(expenses, expenseFromDomain(e))
		}
		out.Expenses = &expenses
	}
	if patch.Incomes != nil {
		incomes := make([]Income, 0, len(*patch.Incomes))
		for _, i := range *patch.Incomes {
			incomes = append(incomes, incomeFromDomain(i))
		}
		out.Incomes = &incomes
	}
	return out
}
