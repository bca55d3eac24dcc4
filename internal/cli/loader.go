package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dafibh/kakeibo/kakeibo-backend/internal/domain"
	"github.com/dafibh/kakeibo/kakeibo-backend/internal/repository/memory"
	"github.com/dafibh/kakeibo/kakeibo-backend/internal/repository/sheets"
)

// ErrNoSource is returned when neither a scenario file, an endpoint nor
// the mock household was selected.
var ErrNoSource = errors.New("no state source: pass --file, --endpoint or --mock")

// Scenario is a household described in a TOML file. Amounts are whole yen.
type Scenario struct {
	CurrentBalance int64               `toml:"current_balance"`
	CreditCards    []ScenarioCard      `toml:"credit_cards"`
	Expenses       []ScenarioRecurring `toml:"expenses"`
	Incomes        []ScenarioRecurring `toml:"incomes"`
}

// ScenarioCard is a [[credit_cards]] table.
type ScenarioCard struct {
	ID             string `toml:"id"`
	Name           string `toml:"name"`
	CreditLimit    int64  `toml:"credit_limit"`
	AnchorDay      int    `toml:"anchor_day"`
	CurrentBalance int64  `toml:"current_balance"`
}

// ScenarioRecurring is an [[expenses]] or [[incomes]] table.
// Recurring defaults to true when omitted.
type ScenarioRecurring struct {
	ID        string `toml:"id"`
	Name      string `toml:"name"`
	Amount    int64  `toml:"amount"`
	AnchorDay int    `toml:"anchor_day"`
	Recurring *bool  `toml:"recurring"`
}

func (r ScenarioRecurring) recurring() bool {
	return r.Recurring == nil || *r.Recurring
}

// Source selects where the CLI reads the household from.
type Source struct {
	File     string
	Endpoint string
	Mock     bool
	Timeout  time.Duration
}

// LoadState reads the household from the selected source. An endpoint
// takes precedence over a file, and a file over the mock household.
func LoadState(ctx context.Context, src Source) (*domain.BudgetState, error) {
	switch {
	case src.Endpoint != "":
		return sheets.NewStateRepository(src.Endpoint, src.Timeout).GetState(ctx)
	case src.File != "":
		return LoadScenarioFile(src.File)
	case src.Mock:
		return memory.MockState(), nil
	default:
		return nil, ErrNoSource
	}
}

// LoadScenarioFile decodes and validates a TOML scenario.
func LoadScenarioFile(path string) (*domain.BudgetState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	return decodeScenario(path, string(data))
}

// decodeScenario parses a scenario, rejecting keys the Scenario type does
// not know so that a typo never silently becomes a zero amount.
func decodeScenario(name, data string) (*domain.BudgetState, error) {
	var sc Scenario
	md, err := toml.Decode(data, &sc)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("%s: unknown keys %s: %w", name, strings.Join(keys, ", "), domain.ErrInvalidInput)
	}
	return sc.State()
}

// State converts the scenario into a validated budget state. Entries
// without an id get a generated one.
func (sc *Scenario) State() (*domain.BudgetState, error) {
	balance := decimal.NewFromInt(sc.CurrentBalance)

	cards := make([]domain.CreditCard, 0, len(sc.CreditCards))
	for _, c := range sc.CreditCards {
		cards = append(cards, domain.CreditCard{
			ID:             c.ID,
			Name:           c.Name,
			CreditLimit:    decimal.NewFromInt(c.CreditLimit),
			AnchorDay:      c.AnchorDay,
			CurrentBalance: decimal.NewFromInt(c.CurrentBalance),
		})
	}

	expenses := make([]domain.Expense, 0, len(sc.Expenses))
	for _, e := range sc.Expenses {
		expenses = append(expenses, domain.Expense{
			ID:          e.ID,
			Name:        e.Name,
			Amount:      decimal.NewFromInt(e.Amount),
			AnchorDay:   e.AnchorDay,
			IsRecurring: e.recurring(),
		})
	}

	incomes := make([]domain.Income, 0, len(sc.Incomes))
	for _, in := range sc.Incomes {
		incomes = append(incomes, domain.Income{
			ID:          in.ID,
			Name:        in.Name,
			Amount:      decimal.NewFromInt(in.Amount),
			AnchorDay:   in.AnchorDay,
			IsRecurring: in.recurring(),
		})
	}

	patch := &domain.StatePatch{
		CurrentBalance: &balance,
		CreditCards:    &cards,
		Expenses:       &expenses,
		Incomes:        &incomes,
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	patch.AssignMissingIDs(uuid.NewString)

	return patch.Apply(domain.NewBudgetState()), nil
}
