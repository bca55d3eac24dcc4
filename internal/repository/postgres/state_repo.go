package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/dafibh/kakeibo/kakeibo-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// schema mirrors the spreadsheet layout: one settings row and one table per list.
// position keeps the order the client sent.
const schema = `
CREATE TABLE IF NOT EXISTS settings (
    id              SMALLINT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
    current_balance NUMERIC(15, 0) NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS credit_cards (
    id              TEXT PRIMARY KEY,
    position        INTEGER NOT NULL,
    name            TEXT NOT NULL,
    credit_limit    NUMERIC(15, 0) NOT NULL,
    anchor_day      SMALLINT NOT NULL CHECK (anchor_day BETWEEN 1 AND 31),
    current_balance NUMERIC(15, 0) NOT NULL
);

CREATE TABLE IF NOT EXISTS expenses (
    id           TEXT PRIMARY KEY,
    position     INTEGER NOT NULL,
    name         TEXT NOT NULL,
    amount       NUMERIC(15, 0) NOT NULL,
    anchor_day   SMALLINT NOT NULL CHECK (anchor_day BETWEEN 1 AND 31),
    is_recurring BOOLEAN NOT NULL
);

CREATE TABLE IF NOT EXISTS incomes (
    id           TEXT PRIMARY KEY,
    position     INTEGER NOT NULL,
    name         TEXT NOT NULL,
    amount       NUMERIC(15, 0) NOT NULL,
    anchor_day   SMALLINT NOT NULL CHECK (anchor_day BETWEEN 1 AND 31),
    is_recurring BOOLEAN NOT NULL
);
`

const (
	selectBalanceSQL = `SELECT current_balance FROM settings WHERE id = 1`
	upsertBalanceSQL = `INSERT INTO settings (id, current_balance) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET current_balance = EXCLUDED.current_balance`

	selectCardsSQL    = `SELECT id, name, credit_limit, anchor_day, current_balance FROM credit_cards ORDER BY position`
	selectExpensesSQL = `SELECT id, name, amount, anchor_day, is_recurring FROM expenses ORDER BY position`
	selectIncomesSQL  = `SELECT id, name, amount, anchor_day, is_recurring FROM incomes ORDER BY position`

	insertCardSQL = `INSERT INTO credit_cards (id, position, name, credit_limit, anchor_day, current_balance)
		VALUES ($1, $2, $3, $4, $5, $6)`
	insertExpenseSQL = `INSERT INTO expenses (id, position, name, amount, anchor_day, is_recurring)
		VALUES ($1, $2, $3, $4, $5, $6)`
	insertIncomeSQL = `INSERT INTO incomes (id, position, name, amount, anchor_day, is_recurring)
		VALUES ($1, $2, $3, $4, $5, $6)`
)

// StateRepository implements domain.StateRepository using PostgreSQL
type StateRepository struct {
	pool *pgxpool.Pool
}

// NewStateRepository creates a new StateRepository
func NewStateRepository(pool *pgxpool.Pool) *StateRepository {
	return &StateRepository{pool: pool}
}

// EnsureSchema creates the tables if they do not exist
func (r *StateRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// GetState reads the whole state from a single snapshot
func (r *StateRepository) GetState(ctx context.Context) (*domain.BudgetState, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return nil, fetchError(err)
	}
	defer tx.Rollback(ctx)

	state, err := readState(ctx, tx)
	if err != nil {
		return nil, fetchError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fetchError(err)
	}
	return state, nil
}

// PutState replaces every list present in the patch and returns the stored state
func (r *StateRepository) PutState(ctx context.Context, patch *domain.StatePatch) (*domain.BudgetState, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fetchError(err)
	}
	defer tx.Rollback(ctx)

	if err := writePatch(ctx, tx, patch); err != nil {
		return nil, fetchError(err)
	}

	state, err := readState(ctx, tx)
	if err != nil {
		return nil, fetchError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fetchError(err)
	}
	return state, nil
}

func fetchError(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrFetch, err)
}

func readState(ctx context.Context, tx pgx.Tx) (*domain.BudgetState, error) {
	state := domain.NewBudgetState()

	var balance pgtype.Numeric
	err := tx.QueryRow(ctx, selectBalanceSQL).Scan(&balance)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	state.CurrentBalance = pgNumericToDecimal(balance)

	cards, err := queryList(ctx, tx, selectCardsSQL, func(row pgx.CollectableRow) (domain.CreditCard, error) {
		var c domain.CreditCard
		var limit, current pgtype.Numeric
		var anchor int16
		if err := row.Scan(&c.ID, &c.Name, &limit, &anchor, &current); err != nil {
			return c, err
		}
		c.CreditLimit = pgNumericToDecimal(limit)
		c.CurrentBalance = pgNumericToDecimal(current)
		c.AnchorDay = int(anchor)
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	state.CreditCards = cards

	expenses, err := queryList(ctx, tx, selectExpensesSQL, func(row pgx.CollectableRow) (domain.Expense, error) {
		var e domain.Expense
		var amount pgtype.Numeric
		var anchor int16
		if err := row.Scan(&e.ID, &e.Name, &amount, &anchor, &e.IsRecurring); err != nil {
			return e, err
		}
		e.Amount = pgNumericToDecimal(amount)
		e.AnchorDay = int(anchor)
		return e, nil
	})
	if err != nil {
		return nil, err
	}
	state.Expenses = expenses

	incomes, err := queryList(ctx, tx, selectIncomesSQL, func(row pgx.CollectableRow) (domain.Income, error) {
		var i domain.Income
		var amount pgtype.Numeric
		var anchor int16
		if err := row.Scan(&i.ID, &i.Name, &amount, &anchor, &i.IsRecurring); err != nil {
			return i, err
		}
		i.Amount = pgNumericToDecimal(amount)
		i.AnchorDay = int(anchor)
		return i, nil
	})
	if err != nil {
		return nil, err
	}
	state.Incomes = incomes

	return state, nil
}

func queryList[T any](ctx context.Context, tx pgx.Tx, sql string, scan pgx.RowToFunc[T]) ([]T, error) {
	rows, err := tx.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	items, err := pgx.CollectRows(rows, scan)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func writePatch(ctx context.Context, tx pgx.Tx, patch *domain.StatePatch) error {
	if patch == nil {
		return nil
	}

	batch := &pgx.Batch{}

	if patch.CurrentBalance != nil {
		balance, err := decimalToPgNumeric(*patch.CurrentBalance)
		if err != nil {
			return err
		}
		batch.Queue(upsertBalanceSQL, balance)
	}

	if patch.CreditCards != nil {
		batch.Queue(`DELETE FROM credit_cards`)
		for pos, c := range *patch.CreditCards {
			limit, err := decimalToPgNumeric(c.CreditLimit)
			if err != nil {
				return err
			}
			current, err := decimalToPgNumeric(c.CurrentBalance)
			if err != nil {
				return err
			}
			batch.Queue(insertCardSQL, c.ID, pos, c.Name, limit, int16(c.AnchorDay), current)
		}
	}

	if patch.Expenses != nil {
		batch.Queue(`DELETE FROM expenses`)
		for pos, e := range *patch.Expenses {
			amount, err := decimalToPgNumeric(e.Amount)
			if err != nil {
				return err
			}
			batch.Queue(insertExpenseSQL, e.ID, pos, e.Name, amount, int16(e.AnchorDay), e.IsRecurring)
		}
	}

	if patch.Incomes != nil {
		batch.Queue(`DELETE FROM incomes`)
		for pos, i := range *patch.Incomes {
			amount, err := decimalToPgNumeric(i.Amount)
			if err != nil {
				return err
			}
			batch.Queue(insertIncomeSQL, i.ID, pos, i.Name, amount, int16(i.AnchorDay), i.IsRecurring)
		}
	}

	if batch.Len() == 0 {
		return nil
	}
	return tx.SendBatch(ctx, batch).Close()
}

func decimalToPgNumeric(d decimal.Decimal) (pgtype.Numeric, error) {
	var num pgtype.Numeric
	if err := num.Scan(d.String()); err != nil {
		return pgtype.Numeric{}, err
	}
	return num, nil
}

func pgNumericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}
