package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/crucial707/expense-tracker/internal/db"
	"github.com/crucial707/expense-tracker/internal/models"
	"github.com/shopspring/decimal"
)

// Every statement below filters on user_id. There is no way
// to address an expense by id alone.

const expenseColumns = `id, user_id, amount, category, description, created_at`

// ========================
// REPOSITORY STRUCT
// ========================

type ExpenseRepo struct {
	DB db.DBTX
}

func NewExpenseRepo(conn db.DBTX) *ExpenseRepo {
	return &ExpenseRepo{DB: conn}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (*models.Expense, error) {
	var e models.Expense
	if err := row.Scan(&e.ID, &e.OwnerID, &e.Amount, &e.Category, &e.Description, &e.CreatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

// ========================
// CREATE EXPENSE
// ========================

func (r *ExpenseRepo) Create(ctx context.Context, ownerID int, amount decimal.Decimal, category, description string) (*models.Expense, error) {
	row := r.DB.QueryRowContext(ctx,
		`INSERT INTO expenses (user_id, amount, category, description)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+expenseColumns,
		ownerID, amount, category, description,
	)
	e, err := scanExpense(row)
	if err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	return e, nil
}

// ========================
// LIST EXPENSES FOR OWNER
// ========================

// ListByOwner returns every expense owned by ownerID, oldest first. It
// returns an empty slice, never nil, when the owner has none.
func (r *ExpenseRepo) ListByOwner(ctx context.Context, ownerID int) ([]models.Expense, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+expenseColumns+`
		 FROM expenses
		 WHERE user_id = $1
		 ORDER BY created_at, id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, *e)
	}
	return expenses, rows.Err()
}

// ========================
// FIND OWNED EXPENSE
// ========================

// FindOwned returns models.ErrNotFound both when the expense does not exist
// and when it belongs to another user.
func (r *ExpenseRepo) FindOwned(ctx context.Context, id, ownerID int) (*models.Expense, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+expenseColumns+`
		 FROM expenses
		 WHERE id = $1 AND user_id = $2`,
		id, ownerID,
	)
	e, err := scanExpense(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("find expense %d: %w", id, err)
	}
	return e, nil
}

// ========================
// UPDATE OWNED EXPENSE
// ========================

// Update applies a partial update. NULL parameters fall through COALESCE,
// so absent fields keep their stored value.
func (r *ExpenseRepo) Update(ctx context.Context, id, ownerID int, upd models.ExpenseUpdate) (*models.Expense, error) {
	row := r.DB.QueryRowContext(ctx,
		`UPDATE expenses
		 SET amount = COALESCE($3, amount),
		     category = COALESCE($4, category),
		     description = COALESCE($5, description)
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+expenseColumns,
		id, ownerID, upd.Amount, upd.Category, upd.Description,
	)
	e, err := scanExpense(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("update expense %d: %w", id, err)
	}
	return e, nil
}

// ========================
// DELETE OWNED EXPENSE
// ========================

func (r *ExpenseRepo) Delete(ctx context.Context, id, ownerID int) error {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM expenses WHERE id = $1 AND user_id = $2`,
		id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("delete expense %d: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrNotFound
	}
	return nil
}
