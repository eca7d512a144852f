package service

import (
	"context"
	"database/sql"
	"strings"

	"github.com/crucial707/expense-tracker/internal/db"
	"github.com/crucial707/expense-tracker/internal/metrics"
	"github.com/crucial707/expense-tracker/internal/models"
	"github.com/crucial707/expense-tracker/internal/repo"
	"github.com/shopspring/decimal"
)

// Expenses runs owner-scoped expense operations. Each mutation and its audit
// entry commit in one transaction: if the audit insert fails the mutation is
// rolled back.
type Expenses struct {
	DB *sql.DB
}

// NewExpenses returns an Expenses service over conn.
func NewExpenses(conn *sql.DB) *Expenses {
	return &Expenses{DB: conn}
}

// Create stores a new expense for ownerID and audits it as "add".
func (s *Expenses) Create(ctx context.Context, ownerID int, amount decimal.Decimal, category, description string) (*models.Expense, error) {
	if strings.TrimSpace(category) == "" {
		return nil, models.ErrCategoryRequired
	}
	amount, err := checkAmount(amount)
	if err != nil {
		return nil, err
	}

	var created *models.Expense
	err = db.WithTx(ctx, s.DB, func(ctx context.Context, tx db.DBTX) error {
		e, err := repo.NewExpenseRepo(tx).Create(ctx, ownerID, amount, category, description)
		if err != nil {
			return err
		}
		if err := repo.NewAuditRepo(tx).Record(ctx, ownerID, models.ActionAdd, e.ID); err != nil {
			return err
		}
		created = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.IncExpenseMutation(string(models.ActionAdd))
	return created, nil
}

const (
	// maxAmountIntDigits is the integer part NUMERIC(14,2) can hold.
	maxAmountIntDigits = 12
	// minAmountExponent bounds how many (zero) fractional digits are accepted.
	minAmountExponent = -20
)

// checkAmount rejects amounts that do not fit NUMERIC(14,2): magnitude of
// 1e12 or more, or more than two decimal places. It works on digit count
// and exponent only, so huge exponents are never expanded.
func checkAmount(a decimal.Decimal) (decimal.Decimal, error) {
	if a.IsZero() {
		return decimal.Zero, nil
	}
	exp := a.Exponent()
	if exp < minAmountExponent || a.NumDigits()+int(exp) > maxAmountIntDigits {
		return decimal.Decimal{}, models.ErrAmountOutOfRange
	}
	if exp < -2 && !a.Equal(a.Truncate(2)) {
		return decimal.Decimal{}, models.ErrAmountOutOfRange
	}
	return a, nil
}

// List returns every expense owned by ownerID.
func (s *Expenses) List(ctx context.Context, ownerID int) ([]models.Expense, error) {
	return repo.NewExpenseRepo(s.DB).ListByOwner(ctx, ownerID)
}

// Find returns models.ErrNotFound for missing and foreign expenses alike.
func (s *Expenses) Find(ctx context.Context, id, ownerID int) (*models.Expense, error) {
	return repo.NewExpenseRepo(s.DB).FindOwned(ctx, id, ownerID)
}

// Update applies a partial update and audits it as "edit".
func (s *Expenses) Update(ctx context.Context, id, ownerID int, upd models.ExpenseUpdate) (*models.Expense, error) {
	if upd.Category != nil && strings.TrimSpace(*upd.Category) == "" {
		return nil, models.ErrCategoryRequired
	}
	if upd.Amount != nil {
		amount, err := checkAmount(*upd.Amount)
		if err != nil {
			return nil, err
		}
		upd.Amount = &amount
	}

	var updated *models.Expense
	err := db.WithTx(ctx, s.DB, func(ctx context.Context, tx db.DBTX) error {
		e, err := repo.NewExpenseRepo(tx).Update(ctx, id, ownerID, upd)
		if err != nil {
			return err
		}
		if err := repo.NewAuditRepo(tx).Record(ctx, ownerID, models.ActionEdit, e.ID); err != nil {
			return err
		}
		updated = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.IncExpenseMutation(string(models.ActionEdit))
	return updated, nil
}

// Delete removes the expense permanently and audits it as "delete". A
// second delete of the same id returns models.ErrNotFound.
func (s *Expenses) Delete(ctx context.Context, id, ownerID int) error {
	err := db.WithTx(ctx, s.DB, func(ctx context.Context, tx db.DBTX) error {
		if err := repo.NewExpenseRepo(tx).Delete(ctx, id, ownerID); err != nil {
			return err
		}
		return repo.NewAuditRepo(tx).Record(ctx, ownerID, models.ActionDelete, id)
	})
	if err != nil {
		return err
	}

	metrics.IncExpenseMutation(string(models.ActionDelete))
	return nil
}

// History returns the audit trail of userID's own mutations, newest first.
func (s *Expenses) History(ctx context.Context, userID int) ([]models.AuditEntry, error) {
	return repo.NewAuditRepo(s.DB).ListByUser(ctx, userID)
}
