package repo

import (
	"context"
	"fmt"

	"github.com/crucial707/expense-tracker/internal/db"
	"github.com/crucial707/expense-tracker/internal/models"
)

// AuditRepo persists audit log entries. The log is append-only: there is no
// update or delete.
type AuditRepo struct {
	db db.DBTX
}

// NewAuditRepo returns a new AuditRepo.
func NewAuditRepo(conn db.DBTX) *AuditRepo {
	return &AuditRepo{db: conn}
}

// Record appends one entry. It does not check that expenseID still exists.
func (r *AuditRepo) Record(ctx context.Context, userID int, action models.AuditAction, expenseID int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_log (user_id, action, expense_id) VALUES ($1, $2, $3)`,
		userID, string(action), expenseID,
	)
	if err != nil {
		return fmt.Errorf("record audit %s expense %d: %w", action, expenseID, err)
	}
	return nil
}

// ListByUser returns the entries recorded for userID, newest first.
func (r *AuditRepo) ListByUser(ctx context.Context, userID int) ([]models.AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, action, expense_id, created_at FROM audit_log WHERE user_id = $1 ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.AuditEntry{}
	for rows.Next() {
		var e models.AuditEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.ExpenseID, &e.Timestamp); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
