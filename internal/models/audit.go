package models

import "time"

// AuditAction is the kind of expense mutation an audit entry records.
type AuditAction string

const (
	ActionAdd    AuditAction = "add"
	ActionEdit   AuditAction = "edit"
	ActionDelete AuditAction = "delete"
)

// AuditEntry represents one audit log row. ExpenseID may point at an
// expense that has since been deleted.
type AuditEntry struct {
	ID        int         `json:"id"`
	UserID    int         `json:"user_id"`
	Action    AuditAction `json:"action"`
	ExpenseID int         `json:"expense_id"`
	Timestamp time.Time   `json:"timestamp"`
}
