package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts go over the wire as bare JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Expense is one spending record. OwnerID is never serialized; every query
// that reads or mutates an expense is bound to it.
type Expense struct {
	ID          int             `json:"id"`
	OwnerID     int             `json:"-"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ExpenseUpdate is a partial update. Nil fields keep their stored value.
type ExpenseUpdate struct {
	Amount      *decimal.Decimal
	Category    *string
	Description *string
}
