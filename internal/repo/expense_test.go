package repo

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/crucial707/expense-tracker/internal/models"
	"github.com/shopspring/decimal"
)

var expenseCols = []string{"id", "user_id", "amount", "category", "description", "created_at"}

func strPtr(s string) *string { return &s }

func TestExpenseRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO expenses \(user_id, amount, category, description\)`).
		WithArgs(7, decimal.NewFromInt(51), "Food", "Test description").
		WillReturnRows(sqlmock.NewRows(expenseCols).AddRow(1, 7, "51.00", "Food", "Test description", now))

	repo := NewExpenseRepo(db)
	e, err := repo.Create(context.Background(), 7, decimal.NewFromInt(51), "Food", "Test description")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if e.ID != 1 || e.OwnerID != 7 || e.Category != "Food" || !e.Amount.Equal(decimal.NewFromInt(51)) {
		t.Errorf("unexpected expense: %+v", e)
	}
	if !e.CreatedAt.Equal(now) {
		t.Errorf("created_at: got %v, want %v", e.CreatedAt, now)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestExpenseRepo_ListByOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT id, user_id, amount, category, description, created_at\s+FROM expenses\s+WHERE user_id = \$1\s+ORDER BY created_at, id`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(expenseCols).
			AddRow(1, 7, "10.50", "Food", "", now).
			AddRow(2, 7, "-3.25", "Refund", "returned", now))

	repo := NewExpenseRepo(db)
	list, err := repo.ListByOwner(context.Background(), 7)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(list) != 2 || list[0].Category != "Food" || list[1].Category != "Refund" {
		t.Fatalf("unexpected list: %+v", list)
	}
	if !list[1].Amount.Equal(decimal.RequireFromString("-3.25")) {
		t.Errorf("signed amount lost: %s", list[1].Amount)
	}
	for _, e := range list {
		if e.OwnerID != 7 {
			t.Errorf("expense %d has owner %d, want 7", e.ID, e.OwnerID)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestExpenseRepo_ListByOwner_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`FROM expenses\s+WHERE user_id = \$1`).
		WithArgs(8).
		WillReturnRows(sqlmock.NewRows(expenseCols))

	repo := NewExpenseRepo(db)
	list, err := repo.ListByOwner(context.Background(), 8)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", list)
	}
}

func TestExpenseRepo_FindOwned(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`WHERE id = \$1 AND user_id = \$2`).
		WithArgs(3, 7).
		WillReturnRows(sqlmock.NewRows(expenseCols).AddRow(3, 7, "12", "Books", "novel", time.Now()))

	repo := NewExpenseRepo(db)
	e, err := repo.FindOwned(context.Background(), 3, 7)
	if err != nil {
		t.Fatalf("FindOwned: %v", err)
	}
	if e.ID != 3 || e.Description != "novel" {
		t.Errorf("unexpected expense: %+v", e)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

// A row owned by someone else looks exactly like a missing row.
func TestExpenseRepo_FindOwned_OtherOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`WHERE id = \$1 AND user_id = \$2`).
		WithArgs(3, 99).
		WillReturnError(sql.ErrNoRows)

	repo := NewExpenseRepo(db)
	_, err = repo.FindOwned(context.Background(), 3, 99)
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestExpenseRepo_Update_Partial(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	amount := decimal.RequireFromString("60.0")
	mock.ExpectQuery(`UPDATE expenses\s+SET amount = COALESCE\(\$3, amount\)`).
		WithArgs(3, 7, decimal.NewFromInt(60), nil, nil).
		WillReturnRows(sqlmock.NewRows(expenseCols).AddRow(3, 7, "60.00", "Food", "Test description", time.Now()))

	repo := NewExpenseRepo(db)
	e, err := repo.Update(context.Background(), 3, 7, models.ExpenseUpdate{Amount: &amount})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !e.Amount.Equal(amount) || e.Category != "Food" || e.Description != "Test description" {
		t.Errorf("unexpected expense: %+v", e)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestExpenseRepo_Update_AllFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	amount := decimal.NewFromInt(60)
	mock.ExpectQuery(`UPDATE expenses`).
		WithArgs(3, 7, amount, "Travel", "Travel test").
		WillReturnRows(sqlmock.NewRows(expenseCols).AddRow(3, 7, "60", "Travel", "Travel test", time.Now()))

	repo := NewExpenseRepo(db)
	e, err := repo.Update(context.Background(), 3, 7, models.ExpenseUpdate{
		Amount:      &amount,
		Category:    strPtr("Travel"),
		Description: strPtr("Travel test"),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if e.Category != "Travel" || e.Description != "Travel test" {
		t.Errorf("unexpected expense: %+v", e)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestExpenseRepo_Update_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`UPDATE expenses`).
		WithArgs(3, 99, nil, strPtr("Hack"), nil).
		WillReturnError(sql.ErrNoRows)

	repo := NewExpenseRepo(db)
	_, err = repo.Update(context.Background(), 3, 99, models.ExpenseUpdate{Category: strPtr("Hack")})
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestExpenseRepo_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`DELETE FROM expenses WHERE id = \$1 AND user_id = \$2`).
		WithArgs(3, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewExpenseRepo(db)
	if err := repo.Delete(context.Background(), 3, 7); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestExpenseRepo_Delete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`DELETE FROM expenses WHERE id = \$1 AND user_id = \$2`).
		WithArgs(3, 7).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewExpenseRepo(db)
	if err := repo.Delete(context.Background(), 3, 7); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
