package handlers

import (
	"net/http"

	"github.com/crucial707/expense-tracker/internal/middleware"
	"github.com/crucial707/expense-tracker/internal/models"
	"github.com/crucial707/expense-tracker/internal/service"
	"github.com/shopspring/decimal"
)

type ExpenseHandler struct {
	Service *service.Expenses
}

// currentUser returns the session user or writes 401.
func currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	u := middleware.CurrentUser(r.Context())
	if u == nil {
		JSONError(w, msgUnauthorized, http.StatusUnauthorized)
		return nil, false
	}
	return u, true
}

//
// ==========================
// Add Expense
// ==========================
//

func (h *ExpenseHandler) Add(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var input struct {
		Amount      *decimal.Decimal `json:"amount" validate:"required"`
		Category    string           `json:"category" validate:"required,max=64"`
		Description string           `json:"description" validate:"max=1000"`
	}
	if !decodeAndValidate(w, r, &input, msgValidationFailed) {
		return
	}

	e, err := h.Service.Create(r.Context(), user.ID, *input.Amount, input.Category, input.Description)
	if err != nil {
		writeExpenseError(w, r, "add expense", err)
		return
	}

	JSONMessage(w, http.StatusCreated, "Expense added successfully", map[string]any{"id": e.ID})
}

//
// ==========================
// List Expenses
// ==========================
//

func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	expenses, err := h.Service.List(r.Context(), user.ID)
	if err != nil {
		writeExpenseError(w, r, "list expenses", err)
		return
	}

	writeJSON(w, http.StatusOK, expenses)
}

//
// ==========================
// Edit Expense (partial)
// ==========================
//

func (h *ExpenseHandler) Edit(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var input struct {
		ID          int              `json:"id" validate:"required,gt=0"`
		Amount      *decimal.Decimal `json:"amount"`
		Category    *string          `json:"category" validate:"omitnil,max=64"`
		Description *string          `json:"description" validate:"omitnil,max=1000"`
	}
	if !decodeAndValidate(w, r, &input, msgValidationFailed) {
		return
	}

	upd := models.ExpenseUpdate{
		Amount:      input.Amount,
		Category:    input.Category,
		Description: input.Description,
	}
	if _, err := h.Service.Update(r.Context(), input.ID, user.ID, upd); err != nil {
		writeExpenseError(w, r, "edit expense", err)
		return
	}

	JSONMessage(w, http.StatusOK, "Expense updated successfully", nil)
}

//
// ==========================
// Delete Expense
// ==========================
//

func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var input struct {
		ID int `json:"id" validate:"required,gt=0"`
	}
	if !decodeAndValidate(w, r, &input, msgValidationFailed) {
		return
	}

	if err := h.Service.Delete(r.Context(), input.ID, user.ID); err != nil {
		writeExpenseError(w, r, "delete expense", err)
		return
	}

	JSONMessage(w, http.StatusOK, "Expense deleted successfully", nil)
}
