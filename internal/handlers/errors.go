package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/crucial707/expense-tracker/internal/models"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// ErrMessageInternal is the generic message for 500 responses. Do not expose internal details to clients.
const ErrMessageInternal = "internal server error"

const (
	msgInvalidJSON       = "invalid JSON"
	msgValidationFailed  = "validation failed"
	msgCredentialsNeeded = "Username and password are required"
	msgDuplicateUsername = "Username already exists"
	msgBadCredentials    = "Invalid username or password"
	msgUnauthorized      = "Unauthorized"
	msgExpenseNotFound   = "Expense not found"
	msgInvalidAmount     = "Amount must be less than 1000000000000 with at most 2 decimal places"
	msgCategoryRequired  = "Category is required"
	msgInvalidInput      = "Invalid input"
	msgPasswordTooLong   = "Password must be at most 72 bytes"
)

// JSONError sends a JSON error response with a single "error" field.
func JSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// JSONValidationError sends a JSON error response with "error" and optional "fields" for field-level details.
// status is typically http.StatusBadRequest (400).
func JSONValidationError(w http.ResponseWriter, message string, fields map[string]string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	out := map[string]interface{}{"error": message}
	if len(fields) > 0 {
		out["fields"] = fields
	}
	json.NewEncoder(w).Encode(out)
}

// JSONMessage sends {"message": message} plus any extra fields.
func JSONMessage(w http.ResponseWriter, status int, message string, extra map[string]any) {
	out := map[string]any{"message": message}
	for k, v := range extra {
		out[k] = v
	}
	writeJSON(w, status, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeExpenseError maps a service error to a response. Anything not
// classified is logged and answered with 500.
func writeExpenseError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		JSONError(w, msgExpenseNotFound, http.StatusNotFound)
	case errors.Is(err, models.ErrAmountOutOfRange):
		JSONError(w, msgInvalidAmount, http.StatusBadRequest)
	case errors.Is(err, models.ErrCategoryRequired):
		JSONError(w, msgCategoryRequired, http.StatusBadRequest)
	case errors.Is(err, models.ErrInvalidInput):
		JSONError(w, msgInvalidInput, http.StatusBadRequest)
	case errors.Is(err, models.ErrUnauthenticated):
		JSONError(w, msgUnauthorized, http.StatusUnauthorized)
	default:
		logInternal(r, op, err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
	}
}

func logInternal(r *http.Request, op string, err error) {
	slog.Error(op,
		"request_id", chimw.GetReqID(r.Context()),
		"err", err)
}
