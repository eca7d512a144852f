package handlers

import (
	"net/http"

	"github.com/crucial707/expense-tracker/internal/service"
)

// AuditHandler serves the caller's own audit trail.
type AuditHandler struct {
	Service *service.Expenses
}

// ListAudit returns every audit entry recorded for the session user, newest first.
func (h *AuditHandler) ListAudit(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	entries, err := h.Service.History(r.Context(), user.ID)
	if err != nil {
		writeExpenseError(w, r, "list audit", err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}
