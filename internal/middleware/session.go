package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/crucial707/expense-tracker/internal/auth"
	"github.com/crucial707/expense-tracker/internal/models"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const userKey ctxKey = "user"

// WithUser returns a copy of ctx carrying the authenticated user.
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// CurrentUser returns the user placed on ctx by RequireSession, or nil.
func CurrentUser(ctx context.Context) *models.User {
	u, _ := ctx.Value(userKey).(*models.User)
	return u
}

// RequireSession resolves the session token on each request and rejects
// the request with 401 unless it names a live session.
func RequireSession(a *auth.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := a.Resolve(r.Context(), auth.TokenFromRequest(r))
			if err != nil {
				if errors.Is(err, models.ErrUnauthenticated) {
					writeError(w, http.StatusUnauthorized, "Unauthorized")
					return
				}
				slog.Error("resolve session",
					"request_id", chimw.GetReqID(r.Context()),
					"err", err)
				writeError(w, http.StatusInternalServerError, "internal server error")
				return
			}
			noteUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
