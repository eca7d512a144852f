package main

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/crucial707/expense-tracker/internal/auth"
	"github.com/crucial707/expense-tracker/internal/config"
	"github.com/crucial707/expense-tracker/internal/handlers"
	"github.com/crucial707/expense-tracker/internal/middleware"
	"github.com/crucial707/expense-tracker/internal/repo"
	"github.com/crucial707/expense-tracker/internal/service"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newRouter wires repositories, services and handlers onto a chi router.
func newRouter(database *sql.DB, cfg config.Config) http.Handler {
	users := repo.NewUserRepo(database)
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	authenticator := &auth.Authenticator{
		Users:    users,
		Sessions: repo.NewSessionRepo(database),
		Hasher:   hasher,
		Secret:   []byte(cfg.SessionSecret),
		TTL:      cfg.SessionTTL,
	}
	expenses := service.NewExpenses(database)

	authHandler := &handlers.AuthHandler{
		Credentials:  &service.Credentials{Users: users, Hasher: hasher},
		Auth:         authenticator,
		SecureCookie: cfg.TLSEnabled(),
	}
	expenseHandler := &handlers.ExpenseHandler{Service: expenses}
	auditHandler := &handlers.AuditHandler{Service: expenses}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(cfg.TLSEnabled()))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.MaxBytes(cfg.MaxBodyBytes))

	// ==========================
	// Probes
	// ==========================
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := database.PingContext(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("database unavailable"))
			return
		}
		w.Write([]byte("ready"))
	})
	r.Handle("/metrics", promhttp.Handler())

	// ==========================
	// Public
	// ==========================
	r.Post("/register", authHandler.Register)
	r.Post("/login", authHandler.Login)
	r.Post("/logout", authHandler.Logout)

	// ==========================
	// Session required
	// ==========================
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(authenticator))

		r.Post("/add", expenseHandler.Add)
		r.Get("/list", expenseHandler.List)
		r.Post("/edit", expenseHandler.Edit)
		r.Post("/delete", expenseHandler.Delete)
		r.Get("/audit", auditHandler.ListAudit)
	})

	return r
}
