package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/crucial707/expense-tracker/internal/auth"
	"github.com/crucial707/expense-tracker/internal/metrics"
	"github.com/crucial707/expense-tracker/internal/models"
	"github.com/crucial707/expense-tracker/internal/service"
)

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Credentials *service.Credentials
	Auth        *auth.Authenticator

	// SecureCookie marks the session cookie Secure; set when serving TLS.
	SecureCookie bool
}

type credentialsInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ==========================
// Register
// ==========================
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input credentialsInput
	if !decodeAndValidate(w, r, &input, msgCredentialsNeeded) {
		return
	}

	if _, err := h.Credentials.Register(r.Context(), input.Username, input.Password); err != nil {
		switch {
		case errors.Is(err, models.ErrDuplicateUsername):
			JSONError(w, msgDuplicateUsername, http.StatusBadRequest)
		case errors.Is(err, models.ErrPasswordTooLong):
			JSONError(w, msgPasswordTooLong, http.StatusBadRequest)
		case errors.Is(err, models.ErrInvalidInput):
			JSONError(w, msgCredentialsNeeded, http.StatusBadRequest)
		default:
			logInternal(r, "register", err)
			JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		}
		return
	}

	JSONMessage(w, http.StatusCreated, "User registered successfully", nil)
}

// ==========================
// Login
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input credentialsInput
	if !decodeAndValidate(w, r, &input, msgCredentialsNeeded) {
		return
	}

	session, err := h.Auth.Login(r.Context(), strings.TrimSpace(input.Username), input.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			metrics.IncLogin(false)
			JSONError(w, msgBadCredentials, http.StatusUnauthorized)
			return
		}
		logInternal(r, "login", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	metrics.IncLogin(true)

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	JSONMessage(w, http.StatusOK, "Login successful", map[string]any{"token": session.Token})
}

// ==========================
// Logout (always succeeds)
// ==========================
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Auth.Logout(r.Context(), auth.TokenFromRequest(r)); err != nil {
		logInternal(r, "logout", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	JSONMessage(w, http.StatusOK, "Logged out successfully", nil)
}
