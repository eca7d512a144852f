package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/crucial707/expense-tracker/internal/models"
	"github.com/crucial707/expense-tracker/internal/repo"
	"github.com/google/uuid"
)

// CookieName is the cookie carrying the session token.
const CookieName = "session"

// DefaultSessionTTL is the fixed lifetime of a session. Sessions are not
// renewed on activity.
const DefaultSessionTTL = 24 * time.Hour

// Session is what a successful login hands back to the caller.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

// Authenticator establishes, resolves and ends sessions. Session rows live
// in Postgres; the token is a signed JWT whose jti names the row.
type Authenticator struct {
	Users    *repo.UserRepo
	Sessions *repo.SessionRepo
	Hasher   *PasswordHasher
	Secret   []byte
	TTL      time.Duration

	// Now is the clock; tests replace it.
	Now func() time.Time
}

func (a *Authenticator) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *Authenticator) ttl() time.Duration {
	if a.TTL > 0 {
		return a.TTL
	}
	return DefaultSessionTTL
}

// Login verifies credentials and opens a session. Unknown usernames and
// wrong passwords both return models.ErrInvalidCredentials.
func (a *Authenticator) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := a.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			a.Hasher.burn(password)
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}
	if !a.Hasher.Verify(password, user.PasswordHash) {
		return nil, models.ErrInvalidCredentials
	}

	now := a.now()
	s := &models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: now.Add(a.ttl()),
	}
	if err := a.Sessions.Create(ctx, s); err != nil {
		return nil, err
	}

	token, err := issueToken(a.Secret, s.ID, user.ID, now, s.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &Session{Token: token, ExpiresAt: s.ExpiresAt, User: user}, nil
}

// Resolve maps a token to its user. Any token that is missing, malformed,
// expired or whose session row is gone yields models.ErrUnauthenticated.
func (a *Authenticator) Resolve(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, models.ErrUnauthenticated
	}
	sessionID, err := parseToken(a.Secret, token, a.now)
	if err != nil {
		return nil, models.ErrUnauthenticated
	}
	user, err := a.Sessions.GetUser(ctx, sessionID, a.now())
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}

// Logout ends the session named by token. Tokens that do not parse, and
// sessions already gone, are silently ignored.
func (a *Authenticator) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	// Expired tokens still name a row worth deleting, so expiry is not checked here.
	sessionID, err := parseToken(a.Secret, token, func() time.Time { return time.Unix(0, 0) })
	if err != nil {
		return nil
	}
	return a.Sessions.Delete(ctx, sessionID)
}

// TokenFromRequest returns the session token from the session cookie or,
// failing that, from an "Authorization: Bearer" header.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}
