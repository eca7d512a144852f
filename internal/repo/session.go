package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/crucial707/expense-tracker/internal/db"
	"github.com/crucial707/expense-tracker/internal/models"
)

// SessionRepo persists server-side login sessions.
type SessionRepo struct {
	DB db.DBTX
}

// NewSessionRepo returns a new SessionRepo.
func NewSessionRepo(conn db.DBTX) *SessionRepo {
	return &SessionRepo{DB: conn}
}

// Create inserts s and fills in its CreatedAt.
func (r *SessionRepo) Create(ctx context.Context, s *models.Session) error {
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO sessions (id, user_id, expires_at) VALUES ($1, $2, $3) RETURNING created_at`,
		s.ID, s.UserID, s.ExpiresAt,
	).Scan(&s.CreatedAt)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// GetUser returns the user owning an unexpired session. Missing and expired
// sessions both yield models.ErrNotFound.
func (r *SessionRepo) GetUser(ctx context.Context, sessionID string, now time.Time) (*models.User, error) {
	query := `
		SELECT u.id, u.username, u.password_hash, u.created_at
		FROM sessions s
		JOIN users u ON s.user_id = u.id
		WHERE s.id = $1 AND s.expires_at > $2
	`

	user := &models.User{}
	err := r.DB.QueryRowContext(ctx, query, sessionID, now).
		Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return user, nil
}

// Delete removes a session. Deleting a missing session is not an error.
func (r *SessionRepo) Delete(ctx context.Context, sessionID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, sessionID)
	return err
}

// DeleteExpired removes every session that expired at or before now and
// reports how many were removed.
func (r *SessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
