package models

import "time"

// Session is a server-side login record. The token handed to clients
// references it by ID.
type Session struct {
	ID        string    `json:"-"`
	UserID    int       `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
