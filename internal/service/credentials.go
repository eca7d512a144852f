// Package service holds the operations handlers delegate to: credential
// registration and owner-scoped expense mutations with their audit trail.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/crucial707/expense-tracker/internal/auth"
	"github.com/crucial707/expense-tracker/internal/models"
	"github.com/crucial707/expense-tracker/internal/repo"
)

// Credentials is the credential store: it registers users and looks them up.
type Credentials struct {
	Users  *repo.UserRepo
	Hasher *auth.PasswordHasher
}

// Register hashes password and stores a new user under the trimmed username. It fails with
// models.ErrInvalidInput when a field is empty and models.ErrDuplicateUsername
// when the username is taken.
func (c *Credentials) Register(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password are required: %w", models.ErrInvalidInput)
	}

	hash, err := c.Hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	return c.Users.Create(ctx, username, hash)
}

// FindByUsername returns models.ErrNotFound when no such user exists.
func (c *Credentials) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return c.Users.GetByUsername(ctx, username)
}
