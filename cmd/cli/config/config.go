package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultAPIURL = "http://localhost:8080"
	tokenFileName = ".expense_token"
)

// ErrNoToken means no session token is stored; the user must log in.
var ErrNoToken = errors.New("not logged in: run `expense users login` first")

// APIURL returns the base URL for the expense API.
// It can be overridden with the EXPENSE_API_URL environment variable.
func APIURL() string {
	if v := os.Getenv("EXPENSE_API_URL"); v != "" {
		return strings.TrimRight(v, "/")
	}
	return defaultAPIURL
}

// TokenPath is where the session token is kept, ~/.expense_token unless
// EXPENSE_TOKEN_FILE says otherwise.
func TokenPath() string {
	if v := os.Getenv("EXPENSE_TOKEN_FILE"); v != "" {
		return v
	}
	dir, err := os.UserHomeDir()
	if err != nil {
		return tokenFileName
	}
	return filepath.Join(dir, tokenFileName)
}

// SaveToken stores token readable only by the current user.
func SaveToken(token string) error {
	return os.WriteFile(TokenPath(), []byte(token), 0o600)
}

// LoadToken returns ErrNoToken when nothing is stored.
func LoadToken() (string, error) {
	data, err := os.ReadFile(TokenPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("read token: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// ClearToken removes the stored token. It reports whether one existed.
func ClearToken() (bool, error) {
	err := os.Remove(TokenPath())
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}
