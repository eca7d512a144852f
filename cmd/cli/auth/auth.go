// Package auth is the CLI's HTTP client: it sends JSON to the API and
// attaches the stored session token as a Bearer header.
package auth

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/crucial707/expense-tracker/cmd/cli/config"
)

var client = &http.Client{Timeout: 15 * time.Second}

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.Status, e.Message)
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// Call sends payload (when non-nil) as JSON and decodes a 2xx response into
// out (when non-nil). The stored token is sent if one exists.
func Call(method, path string, payload, out any) error {
	token, err := config.LoadToken()
	if err != nil && !errors.Is(err, config.ErrNoToken) {
		return err
	}
	return callWithToken(method, path, token, payload, out)
}

// CallAuthenticated is Call but fails early with config.ErrNoToken when the
// user is not logged in.
func CallAuthenticated(method, path string, payload, out any) error {
	token, err := config.LoadToken()
	if err != nil {
		return err
	}
	return callWithToken(method, path, token, payload, out)
}

func callWithToken(method, path, token string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, config.APIURL()+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(data)}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// errorMessage pulls "error" out of a JSON error body, falling back to the raw text.
func errorMessage(body []byte) string {
	var e struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		msg := e.Error
		for f, rule := range e.Fields {
			msg += fmt.Sprintf("; %s: %s", f, rule)
		}
		return msg
	}
	return string(bytes.TrimSpace(body))
}
