package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks missing or malformed request fields.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAmountOutOfRange: the amount does not fit NUMERIC(14,2).
	ErrAmountOutOfRange = fmt.Errorf("amount out of range: %w", ErrInvalidInput)

	// ErrCategoryRequired: category missing or blank.
	ErrCategoryRequired = fmt.Errorf("category is required: %w", ErrInvalidInput)

	// ErrPasswordTooLong: bcrypt only reads the first 72 bytes.
	ErrPasswordTooLong = fmt.Errorf("password longer than 72 bytes: %w", ErrInvalidInput)

	// ErrDuplicateUsername is returned when registering a taken username.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrInvalidCredentials covers both an unknown user and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthenticated means no valid session is attached to the request.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrNotFound covers both missing rows and rows owned by someone else.
	ErrNotFound = errors.New("not found")
)
