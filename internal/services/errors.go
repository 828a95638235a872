package services

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials is the single error returned for any failed login
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUploadNotConfigured is returned when no media host credentials are set
	ErrUploadNotConfigured = errors.New("media host not configured")
)

// ValidationError reports a missing or malformed input field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
