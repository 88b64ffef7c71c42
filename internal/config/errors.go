package config

import "fmt"

// ValidationError indicates one config value is invalid.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a user-facing validation error message.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NotFoundError indicates the config file does not exist.
type NotFoundError struct {
	Path string
}

// Error returns a user-facing missing-config message.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("config file under '%s' not found", e.Path)
}

// NewValidationError constructs a validation error.
func NewValidationError(field, message string) error {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// WrapError adds config operation context while preserving the original error.
func WrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("config %s: %w", op, err)
}
