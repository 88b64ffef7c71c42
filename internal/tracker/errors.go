package tracker

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// statusError is a non-2xx response from the tracker API.
type statusError struct {
	StatusCode int
	Err        error
}

func newStatusError(code int, message string) *statusError {
	if strings.TrimSpace(message) == "" {
		message = http.StatusText(code)
	}
	return &statusError{StatusCode: code, Err: errors.New(message)}
}

func (e *statusError) Error() string {
	return fmt.Sprintf("http status %d: %v", e.StatusCode, e.Err)
}

func (e *statusError) Unwrap() error {
	return e.Err
}

// StatusCode extracts the HTTP status code of a tracker response error.
func StatusCode(err error) (int, bool) {
	var stErr *statusError
	if errors.As(err, &stErr) {
		return stErr.StatusCode, true
	}
	return 0, false
}

// IsAuthError reports whether the tracker rejected the credentials.
// A 403 caused by rate limiting is not an auth failure.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}

	text := strings.ToLower(err.Error())
	if strings.Contains(text, "rate limit") {
		return false
	}

	if code, ok := StatusCode(err); ok {
		return code == http.StatusUnauthorized || code == http.StatusForbidden
	}
	for _, marker := range []string{"status 401", "status 403", "unauthorized", "forbidden"} {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}
