package gateway

import (
	"fmt"

	"github.com/jrsteele09/ims-console/internal/errors"
)

// ErrSessionInvalidated matches APIErrors caused by a sentinel rejection
var ErrSessionInvalidated = errors.ErrSessionInvalidated

// APIError is a response the inventory API did not consider a success
type APIError struct {
	StatusCode int
	Path       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("inventory API %s returned status %d", e.Path, e.StatusCode)
	}
	return fmt.Sprintf("inventory API %s returned status %d: %s", e.Path, e.StatusCode, e.Message)
}

// Invalidated reports whether the API rejected the session token
func (e *APIError) Invalidated() bool {
	return e.StatusCode == 401 && e.Message == SentinelTokenInvalid
}

func (e *APIError) Unwrap() error {
	if e.Invalidated() {
		return ErrSessionInvalidated
	}
	return errors.ErrAPI
}
