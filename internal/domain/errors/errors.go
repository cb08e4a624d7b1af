package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrInvalidSignature     = errors.New("invalid signature")
	ErrMissingSignature     = errors.New("missing signature")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrPaymentNotAccepted   = errors.New("payment not accepted")
	ErrNoCredentials        = errors.New("store credentials not configured")
)

// ValidationError aggregates every missing or invalid checkout field so the
// client sees all problems at once.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing or invalid fields: %s", strings.Join(e.Fields, ", "))
}

// RemoteError describes a failed call to a remote collaborator. Transient
// failures are retried by the resilient writer before being surfaced.
type RemoteError struct {
	Op        string
	Status    int
	Transient bool
	Err       error
}

func (e *RemoteError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: remote returned status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// IsTransient reports whether err is a retryable remote failure.
func IsTransient(err error) bool {
	var remote *RemoteError
	if errors.As(err, &remote) {
		return remote.Transient
	}
	return false
}
