package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidRequest marks charge requests rejected before any provider call.
var ErrInvalidRequest = errors.New("invalid charge request")

// AuthError is returned when the provider rejects the credential exchange or
// answers without a token. Body is the provider's raw response; it is the
// only diagnostic signal available, so it is never swallowed.
type AuthError struct {
	StatusCode int
	Body       string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("nuvende authentication failed (status %d): %s", e.StatusCode, e.Body)
}

// ChargeCreationError is returned when the charge upsert fails in transport
// or is answered non-2xx.
type ChargeCreationError struct {
	TxID       string
	StatusCode int
	Body       string
	Err        error
}

func (e *ChargeCreationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("creating charge %s: %v", e.TxID, e.Err)
	}
	return fmt.Sprintf("creating charge %s failed (status %d): %s", e.TxID, e.StatusCode, e.Body)
}

func (e *ChargeCreationError) Unwrap() error { return e.Err }

// StatusFetchError is returned when a charge lookup fails.
type StatusFetchError struct {
	TxID       string
	StatusCode int
	Body       string
	Err        error
}

func (e *StatusFetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetching charge %s: %v", e.TxID, e.Err)
	}
	return fmt.Sprintf("fetching charge %s failed (status %d): %s", e.TxID, e.StatusCode, e.Body)
}

func (e *StatusFetchError) Unwrap() error { return e.Err }
