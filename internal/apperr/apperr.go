// Package apperr defines the error kinds the service layer reports:
// validation, not-found, persistence and external-service failures.
// Handlers map each kind to an HTTP status; services wrap the sentinel with
// fmt.Errorf("...: %w", ...) so errors.Is keeps working through the chain.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation: the request is malformed or violates a business rule
	// (empty cart, quantity exceeds stock, bad backup document, …).
	// Surfaced before any mutation occurs.
	ErrValidation = errors.New("validation error")

	// ErrNotFound: a referenced product/customer/sale id does not resolve.
	ErrNotFound = errors.New("not found")

	// ErrPersistence: a store write failed. During sale processing this means
	// the whole transaction rolled back — the sale did not happen.
	ErrPersistence = errors.New("persistence error")

	// ErrExternal: an outbound call (analyst API, sheet webhook) failed.
	// Always caught at the bridge boundary and converted to a fallback,
	// never allowed to abort a sale.
	ErrExternal = errors.New("external service error")
)

// Validationf wraps ErrValidation with a formatted message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}

// NotFoundf wraps ErrNotFound with a formatted message.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrNotFound}, args...)...)
}

// Persistence wraps a store error with ErrPersistence.
func Persistence(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}

// External wraps an outbound-call error with ErrExternal.
func External(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrExternal, err)
}
