package domain

import (
	"errors"
	"fmt"
)

// Error categories. Every failure returned by the core wraps exactly one of
// these so the transport layer can map it with errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("service unavailable")
)

var (
	ErrProductNotFound      = fmt.Errorf("product %w", ErrNotFound)
	ErrOrderNotFound        = fmt.Errorf("order %w", ErrNotFound)
	ErrAccountNotFound      = fmt.Errorf("account %w", ErrNotFound)
	ErrAdminNotFound        = fmt.Errorf("admin account %w", ErrNotFound)
	ErrRatesNotSet          = fmt.Errorf("shipping rates %w", ErrNotFound)
	ErrSettingsNotSet       = fmt.Errorf("storefront settings %w", ErrNotFound)
	ErrAccountExists        = fmt.Errorf("%w: email or username already taken", ErrConflict)
	ErrInvalidCredentials   = fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	ErrAccountInactive      = fmt.Errorf("%w: account not active", ErrForbidden)
	ErrInvalidTransition    = fmt.Errorf("%w: status transition not allowed", ErrInvalidState)
	ErrMaintenance          = fmt.Errorf("%w: store is in maintenance mode", ErrUnavailable)
	ErrRequestInProgress    = fmt.Errorf("%w: a request with this idempotency key is in progress", ErrConflict)
	ErrIdempotencyKeyReused = fmt.Errorf("%w: idempotency key was used for a different request", ErrConflict)
)

// Invalidf builds a validation failure with a caller-facing message.
func Invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
