package config

import "errors"

// Sentinel errors for internal use.
var (
	ErrInvalidConfig = errors.New("invalid config")

	// ErrInvalidEvent marks a payment event that violates the caller
	// contract (empty identifiers, negative amount). Not retriable.
	ErrInvalidEvent = errors.New("invalid payment event")

	// ErrInvalidRule marks a program whose stored accrual rule is
	// malformed. The program is skipped, never the whole payment.
	ErrInvalidRule = errors.New("invalid accrual rule")

	// ErrDuplicateEntry signals that a ledger entry already exists for a
	// (tenant, program, idempotency key) triple. It is a no-op marker,
	// not a failure.
	ErrDuplicateEntry = errors.New("ledger entry already recorded for idempotency key")

	ErrProgramNotFound = errors.New("program not found")
)

// TransientError wraps a storage error that the upstream event source
// should retry by redelivering the payment event.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string { return e.Err.Error() }
func (e *TransientError) Unwrap() error { return e.Err }

// NewTransientError wraps an error as transient (retriable).
func NewTransientError(err error) error {
	return &TransientError{Err: err}
}

// IsTransient returns true if the error is transient (retriable).
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
