package withdrawals

import "errors"

var (
	// ErrNotFound indicates no withdrawal has the given identifier.
	ErrNotFound = errors.New("withdrawal not found")

	// ErrAlreadyProcessed indicates the withdrawal already left the pending
	// state; status transitions are single-shot.
	ErrAlreadyProcessed = errors.New("withdrawal already processed")

	// ErrInvalidInput indicates a missing or malformed amount, method or action.
	ErrInvalidInput = errors.New("invalid input")
)
