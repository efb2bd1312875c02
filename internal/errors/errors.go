package gerr

import "errors"

var (
	// ErrNotFound reports an update or read referencing a record that does
	// not exist. Distinct from validation failures.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidTransition reports a staff status update that would move a
	// record backwards or out of a terminal status.
	ErrInvalidTransition = errors.New("status transition not allowed")

	// ErrAlreadyExists reports a unique constraint violation.
	ErrAlreadyExists = errors.New("record already exists")
)
