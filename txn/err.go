package txn

import (
	"errors"
)

var (
	// ErrNotFound is returned when looking up a transaction number that is not registered.
	ErrNotFound = errors.New("Txn: Transaction not found")

	// ErrNoSavepoint is returned when releasing or rolling back a savepoint
	// while none is open.
	ErrNoSavepoint = errors.New("Txn: No open savepoint")
)
