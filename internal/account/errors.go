package account

import "errors"

// Domain errors for the account package.
var (
	// ErrDuplicateEntry is returned when registering an entry id that
	// already exists.
	ErrDuplicateEntry = errors.New("account: entry already registered")

	// ErrInvalidEntry is returned when registering an account without an
	// entry id.
	ErrInvalidEntry = errors.New("account: entry id is required")
)
