package store

import (
	"errors"
	"fmt"
)

// Base errors. Implementations wrap these so callers can branch on the
// category with errors.Is regardless of the backend.
var (
	ErrNotFound          = errors.New("entity not found")
	ErrDuplicate         = errors.New("entity already exists")
	ErrInvalidEntity     = errors.New("invalid entity")
	ErrTransactionFailed = errors.New("transaction failed")
)

// Entity-specific errors.
var (
	// ErrUserNotFound is returned by user lookups that match no row.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrEntryNotFound is returned when an entry lookup, update or delete
	// targets an ID that is not stored.
	ErrEntryNotFound = fmt.Errorf("%w: entry", ErrNotFound)

	// ErrEmailExists is returned when a user insert hits the unique email
	// index. AuthService reports it with the same message as its pre-check.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)
)

// IsNotFoundError reports whether err is any not-found error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
