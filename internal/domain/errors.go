package domain

import "errors"

// ErrNotFound is returned by store and service functions when the requested
// record does not exist in the collection.
// The console maps this to a user-facing "not found" message.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field).
var ErrValidation = errors.New("validation error")
