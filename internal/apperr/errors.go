package apperr

import "errors"

// ErrInvalid is returned when the input fails domain validation:
// unknown delivery method, out-of-window date, or a slot id that does not
// belong to the stated method and date.
var ErrInvalid = errors.New("invalid input")

// ErrConflict indicates the slot already carries an active reservation
// (HTTP 409). Losing the race is a terminal outcome, not a transient fault.
var ErrConflict = errors.New("conflict")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrUnavailable indicates a storage or infrastructure failure. The whole
// operation may be retried: a failed commit never mutates the ledger.
var ErrUnavailable = errors.New("unavailable")
