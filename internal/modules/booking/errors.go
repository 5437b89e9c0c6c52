package booking

import "errors"

var (
	ErrValidation         = errors.New("validation error")
	ErrNotFound           = errors.New("booking not found")
	ErrForbidden          = errors.New("booking belongs to another account")
	ErrBadTransition      = errors.New("invalid status transition")
	ErrCleanerInactive    = errors.New("cleaner is not active")
	ErrCleanerUnavailable = errors.New("cleaner already booked for this slot")
)
