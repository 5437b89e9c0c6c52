package review

import "errors"

var (
	ErrValidation      = errors.New("validation error")
	ErrNotFound        = errors.New("booking not found")
	ErrForbidden       = errors.New("booking belongs to another customer")
	ErrNotCompleted    = errors.New("booking is not completed")
	ErrAlreadyReviewed = errors.New("booking already reviewed")
)
