package admin

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("pricing row not found")
)
