package auth

import "errors"

var (
	ErrValidation         = errors.New("validation error")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password too short")
)
