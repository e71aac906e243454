package errors

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCart        = errors.New("invalid cart")
	ErrInvalidUpload      = errors.New("invalid upload")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAuthDisabled       = errors.New("operator authentication disabled")
)
