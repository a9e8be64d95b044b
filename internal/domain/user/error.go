package user

import "errors"

// Messages of ErrAlreadyExists and ErrInvalidAuth reach clients as is.
var (
	ErrNotFound      = errors.New("user not found")
	ErrAlreadyExists = errors.New("User already registered")
	ErrInvalidAuth   = errors.New("Invalid login credentials")
	ErrInvalidInput  = errors.New("invalid input")
)

// ValidationError reports the first rejected credential field.
// It matches ErrInvalidInput under errors.Is.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
