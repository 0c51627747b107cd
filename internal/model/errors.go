package model

import "errors"

// Error kinds. Callers match them with errors.Is.
var (
	ErrAlreadyExists = errors.New("already exists")
	ErrNotFound      = errors.New("not found")
	ErrValidation    = errors.New("validation error")
	ErrIO            = errors.New("io error")
)

// Kind names the error kind of err for user-facing reports.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAlreadyExists):
		return "AlreadyExists"
	case errors.Is(err, ErrNotFound):
		return "NotFound"
	case errors.Is(err, ErrValidation):
		return "ValidationError"
	case errors.Is(err, ErrIO):
		return "IOError"
	default:
		return "Error"
	}
}
