// Package errors tags failures with stable machine-readable codes. Domain
// services wrap causes with Wrap; transports branch on IsCode to pick a
// status without parsing messages.
package errors

import "errors"

// AppError carries a code for callers and a message for humans. Err holds
// the underlying cause, if any.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Wrap builds an AppError around err. A nil err is fine; the code and
// message then stand alone.
func Wrap(code, message string, err error) error {
	return &AppError{Code: code, Message: message, Err: err}
}

// IsCode reports whether any error in err's chain carries code.
func IsCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}
