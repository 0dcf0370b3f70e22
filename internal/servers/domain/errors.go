package domain

import "errors"

var (
	ErrInvalidBundle        = errors.New("invalid server data format")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrMalformedRecord      = errors.New("malformed record")
	ErrUnauthorized         = errors.New("password does not match")
	ErrEmptySelection       = errors.New("no servers selected for deletion")
	ErrNotFound             = errors.New("project not found")
	ErrTooManyAttempts      = errors.New("too many failed delete attempts")
)

// StoreError wraps a failure of the record store on a mandatory path.
// Its message is for logs only; callers see a generic message.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
