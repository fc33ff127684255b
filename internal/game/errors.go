package game

import (
	"errors"
	"fmt"
)

// Sentinel error classes. Handlers map these to HTTP statuses with errors.Is;
// the message carried by the wrapping error is what the client sees.
var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidRequest = errors.New("invalid request")
	ErrConfiguration  = errors.New("configuration gap")
)

type classedError struct {
	class error
	msg   string
}

func (e *classedError) Error() string { return e.msg }
func (e *classedError) Unwrap() error { return e.class }

func notFoundf(format string, args ...any) error {
	return &classedError{class: ErrNotFound, msg: fmt.Sprintf(format, args...)}
}

func invalidf(format string, args ...any) error {
	return &classedError{class: ErrInvalidRequest, msg: fmt.Sprintf(format, args...)}
}

func configf(format string, args ...any) error {
	return &classedError{class: ErrConfiguration, msg: fmt.Sprintf(format, args...)}
}
