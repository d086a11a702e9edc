package ubersmith

import (
	"errors"
	"fmt"
)

var (
	ErrBaseURLEmpty     = errors.New("base url cannot be empty")
	ErrMethodEmpty      = errors.New("method name cannot be empty")
	ErrInvalidResponse  = errors.New("invalid response from api")
	ErrUnexpectedStatus = errors.New("unexpected http status from api")
)

// ResponseError is returned when the API answers with status false.
type ResponseError struct {
	Message string
	Code    int
}

// NewResponseError returns a *ResponseError with message and code.
func NewResponseError(message string, code int) *ResponseError {
	return &ResponseError{
		Message: message,
		Code:    code,
	}
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("ubersmith: %s (code %d)", e.Message, e.Code)
}

// IsResponseError reports whether err, or any error it wraps, is a *ResponseError.
func IsResponseError(err error) bool {
	var rerr *ResponseError

	return errors.As(err, &rerr)
}
