// Package response holds the JSON envelopes shared by every operation.
package response

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// Error is the failure envelope. It satisfies huma.StatusError, so huma's own
// request errors use the same shape as handler errors.
type Error struct {
	status  int
	Success bool   `json:"success"`
	Message string `json:"error"`
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) GetStatus() int {
	return e.status
}

// Fail builds a failure envelope with the given status.
func Fail(status int, message string) *Error {
	return &Error{status: status, Message: message}
}

// NewError replaces huma.NewError. Request validation failures are reported
// as 400 with the first detail as the message.
func NewError(status int, msg string, errs ...error) huma.StatusError {
	if status == http.StatusUnprocessableEntity {
		status = http.StatusBadRequest
	}

	if len(errs) > 0 && errs[0] != nil && (msg == "" || msg == "validation failed") {
		msg = errs[0].Error()
	}
	if msg == "" {
		msg = http.StatusText(status)
	}

	return Fail(status, msg)
}

// Cause is the message of the innermost wrapped error, the text the store
// driver produced without the adapter's context prefixes.
func Cause(err error) string {
	for {
		inner := errors.Unwrap(err)
		if inner == nil {
			return err.Error()
		}
		err = inner
	}
}

// OK is the bare success envelope.
type OK struct {
	Success bool `json:"success"`
}
