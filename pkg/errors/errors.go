// Package errors carries coded errors through popover.
//
// Parsers reject bad placement tokens, trigger modes, geometry and config
// with a [Code]. The CLI prints [UserMessage]. The playground server returns
// the code in its JSON error body, with the status from [Status].
//
//	p, err := placement.Parse(token)
//	if errors.Is(err, errors.ErrCodeInvalidPlacement) {
//	    ...
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies a class of failure.
type Code string

const (
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidPlacement Code = "INVALID_PLACEMENT"
	ErrCodeInvalidTrigger   Code = "INVALID_TRIGGER"
	ErrCodeInvalidGeometry  Code = "INVALID_GEOMETRY"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidPath      Code = "INVALID_PATH"
	ErrCodeFileNotFound     Code = "FILE_NOT_FOUND"
	ErrCodeInternal         Code = "INTERNAL_ERROR"
)

// Error is a coded error. Cause is optional.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches code and a formatted message to cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns err without code prefixes. Messages of wrapped
// errors are joined with ": ", e.g. "trigger: width cannot be negative".
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + UserMessage(e.Cause)
}

// Status maps err to an HTTP status: 404 for missing files, 500 for
// internal or uncoded errors, 400 otherwise.
func Status(err error) int {
	switch GetCode(err) {
	case ErrCodeFileNotFound:
		return http.StatusNotFound
	case ErrCodeInternal, "":
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}
