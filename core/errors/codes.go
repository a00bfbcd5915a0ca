package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies the class of a failure surfaced at the process boundary.
// Codes are strings so they read well in structured logs.
type ErrorCode string

const (
	// CodeNotFound indicates an input document does not exist.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeUnwritable indicates the destination document cannot be written.
	CodeUnwritable ErrorCode = "UNWRITABLE"

	// CodeMalformedInput indicates a document could not be parsed into a tree.
	CodeMalformedInput ErrorCode = "MALFORMED_INPUT"

	// CodeIO indicates any other filesystem failure.
	CodeIO ErrorCode = "IO_ERROR"
)

// Sentinels for errors.Is comparisons. Only the code is compared.
var (
	ErrNotFound       = &Error{Code: CodeNotFound}
	ErrUnwritable     = &Error{Code: CodeUnwritable}
	ErrMalformedInput = &Error{Code: CodeMalformedInput}
	ErrIO             = &Error{Code: CodeIO}
)

// Error is a coded failure tied to a document path.
type Error struct {
	// Code classifies the failure.
	Code ErrorCode
	// Path is the document the failure relates to, if any.
	Path string
	// Err is the underlying cause.
	Err error
}

// New creates a coded error for path.
func New(code ErrorCode, path string, err error) *Error {
	return &Error{Code: code, Path: path, Err: err}
}

// Newf creates a coded error for path with a formatted cause.
func Newf(code ErrorCode, path string, format string, args ...any) *Error {
	return &Error{Code: code, Path: path, Err: fmt.Errorf(format, args...)}
}

func (e *Error) Error() string {
	msg := string(e.Code)
	if e.Path != "" {
		msg += ": " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target carries the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// CodeOf returns the code of the first *Error in err's chain, or "" if there is none.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
