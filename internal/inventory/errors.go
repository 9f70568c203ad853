package inventory

import (
	"errors"
	"fmt"
)

// NotFound is the sentinel index and count returned when nothing matched.
const NotFound = -1

// ErrorCode categorizes store errors.
type ErrorCode string

const (
	// ErrCodeNotFound indicates a missing file or an index with no record.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeMalformedInput indicates a line with fewer than 3 fields, or a
	// line whose serial number is not an integer.
	ErrCodeMalformedInput ErrorCode = "MALFORMED_INPUT"

	// ErrCodeOutOfRange indicates a replace or range outside the store.
	ErrCodeOutOfRange ErrorCode = "OUT_OF_RANGE"

	// ErrCodeInvalidSerial indicates a serial number that is not an integer.
	ErrCodeInvalidSerial ErrorCode = "INVALID_SERIAL"

	// ErrCodeDuplicateSerial indicates an append or replace that would
	// duplicate an existing serial number while uniqueness is enforced.
	ErrCodeDuplicateSerial ErrorCode = "DUPLICATE_SERIAL"
)

// Error is the failure type returned by Store operations.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Path is the file involved, if any.
	Path string

	// Line is the 1-based line number for malformed input.
	Line int

	// Err is the underlying cause (optional).
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	switch {
	case e.Path != "" && e.Line > 0:
		msg = fmt.Sprintf("%s (%s:%d)", msg, e.Path, e.Line)
	case e.Path != "":
		msg = fmt.Sprintf("%s (%s)", msg, e.Path)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// hasCode looks through every *Error in the chain, so a malformed line
// caused by a bad serial matches both codes.
func hasCode(err error, code ErrorCode) bool {
	for err != nil {
		var se *Error
		if !errors.As(err, &se) {
			return false
		}
		if se.Code == code {
			return true
		}
		err = se.Err
	}
	return false
}

// IsNotFound reports whether err is a NOT_FOUND store error.
func IsNotFound(err error) bool { return hasCode(err, ErrCodeNotFound) }

// IsMalformed reports whether err is a MALFORMED_INPUT store error.
func IsMalformed(err error) bool { return hasCode(err, ErrCodeMalformedInput) }

// IsOutOfRange reports whether err is an OUT_OF_RANGE store error.
func IsOutOfRange(err error) bool { return hasCode(err, ErrCodeOutOfRange) }

// IsInvalidSerial reports whether err is an INVALID_SERIAL store error.
func IsInvalidSerial(err error) bool { return hasCode(err, ErrCodeInvalidSerial) }

// IsDuplicateSerial reports whether err is a DUPLICATE_SERIAL store error.
func IsDuplicateSerial(err error) bool { return hasCode(err, ErrCodeDuplicateSerial) }

// Status maps an operation result to the numeric status the menu checks:
// 0 for success, -1 for any failure.
func Status(err error) int {
	if err != nil {
		return -1
	}
	return 0
}

// NewNotFoundError creates a NOT_FOUND error for path.
func NewNotFoundError(path string, err error) *Error {
	return &Error{Code: ErrCodeNotFound, Message: "file not found", Path: path, Err: err}
}

// NewMalformedError creates a MALFORMED_INPUT error for a line of path.
func NewMalformedError(path string, line int, err error) *Error {
	return &Error{
		Code:    ErrCodeMalformedInput,
		Message: fmt.Sprintf("expecting at least %d values per line", fieldCount),
		Path:    path,
		Line:    line,
		Err:     err,
	}
}

func indexError(code ErrorCode, index, size int) *Error {
	if size == 0 {
		return &Error{Code: code, Message: fmt.Sprintf("index %d out of range, store is empty", index)}
	}
	return &Error{Code: code, Message: fmt.Sprintf("index %d out of range, max allowable is %d", index, size-1)}
}
