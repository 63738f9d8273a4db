// Package errors provides error codes and the StoreError type shared by the
// VFS engine and its callers. It is a leaf package with no internal
// dependencies so that the store implementations, the document service, and
// the HTTP layer can all import it without cycles.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode classifies a VFS failure.
type ErrorCode int

const (
	// ErrNotFound indicates the node does not exist or the caller lacks
	// visibility. The two cases are deliberately indistinguishable so that
	// unauthorized callers cannot probe for existence.
	ErrNotFound ErrorCode = iota + 1

	// ErrAlreadyExists indicates the target (root, parent, name) slot is taken.
	ErrAlreadyExists

	// ErrInvalidName indicates a name segment fails the valid-name rule.
	ErrInvalidName

	// ErrInvalidPath indicates a path contains an invalid segment.
	ErrInvalidPath

	// ErrUnauthorized indicates the caller lacks write permission on an
	// existing, visible node.
	ErrUnauthorized

	// ErrConflict indicates an ordinal uniqueness violation. Under the
	// two-phase reorder protocol this should never surface; seeing one
	// indicates a bug in a caller.
	ErrConflict

	// ErrBadArgument indicates an argument the engine cannot act on: a
	// mismatching directory assertion, a non-recursive remove of a
	// directory, an unsupported search mode.
	ErrBadArgument

	// ErrUnavailable indicates the backing store failed.
	ErrUnavailable

	// ErrTimeout indicates the call deadline expired before commit.
	ErrTimeout
)

// String returns a human-readable name for the error code.
func (c ErrorCode) String() string {
	switch c {
	case ErrNotFound:
		return "NotFound"
	case ErrAlreadyExists:
		return "AlreadyExists"
	case ErrInvalidName:
		return "InvalidName"
	case ErrInvalidPath:
		return "InvalidPath"
	case ErrUnauthorized:
		return "Unauthorized"
	case ErrConflict:
		return "Conflict"
	case ErrBadArgument:
		return "BadArgument"
	case ErrUnavailable:
		return "Unavailable"
	case ErrTimeout:
		return "Timeout"
	default:
		return fmt.Sprintf("Unknown(%d)", c)
	}
}

// StoreError is the error type returned by every engine operation.
//
// Message is safe to display verbatim: it never contains row ids, owner ids,
// or full server paths.
type StoreError struct {
	Code    ErrorCode
	Message string
	Path    string
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Message, e.Path)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target is a StoreError with the same code. This lets
// callers use errors.Is with a sentinel like &StoreError{Code: ErrNotFound}.
func (e *StoreError) Is(target error) bool {
	var se *StoreError
	if !stderrors.As(target, &se) {
		return false
	}
	return e.Code == se.Code
}

// CodeOf extracts the ErrorCode from err, or 0 if err is not a StoreError.
func CodeOf(err error) ErrorCode {
	var se *StoreError
	if stderrors.As(err, &se) {
		return se.Code
	}
	return 0
}

// IsCode reports whether err is a StoreError carrying code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// NewNotFound creates a StoreError for a missing or invisible node.
func NewNotFound(path string) *StoreError {
	return &StoreError{Code: ErrNotFound, Message: "node not found", Path: path}
}

// NewAlreadyExists creates a StoreError for an occupied target slot.
func NewAlreadyExists(path string) *StoreError {
	return &StoreError{Code: ErrAlreadyExists, Message: "node already exists", Path: path}
}

// NewInvalidName creates a StoreError for a name failing the valid-name rule.
func NewInvalidName(name string) *StoreError {
	return &StoreError{Code: ErrInvalidName, Message: "invalid name", Path: name}
}

// NewInvalidPath creates a StoreError for a path with an invalid segment.
func NewInvalidPath(path string) *StoreError {
	return &StoreError{Code: ErrInvalidPath, Message: "invalid path", Path: path}
}

// NewUnauthorized creates a StoreError for a write the caller may not perform.
func NewUnauthorized(path string) *StoreError {
	return &StoreError{Code: ErrUnauthorized, Message: "not permitted", Path: path}
}

// NewConflict creates a StoreError for an ordinal uniqueness violation.
func NewConflict(message string) *StoreError {
	return &StoreError{Code: ErrConflict, Message: message}
}

// NewBadArgument creates a StoreError for an argument the engine cannot act on.
func NewBadArgument(message string) *StoreError {
	return &StoreError{Code: ErrBadArgument, Message: message}
}

// NewUnavailable wraps a backend failure.
func NewUnavailable(err error) *StoreError {
	return &StoreError{Code: ErrUnavailable, Message: "store unavailable: " + err.Error()}
}

// NewTimeout creates a StoreError for an expired deadline.
func NewTimeout() *StoreError {
	return &StoreError{Code: ErrTimeout, Message: "deadline exceeded"}
}
