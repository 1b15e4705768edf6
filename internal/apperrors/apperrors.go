package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an application error so transports can map it to a
// status code without inspecting message text.
type Kind int

const (
	// KindQueryFailed is an operational database failure. The wrapped
	// driver error is for server-side logs only.
	KindQueryFailed Kind = iota
	// KindNotFound is a missing resource on a path where absence is an
	// error for the caller (e.g. invoice detail by id).
	KindNotFound
	// KindValidationFailed is malformed caller input.
	KindValidationFailed
)

// Error carries a kind, the operation it arose in, and a user-safe
// message. The wrapped cause never reaches API responses.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// QueryFailed wraps a database failure from the named operation with a
// fixed, generic message.
func QueryFailed(op string, err error) *Error {
	return &Error{
		Kind:    KindQueryFailed,
		Op:      op,
		Message: fmt.Sprintf("failed to fetch %s", op),
		Err:     err,
	}
}

// NotFound reports an absent resource.
func NotFound(op string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Op:      op,
		Message: fmt.Sprintf("%s not found", op),
	}
}

// ValidationFailed reports malformed input.
func ValidationFailed(op, message string) *Error {
	return &Error{
		Kind:    KindValidationFailed,
		Op:      op,
		Message: message,
	}
}

// KindOf extracts the kind of err, defaulting to KindQueryFailed for
// errors that did not originate in this package.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindQueryFailed
}
