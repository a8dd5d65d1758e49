// Package errs defines the error taxonomy shared by the repository and
// API layers. Handlers map kinds to HTTP status codes; repositories tag
// write failures so callers never string-match.
package errs

import "errors"

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindDuplicate
	KindAuth
	KindTransient
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindDuplicate:
		return "duplicate"
	case KindAuth:
		return "auth"
	case KindTransient:
		return "transient"
	default:
		return "unknown"
	}
}

// Error carries a kind, a user-facing message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// E builds a kind-tagged error with a user-facing message.
func E(k Kind, msg string) *Error {
	return &Error{Kind: k, Message: msg}
}

// Wrap tags an underlying error with a kind and message.
func Wrap(k Kind, msg string, err error) *Error {
	return &Error{Kind: k, Message: msg, Err: err}
}

// KindOf extracts the kind of err, or KindUnknown for untagged errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err carries kind k.
func Is(err error, k Kind) bool {
	return KindOf(err) == k
}

// Message returns the user-facing message of err, or fallback for
// untagged errors.
func Message(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return fallback
}
