package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification; every *Error matches the one for its Kind.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrMalformedDocument = errors.New("malformed document")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindInvalidInput      ErrorKind = "invalid_input"
	KindNotFound          ErrorKind = "not_found"
	KindMalformedDocument ErrorKind = "malformed_document"
)

// Error carries operation context, a kind and a human-readable message.
type Error struct {
	Op   string
	Kind ErrorKind
	Path string // optional: file the error relates to
	Msg  string
	Err  error
}

// Errorf builds an *Error with a formatted message.
func Errorf(op string, kind ErrorKind, format string, args ...any) *Error {
	return &Error{Op: op, Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	msg := e.Msg
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Path != "" {
		msg += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is lets errors.Is match the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	return sentinelFor(e.Kind) == target
}

// IsKind helps callers classify errors without depending on the package that raised them.
func IsKind(err error, kind ErrorKind) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind == kind
	}
	return false
}

// KindOf returns the kind of the first *Error in the chain, or "" when there is none.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

func sentinelFor(kind ErrorKind) error {
	switch kind {
	case KindInvalidInput:
		return ErrInvalidInput
	case KindNotFound:
		return ErrNotFound
	case KindMalformedDocument:
		return ErrMalformedDocument
	default:
		return nil
	}
}
