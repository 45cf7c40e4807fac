// Package domain contains the statement construction engine.
package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a construction failure.
type ErrorKind int

const (
	// ErrRecursionLimit means the recursion ceiling was exceeded.
	ErrRecursionLimit ErrorKind = iota
	// ErrUnsatisfiable means a requested type had no generator, no reusable
	// object, and a none value was not allowed.
	ErrUnsatisfiable
	// ErrNoReceiver means a method or field resolved no receiver. This is a
	// broken contract, not a recoverable condition.
	ErrNoReceiver
	// ErrUnknownVariant means a statement or accessible of an unrecognized
	// variant was passed to a dispatch operation.
	ErrUnknownVariant
)

func (k ErrorKind) String() string {
	switch k {
	case ErrRecursionLimit:
		return "recursion limit"
	case ErrUnsatisfiable:
		return "unsatisfiable"
	case ErrNoReceiver:
		return "no receiver"
	case ErrUnknownVariant:
		return "unknown variant"
	}

	return "invalid"
}

// ConstructionError is the single failure kind raised by the factory. It
// carries a classification, a message naming the unsatisfiable type or
// generator, and an optional cause chain.
type ConstructionError struct {
	Kind    ErrorKind
	Message string

	cause error
}

func newConstructionError(kind ErrorKind, format string, args ...any) *ConstructionError {
	return &ConstructionError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func wrapConstructionError(kind ErrorKind, cause error, format string, args ...any) *ConstructionError {
	return &ConstructionError{Kind: kind, Message: fmt.Sprintf(format, args...), cause: cause}
}

func (e *ConstructionError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("construction failed (%s): %s: %v", e.Kind, e.Message, e.cause)
	}

	return fmt.Sprintf("construction failed (%s): %s", e.Kind, e.Message)
}

// Unwrap exposes the cause chain to errors.Is and errors.As.
func (e *ConstructionError) Unwrap() error {
	return e.cause
}

// AsConstructionError unwraps err into a ConstructionError, if it is one.
func AsConstructionError(err error) (*ConstructionError, bool) {
	var cerr *ConstructionError
	if errors.As(err, &cerr) {
		return cerr, true
	}

	return nil, false
}

// IsKind reports whether err is a construction error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	cerr, ok := AsConstructionError(err)

	return ok && cerr.Kind == kind
}
