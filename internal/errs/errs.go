// Package errs defines the failure kinds surfaced by imgcrypt and maps them
// to process exit codes.
package errs

import (
	"errors"
	"fmt"
)

// Failure kinds. Match with errors.Is.
var (
	ErrInvalidKey    = errors.New("invalid key")
	ErrShapeMismatch = errors.New("shape mismatch")
	ErrDecodeFailure = errors.New("decode failure")
	ErrEncodeFailure = errors.New("encode failure")
)

// Error records which component raised a failure kind and why.
type Error struct {
	Component string // e.g. "transform", "permute", "decoder"
	Op        string // operation within the component
	Kind      error  // one of the Err* sentinels
	Err       error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s: %v", e.Component, e.Op, e.Kind)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// New builds an *Error with a formatted cause.
func New(component, op string, kind error, format string, args ...any) *Error {
	return &Error{
		Component: component,
		Op:        op,
		Kind:      kind,
		Err:       fmt.Errorf(format, args...),
	}
}

// Wrap attaches a kind to an existing cause. A nil cause returns nil.
func Wrap(component, op string, kind error, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Component: component, Op: op, Kind: kind, Err: err}
}

// Exit codes returned by the imgcrypt binary.
const (
	ExitGeneric       = 1
	ExitInvalidKey    = 2
	ExitShapeMismatch = 3
	ExitDecode        = 4
	ExitEncode        = 5
)

// ExitCode maps err to the process exit code. nil maps to 0.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrInvalidKey):
		return ExitInvalidKey
	case errors.Is(err, ErrShapeMismatch):
		return ExitShapeMismatch
	case errors.Is(err, ErrDecodeFailure):
		return ExitDecode
	case errors.Is(err, ErrEncodeFailure):
		return ExitEncode
	default:
		return ExitGeneric
	}
}
