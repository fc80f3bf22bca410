package errors

import (
	stderrors "errors"
	"fmt"
	"io"
)

// JSError is the interface implemented by all errors raised by the object core.
type JSError interface {
	error // Embed the standard error interface
	Kind() string // e.g., "TypeError", "RangeError", "Thrown"
	// Message returns the specific error message without the kind prefix.
	Message() string
	Unwrap() error // For error wrapping support (errors.Is/As)
}

// ErrPrototypeCycle is the cause attached to errors raised when a prototype
// chain walk revisits an object.
var ErrPrototypeCycle = stderrors.New("prototype chain contains a cycle")

// Message table for TypeError-class failures.
const (
	TypeInvalid             = "Invalid argument type"
	TypeNotObject           = "%s called on non-object"
	TypeNotObjectCoercible  = "Cannot convert undefined or null to object"
	TypeCannotCallToString  = "toString is not callable"
	TypeNotCallable         = "%s is not a function"
	TypeNotConstructor      = "%s is not a constructor"
	TypeNotExtensible       = "Cannot define property %s, object is not extensible"
	TypeCannotRedefine      = "Cannot redefine property: %s"
	TypeCannotDelete        = "Cannot delete property '%s'"
	TypeReadOnly            = "Cannot assign to read only property '%s'"
	TypeMixedDescriptor     = "Invalid property descriptor. Cannot both specify accessors and a value or writable attribute"
	TypeAccessorNotCallable = "%s must be a function: %s"
	TypePrototypeCycle      = "Cyclic __proto__ value"
	TypeProtoNotObject      = "Object prototype may only be an Object or null: %s"
	TypeMissingArgument     = "%s requires at least %d argument(s)"
	TypeCannotConvert       = "Cannot convert object to primitive value"
)

// --- Concrete Error Types ---

// TypeError is the TypeError-class failure: invalid argument shapes, illegal
// descriptor transitions and calls of non-callable values.
type TypeError struct {
	Msg   string
	Cause error // Underlying cause, if any
}

func (e *TypeError) Error() string   { return "TypeError: " + e.Msg }
func (e *TypeError) Kind() string    { return "TypeError" }
func (e *TypeError) Message() string { return e.Msg }
func (e *TypeError) Unwrap() error   { return e.Cause }
func (e *TypeError) CausedBy(cause error) *TypeError {
	e.Cause = cause
	return e
}

// RangeError is raised for numeric arguments outside their permitted range.
type RangeError struct {
	Msg   string
	Cause error
}

func (e *RangeError) Error() string   { return "RangeError: " + e.Msg }
func (e *RangeError) Kind() string    { return "RangeError" }
func (e *RangeError) Message() string { return e.Msg }
func (e *RangeError) Unwrap() error   { return e.Cause }
func (e *RangeError) CausedBy(cause error) *RangeError {
	e.Cause = cause
	return e
}

// ReferenceError reports a name that does not resolve to a binding.
type ReferenceError struct {
	Msg string
}

func (e *ReferenceError) Error() string   { return "ReferenceError: " + e.Msg }
func (e *ReferenceError) Kind() string    { return "ReferenceError" }
func (e *ReferenceError) Message() string { return e.Msg }
func (e *ReferenceError) Unwrap() error   { return nil }

// ThrownError carries an arbitrary script value thrown by user code through
// native frames. Value is opaque here; the vm package owns its type.
type ThrownError struct {
	Value any
	Msg   string // Diagnostic rendering of Value
}

func (e *ThrownError) Error() string   { return "Uncaught " + e.Msg }
func (e *ThrownError) Kind() string    { return "Thrown" }
func (e *ThrownError) Message() string { return e.Msg }
func (e *ThrownError) Unwrap() error   { return nil }

// --- Helpers for creating errors ---

// NewTypeError formats a TypeError from one of the message constants.
func NewTypeError(format string, args ...any) *TypeError {
	if len(args) == 0 {
		return &TypeError{Msg: format}
	}
	return &TypeError{Msg: fmt.Sprintf(format, args...)}
}

// NewRangeError formats a RangeError.
func NewRangeError(format string, args ...any) *RangeError {
	if len(args) == 0 {
		return &RangeError{Msg: format}
	}
	return &RangeError{Msg: fmt.Sprintf(format, args...)}
}

// NewReferenceError reports name as undefined.
func NewReferenceError(name string) *ReferenceError {
	return &ReferenceError{Msg: name + " is not defined"}
}

// IsTypeError reports whether err is, or wraps, a *TypeError.
func IsTypeError(err error) bool {
	var te *TypeError
	return stderrors.As(err, &te)
}

// Is and As re-export the standard helpers so callers importing this package
// under its own name do not need a second import.
func Is(err, target error) bool     { return stderrors.Is(err, target) }
func As(err error, target any) bool { return stderrors.As(err, target) }

// --- Error Reporting ---

// DisplayError writes err in a user-friendly format:
//
//	<Kind>: <Message>
//	  caused by: <cause>
func DisplayError(w io.Writer, err error) {
	if err == nil {
		return
	}
	var jsErr JSError
	if !stderrors.As(err, &jsErr) {
		fmt.Fprintf(w, "Error: %s\n", err)
		return
	}
	fmt.Fprintf(w, "%s: %s\n", jsErr.Kind(), jsErr.Message())
	for cause := jsErr.Unwrap(); cause != nil; cause = stderrors.Unwrap(cause) {
		fmt.Fprintf(w, "  caused by: %s\n", cause)
	}
}
