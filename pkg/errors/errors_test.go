package errors

import (
	"bytes"
	"strings"
	"testing"
)

func TestTypeErrorFormatting(t *testing.T) {
	err := NewTypeError(TypeCannotRedefine, "x")
	if err.Error() != "TypeError: Cannot redefine property: x" {
		t.Errorf("unexpected Error(): %q", err.Error())
	}
	if err.Kind() != "TypeError" {
		t.Errorf("expected kind TypeError, got %s", err.Kind())
	}
	if err.Message() != "Cannot redefine property: x" {
		t.Errorf("unexpected Message(): %q", err.Message())
	}
}

func TestNewTypeErrorWithoutArgsKeepsPercent(t *testing.T) {
	msg := "100% broken"
	err := NewTypeError(msg)
	if err.Msg != "100% broken" {
		t.Errorf("expected message to be kept verbatim, got %q", err.Msg)
	}
}

func TestCausedByPrototypeCycle(t *testing.T) {
	var err error = NewTypeError(TypePrototypeCycle).CausedBy(ErrPrototypeCycle)
	if !Is(err, ErrPrototypeCycle) {
		t.Errorf("expected errors.Is to find ErrPrototypeCycle")
	}
	if !IsTypeError(err) {
		t.Errorf("expected IsTypeError to be true")
	}
	var re *RangeError
	if As(err, &re) {
		t.Errorf("expected a TypeError not to match *RangeError")
	}
}

func TestDisplayError(t *testing.T) {
	var buf bytes.Buffer
	DisplayError(&buf, NewTypeError(TypePrototypeCycle).CausedBy(ErrPrototypeCycle))
	out := buf.String()
	if !strings.HasPrefix(out, "TypeError: Cyclic __proto__ value\n") {
		t.Errorf("unexpected display output: %q", out)
	}
	if !strings.Contains(out, "caused by: prototype chain contains a cycle") {
		t.Errorf("expected cause line, got %q", out)
	}

	buf.Reset()
	DisplayError(&buf, &ThrownError{Msg: "'boom'"})
	if buf.String() != "Thrown: 'boom'\n" {
		t.Errorf("unexpected thrown display: %q", buf.String())
	}

	buf.Reset()
	DisplayError(&buf, nil)
	if buf.Len() != 0 {
		t.Errorf("expected no output for nil error")
	}
}

func TestReferenceError(t *testing.T) {
	err := NewReferenceError("Foo")
	if err.Error() != "ReferenceError: Foo is not defined" {
		t.Errorf("unexpected Error(): %q", err.Error())
	}
	var buf bytes.Buffer
	DisplayError(&buf, err)
	if buf.String() != "ReferenceError: Foo is not defined\n" {
		t.Errorf("unexpected display output: %q", buf.String())
	}
}
