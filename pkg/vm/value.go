package vm

import (
	"math"
	"strconv"
	"unsafe"
)

type ValueType uint8

const (
	TypeUndefined ValueType = iota
	TypeNull
	TypeBoolean
	TypeNumber
	TypeString
	TypeObject
)

// String returns a human-readable string representation of the ValueType
func (vt ValueType) String() string {
	switch vt {
	case TypeUndefined:
		return "undefined"
	case TypeNull:
		return "null"
	case TypeBoolean:
		return "boolean"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeObject:
		return "object"
	default:
		return "unknown"
	}
}

type stringBox struct {
	value string
}

// Value is a script value. Numbers and booleans live in payload; strings and
// objects are referenced through obj.
type Value struct {
	typ     ValueType
	payload uint64
	obj     unsafe.Pointer
}

var (
	Undefined = Value{typ: TypeUndefined}
	Null      = Value{typ: TypeNull}
	True      = Value{typ: TypeBoolean, payload: 1}
	False     = Value{typ: TypeBoolean, payload: 0}
	NaN       = Value{typ: TypeNumber, payload: math.Float64bits(math.NaN())}
)

func NumberValue(value float64) Value {
	return Value{typ: TypeNumber, payload: math.Float64bits(value)}
}

func BooleanValue(value bool) Value {
	if value {
		return True
	}
	return False
}

func NewString(value string) Value {
	return Value{typ: TypeString, obj: unsafe.Pointer(&stringBox{value: value})}
}

// ObjectValue wraps o. A nil object becomes Null, which is how an absent
// prototype is surfaced to scripts.
func ObjectValue(o *Object) Value {
	if o == nil {
		return Null
	}
	return Value{typ: TypeObject, obj: unsafe.Pointer(o)}
}

func (v Value) Type() ValueType { return v.typ }

func (v Value) IsUndefined() bool       { return v.typ == TypeUndefined }
func (v Value) IsNull() bool            { return v.typ == TypeNull }
func (v Value) IsNullOrUndefined() bool { return v.typ == TypeNull || v.typ == TypeUndefined }
func (v Value) IsBoolean() bool         { return v.typ == TypeBoolean }
func (v Value) IsNumber() bool          { return v.typ == TypeNumber }
func (v Value) IsString() bool          { return v.typ == TypeString }
func (v Value) IsObject() bool          { return v.typ == TypeObject }

// IsCallable reports whether v is an object with a call behaviour.
func (v Value) IsCallable() bool {
	return v.typ == TypeObject && v.AsObject().IsCallable()
}

func (v Value) AsFloat() float64 {
	if v.typ != TypeNumber {
		panic("value is not a number")
	}
	return math.Float64frombits(v.payload)
}

func (v Value) AsBoolean() bool {
	if v.typ != TypeBoolean {
		panic("value is not a boolean")
	}
	return v.payload != 0
}

func (v Value) AsString() string {
	if v.typ != TypeString {
		panic("value is not a string")
	}
	return (*stringBox)(v.obj).value
}

// AsObject returns the referenced object, or nil for non-objects.
func (v Value) AsObject() *Object {
	if v.typ != TypeObject {
		return nil
	}
	return (*Object)(v.obj)
}

// TypeName returns the typeof result for v.
func (v Value) TypeName() string {
	if v.IsCallable() {
		return "function"
	}
	return v.typ.String()
}

// ToBoolean implements the ECMAScript ToBoolean conversion.
func (v Value) ToBoolean() bool {
	switch v.typ {
	case TypeUndefined, TypeNull:
		return false
	case TypeBoolean:
		return v.AsBoolean()
	case TypeNumber:
		f := v.AsFloat()
		return f != 0 && !math.IsNaN(f)
	case TypeString:
		return v.AsString() != ""
	default:
		return true
	}
}

// Is compares two values with strict-equality semantics, objects by identity.
func (v Value) Is(other Value) bool {
	if v.typ != other.typ {
		return false
	}
	switch v.typ {
	case TypeUndefined, TypeNull:
		return true
	case TypeBoolean:
		return v.payload == other.payload
	case TypeNumber:
		return v.AsFloat() == other.AsFloat()
	case TypeString:
		return v.AsString() == other.AsString()
	case TypeObject:
		return v.obj == other.obj
	}
	return false
}

// SameValue is Is except that NaN equals NaN and +0 differs from -0.
func SameValue(a, b Value) bool {
	if a.typ == TypeNumber && b.typ == TypeNumber {
		x, y := a.AsFloat(), b.AsFloat()
		if math.IsNaN(x) && math.IsNaN(y) {
			return true
		}
		if x == 0 && y == 0 {
			return math.Signbit(x) == math.Signbit(y)
		}
		return x == y
	}
	return a.Is(b)
}

// ToString renders primitives per ECMAScript ToString. Objects render as
// "[object Class]" without running user code; use Realm.ToString for the
// full conversion.
func (v Value) ToString() string {
	switch v.typ {
	case TypeUndefined:
		return "undefined"
	case TypeNull:
		return "null"
	case TypeBoolean:
		if v.AsBoolean() {
			return "true"
		}
		return "false"
	case TypeNumber:
		return NumberToString(v.AsFloat())
	case TypeString:
		return v.AsString()
	case TypeObject:
		return "[object " + v.AsObject().ClassOr("Object") + "]"
	}
	return ""
}

// NumberToString implements Number::toString for radix 10.
func NumberToString(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	if math.IsInf(f, 1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	// -0 renders as "0"
	if f == 0 {
		return "0"
	}
	absF := math.Abs(f)
	// If |f| < 1e-6 or |f| >= 1e21, use exponential notation
	if absF < 1e-6 || absF >= 1e21 {
		return cleanExponentialFormat(strconv.FormatFloat(f, 'e', -1, 64))
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// cleanExponentialFormat removes leading zeros from exponent to match JS format
// e.g., "1e-07" -> "1e-7", "1e+25" -> "1e+25"
func cleanExponentialFormat(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] != 'e' && s[i] != 'E' {
			continue
		}
		if i+1 < len(s) && (s[i+1] == '+' || s[i+1] == '-') {
			j := i + 2
			for j < len(s) && s[j] == '0' {
				j++
			}
			if j >= len(s) {
				return s[:i+2] + "0"
			}
			return s[:i+2] + s[j:]
		}
		break
	}
	return s
}
