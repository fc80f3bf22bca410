package vm

import (
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"jsobj/pkg/errors"
	"jsobj/pkg/interner"
)

// Hint selects the preferred type of ToPrimitive.
type Hint uint8

const (
	HintDefault Hint = iota
	HintNumber
	HintString
)

// Coercer is the value-conversion capability the object core consumes.
// Conversions on objects may call back into user code (valueOf, toString),
// which may in turn re-enter the object core.
type Coercer interface {
	ToPrimitive(r *Realm, v Value, hint Hint) (Value, error)
	ToObject(r *Realm, v Value) (*Object, error)
	ToString(r *Realm, v Value) (string, error)
	ToNumber(r *Realm, v Value) (float64, error)
	IsCallable(v Value) bool
}

// DefaultCoercer implements the ECMAScript 5 type conversions.
type DefaultCoercer struct{}

func (DefaultCoercer) IsCallable(v Value) bool {
	return v.IsCallable()
}

func (DefaultCoercer) ToPrimitive(r *Realm, v Value, hint Hint) (Value, error) {
	obj := v.AsObject()
	if obj == nil {
		return v, nil
	}
	order := [2]interner.Name{interner.ValueOf, interner.ToString}
	if hint == HintString {
		order = [2]interner.Name{interner.ToString, interner.ValueOf}
	}
	for _, name := range order {
		method, err := r.Get(obj, name)
		if err != nil {
			return Undefined, err
		}
		if !r.Coerce.IsCallable(method) {
			continue
		}
		result, err := r.Call(method, v)
		if err != nil {
			return Undefined, err
		}
		if !result.IsObject() {
			return result, nil
		}
	}
	return Undefined, errors.NewTypeError(errors.TypeCannotConvert)
}

func (DefaultCoercer) ToObject(r *Realm, v Value) (*Object, error) {
	switch v.Type() {
	case TypeObject:
		return v.AsObject(), nil
	case TypeUndefined, TypeNull:
		return nil, errors.NewTypeError(errors.TypeNotObjectCoercible)
	case TypeString:
		w := r.newWrapper(r.StringPrototype, "String", v)
		n := utf8.RuneCountInString(v.AsString())
		w.defineOwn(interner.Length, DataDescriptor(NumberValue(float64(n)), false, false, false))
		return w, nil
	case TypeNumber:
		return r.newWrapper(r.NumberPrototype, "Number", v), nil
	case TypeBoolean:
		return r.newWrapper(r.BooleanPrototype, "Boolean", v), nil
	}
	return nil, errors.NewTypeError(errors.TypeInvalid)
}

func (DefaultCoercer) ToString(r *Realm, v Value) (string, error) {
	if !v.IsObject() {
		return v.ToString(), nil
	}
	prim, err := r.Coerce.ToPrimitive(r, v, HintString)
	if err != nil {
		return "", err
	}
	return prim.ToString(), nil
}

func (DefaultCoercer) ToNumber(r *Realm, v Value) (float64, error) {
	switch v.Type() {
	case TypeUndefined:
		return math.NaN(), nil
	case TypeNull:
		return 0, nil
	case TypeBoolean:
		if v.AsBoolean() {
			return 1, nil
		}
		return 0, nil
	case TypeNumber:
		return v.AsFloat(), nil
	case TypeString:
		return StringToNumber(v.AsString()), nil
	}
	prim, err := r.Coerce.ToPrimitive(r, v, HintNumber)
	if err != nil {
		return 0, err
	}
	return r.Coerce.ToNumber(r, prim)
}

func (r *Realm) newWrapper(proto *Object, class string, prim Value) *Object {
	w := newObject(r, proto)
	w.class = class
	w.setPrimitive(prim)
	return w
}

// NewWrapper boxes a string, number or boolean primitive.
func (r *Realm) NewWrapper(prim Value) (*Object, error) {
	if prim.IsObject() {
		return nil, errors.NewTypeError(errors.TypeInvalid)
	}
	return r.Coerce.ToObject(r, prim)
}

// Realm shortcuts for the coercion capability.

func (r *Realm) ToObject(v Value) (*Object, error) { return r.Coerce.ToObject(r, v) }
func (r *Realm) ToString(v Value) (string, error) { return r.Coerce.ToString(r, v) }
func (r *Realm) ToNumber(v Value) (float64, error) { return r.Coerce.ToNumber(r, v) }
func (r *Realm) ToPrimitive(v Value, h Hint) (Value, error) { return r.Coerce.ToPrimitive(r, v, h) }

// StringToNumber implements the ECMAScript StringNumericLiteral grammar.
func StringToNumber(s string) float64 {
	s = TrimWhiteSpace(s)
	switch s {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		n, err := strconv.ParseUint(s[2:], 16, 64)
		if err != nil {
			return math.NaN()
		}
		return float64(n)
	}
	// strconv accepts forms the grammar does not (inf, nan, 1_000, hex floats).
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= '0' && c <= '9') || c == '.' || c == 'e' || c == 'E' || c == '+' || c == '-' {
			continue
		}
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return f
		}
		return math.NaN()
	}
	return f
}

// IsWhiteSpace reports whether c is in the WhiteSpace or LineTerminator sets.
// This differs from unicode.IsSpace: U+FEFF is included, U+0085 is not.
func IsWhiteSpace(c rune) bool {
	switch c {
	case '\t', '\v', '\f', ' ', '\u00a0', '\ufeff', '\n', '\r', '\u2028', '\u2029':
		return true
	}
	return c > 0x7f && unicode.Is(unicode.Zs, c)
}

// TrimWhiteSpace strips leading and trailing IsWhiteSpace runes.
func TrimWhiteSpace(s string) string {
	return strings.TrimFunc(s, IsWhiteSpace)
}

// ToUint32 wraps a number modulo 2^32. NaN and infinities become 0.
func ToUint32(f float64) uint32 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	m := math.Mod(math.Trunc(f), 1<<32)
	if m < 0 {
		m += 1 << 32
	}
	return uint32(m)
}

// ToInt32 is ToUint32 reinterpreted as signed.
func ToInt32(f float64) int32 {
	return int32(ToUint32(f))
}

// ToUint16 wraps a number modulo 2^16. NaN and infinities become 0.
func ToUint16(f float64) uint16 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	m := math.Mod(math.Trunc(f), 1<<16)
	if m < 0 {
		m += 1 << 16
	}
	return uint16(m)
}
