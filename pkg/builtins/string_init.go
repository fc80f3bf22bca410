package builtins

import (
	"math"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"jsobj/pkg/errors"
	"jsobj/pkg/vm"
)

// StringInitializer implements the String builtin. Positions count code
// points, matching the length of String wrappers.
type StringInitializer struct{}

func (s *StringInitializer) Name() string {
	return "String"
}

func (s *StringInitializer) Priority() int {
	return PriorityString
}

func (s *StringInitializer) InitRuntime(ctx *RuntimeContext) error {
	r := ctx.Realm
	stringProto := r.StringPrototype

	method(r, stringProto, "toString", 0, stringToStringImpl)
	method(r, stringProto, "valueOf", 0, func(_ *vm.Realm, _ vm.FnMode, args vm.Args) (vm.Value, error) {
		return thisPrimitive(args.This, vm.TypeString, "String.prototype.valueOf")
	})
	method(r, stringProto, "charAt", 1, stringCharAtImpl)
	method(r, stringProto, "charCodeAt", 1, stringCharCodeAtImpl)
	method(r, stringProto, "indexOf", 1, stringIndexOfImpl)
	method(r, stringProto, "slice", 2, stringSliceImpl)
	method(r, stringProto, "concat", 1, stringConcatImpl)
	method(r, stringProto, "trim", 0, stringTrimImpl)
	method(r, stringProto, "toLowerCase", 0, func(r *vm.Realm, _ vm.FnMode, args vm.Args) (vm.Value, error) {
		return mapThisString(r, args, "String.prototype.toLowerCase", strings.ToLower)
	})
	method(r, stringProto, "toUpperCase", 0, func(r *vm.Realm, _ vm.FnMode, args vm.Args) (vm.Value, error) {
		return mapThisString(r, args, "String.prototype.toUpperCase", strings.ToUpper)
	})
	method(r, stringProto, "toLocaleLowerCase", 0, func(r *vm.Realm, _ vm.FnMode, args vm.Args) (vm.Value, error) {
		return stringLocaleCase(r, args, "String.prototype.toLocaleLowerCase", cases.Lower)
	})
	method(r, stringProto, "toLocaleUpperCase", 0, func(r *vm.Realm, _ vm.FnMode, args vm.Args) (vm.Value, error) {
		return stringLocaleCase(r, args, "String.prototype.toLocaleUpperCase", cases.Upper)
	})

	ctor := r.NewNativeConstructor(1, "String", stringProto, stringConstructorImpl)
	method(r, ctor, "fromCharCode", 1, stringFromCharCodeImpl)

	return ctx.DefineGlobal("String", vm.ObjectValue(ctor))
}

// String(value) converts; new String(value) wraps the converted string.
func stringConstructorImpl(r *vm.Realm, mode vm.FnMode, args vm.Args) (vm.Value, error) {
	s := ""
	if args.Len() > 0 {
		var err error
		if s, err = r.ToString(args.Arg(0)); err != nil {
			return vm.Undefined, err
		}
	}
	if !mode.Construct() {
		return vm.NewString(s), nil
	}
	return toObjectValue(r, vm.NewString(s))
}

func stringToStringImpl(r *vm.Realm, _ vm.FnMode, args vm.Args) (vm.Value, error) {
	return thisPrimitive(args.This, vm.TypeString, "String.prototype.toString")
}

// thisString is the receiver conversion of the generic String methods:
// anything but undefined and null is converted with ToString.
func thisString(r *vm.Realm, args vm.Args, caller string) (string, error) {
	if args.This.IsNullOrUndefined() {
		return "", errors.NewTypeError("%s called on null or undefined", caller)
	}
	return r.ToString(args.This)
}

func mapThisString(r *vm.Realm, args vm.Args, caller string, fn func(string) string) (vm.Value, error) {
	s, err := thisString(r, args, caller)
	if err != nil {
		return vm.Undefined, err
	}
	return vm.NewString(fn(s)), nil
}

func stringLocaleCase(r *vm.Realm, args vm.Args, caller string, caser func(language.Tag, ...cases.Option) cases.Caser) (vm.Value, error) {
	s, err := thisString(r, args, caller)
	if err != nil {
		return vm.Undefined, err
	}
	tag, err := localeArg(r, args.Arg(0))
	if err != nil {
		return vm.Undefined, err
	}
	return vm.NewString(caser(tag).String(s)), nil
}

// localeArg resolves an optional BCP 47 locale argument, defaulting to the
// realm locale.
func localeArg(r *vm.Realm, v vm.Value) (language.Tag, error) {
	if v.IsUndefined() {
		return r.Locale, nil
	}
	text, err := r.ToString(v)
	if err != nil {
		return language.Und, err
	}
	tag, err := language.Parse(text)
	if err != nil {
		return language.Und, errors.NewRangeError("Incorrect locale information provided").CausedBy(err)
	}
	return tag, nil
}

// toIntegerArg implements ToInteger on argument i; absent arguments give def.
func toIntegerArg(r *vm.Realm, args vm.Args, i int, def float64) (float64, error) {
	if i >= args.Len() || args.Arg(i).IsUndefined() {
		return def, nil
	}
	n, err := r.ToNumber(args.Arg(i))
	if err != nil {
		return 0, err
	}
	if math.IsNaN(n) {
		return 0, nil
	}
	if math.IsInf(n, 0) {
		return n, nil
	}
	return math.Trunc(n), nil
}

// clampIndex resolves a possibly negative relative position against length.
func clampIndex(pos float64, length int) int {
	if pos < 0 {
		pos += float64(length)
		if pos < 0 {
			return 0
		}
	}
	if pos > float64(length) {
		return length
	}
	return int(pos)
}

func stringCharAtImpl(r *vm.Realm, _ vm.FnMode, args vm.Args) (vm.Value, error) {
	s, err := thisString(r, args, "String.prototype.charAt")
	if err != nil {
		return vm.Undefined, err
	}
	pos, err := toIntegerArg(r, args, 0, 0)
	if err != nil {
		return vm.Undefined, err
	}
	runes := []rune(s)
	if pos < 0 || pos >= float64(len(runes)) {
		return vm.NewString(""), nil
	}
	return vm.NewString(string(runes[int(pos)])), nil
}

func stringCharCodeAtImpl(r *vm.Realm, _ vm.FnMode, args vm.Args) (vm.Value, error) {
	s, err := thisString(r, args, "String.prototype.charCodeAt")
	if err != nil {
		return vm.Undefined, err
	}
	pos, err := toIntegerArg(r, args, 0, 0)
	if err != nil {
		return vm.Undefined, err
	}
	runes := []rune(s)
	if pos < 0 || pos >= float64(len(runes)) {
		return vm.NaN, nil
	}
	return vm.NumberValue(float64(runes[int(pos)])), nil
}

func stringIndexOfImpl(r *vm.Realm, _ vm.FnMode, args vm.Args) (vm.Value, error) {
	s, err := thisString(r, args, "String.prototype.indexOf")
	if err != nil {
		return vm.Undefined, err
	}
	search, err := r.ToString(args.Arg(0))
	if err != nil {
		return vm.Undefined, err
	}
	pos, err := toIntegerArg(r, args, 1, 0)
	if err != nil {
		return vm.Undefined, err
	}
	runes := []rune(s)
	start := clampIndex(math.Max(pos, 0), len(runes))
	rest := string(runes[start:])
	idx := strings.Index(rest, search)
	if idx < 0 {
		return vm.NumberValue(-1), nil
	}
	return vm.NumberValue(float64(start + utf8.RuneCountInString(rest[:idx]))), nil
}

func stringSliceImpl(r *vm.Realm, _ vm.FnMode, args vm.Args) (vm.Value, error) {
	s, err := thisString(r, args, "String.prototype.slice")
	if err != nil {
		return vm.Undefined, err
	}
	runes := []rune(s)
	from, err := toIntegerArg(r, args, 0, 0)
	if err != nil {
		return vm.Undefined, err
	}
	to, err := toIntegerArg(r, args, 1, float64(len(runes)))
	if err != nil {
		return vm.Undefined, err
	}
	start, end := clampIndex(from, len(runes)), clampIndex(to, len(runes))
	if start >= end {
		return vm.NewString(""), nil
	}
	return vm.NewString(string(runes[start:end])), nil
}

func stringConcatImpl(r *vm.Realm, _ vm.FnMode, args vm.Args) (vm.Value, error) {
	s, err := thisString(r, args, "String.prototype.concat")
	if err != nil {
		return vm.Undefined, err
	}
	var sb strings.Builder
	sb.WriteString(s)
	for _, a := range args.Values {
		part, err := r.ToString(a)
		if err != nil {
			return vm.Undefined, err
		}
		sb.WriteString(part)
	}
	return vm.NewString(sb.String()), nil
}

func stringTrimImpl(r *vm.Realm, _ vm.FnMode, args vm.Args) (vm.Value, error) {
	return mapThisString(r, args, "String.prototype.trim", vm.TrimWhiteSpace)
}

func stringFromCharCodeImpl(r *vm.Realm, _ vm.FnMode, args vm.Args) (vm.Value, error) {
	units := make([]uint16, 0, args.Len())
	for _, a := range args.Values {
		n, err := r.ToNumber(a)
		if err != nil {
			return vm.Undefined, err
		}
		units = append(units, vm.ToUint16(n))
	}
	return vm.NewString(string(utf16.Decode(units))), nil
}
