package builtins

import (
	"math"
	"strconv"
	"strings"

	"jsobj/pkg/vm"
)

type GlobalsInitializer struct{}

func (g *GlobalsInitializer) Name() string {
	return "Globals"
}

func (g *GlobalsInitializer) Priority() int {
	return PriorityGlobals
}

func (g *GlobalsInitializer) InitRuntime(ctx *RuntimeContext) error {
	r := ctx.Realm
	global := r.GlobalObject

	// Value properties of the global object are read-only
	global.SetOwnReadOnly("NaN", vm.NaN)
	global.SetOwnReadOnly("Infinity", vm.NumberValue(math.Inf(1)))
	global.SetOwnReadOnly("undefined", vm.Undefined)

	functions := []struct {
		name  string
		arity int
		fn    vm.NativeFn
	}{
		{"isNaN", 1, globalIsNaNImpl},
		{"isFinite", 1, globalIsFiniteImpl},
		{"parseInt", 2, globalParseIntImpl},
		{"parseFloat", 1, globalParseFloatImpl},
	}
	for _, f := range functions {
		if err := ctx.DefineGlobal(f.name, vm.ObjectValue(r.NewNativeFunction(f.arity, f.name, f.fn))); err != nil {
			return err
		}
	}
	return nil
}

func globalIsNaNImpl(r *vm.Realm, _ vm.FnMode, args vm.Args) (vm.Value, error) {
	n, err := r.ToNumber(args.Arg(0))
	if err != nil {
		return vm.Undefined, err
	}
	return vm.BooleanValue(math.IsNaN(n)), nil
}

func globalIsFiniteImpl(r *vm.Realm, _ vm.FnMode, args vm.Args) (vm.Value, error) {
	n, err := r.ToNumber(args.Arg(0))
	if err != nil {
		return vm.Undefined, err
	}
	return vm.BooleanValue(!math.IsNaN(n) && !math.IsInf(n, 0)), nil
}

func globalParseIntImpl(r *vm.Realm, _ vm.FnMode, args vm.Args) (vm.Value, error) {
	s, err := r.ToString(args.Arg(0))
	if err != nil {
		return vm.Undefined, err
	}
	n, err := r.ToNumber(args.Arg(1))
	if err != nil {
		return vm.Undefined, err
	}
	return vm.NumberValue(parseIntPrefix(s, int(vm.ToInt32(n)))), nil
}

// parseIntPrefix parses the longest run of radix digits after optional
// whitespace, sign and 0x prefix. Radix 0 means 10, or 16 after 0x.
func parseIntPrefix(s string, radix int) float64 {
	s = strings.TrimLeftFunc(s, vm.IsWhiteSpace)
	sign := 1.0
	if s != "" && (s[0] == '+' || s[0] == '-') {
		if s[0] == '-' {
			sign = -1
		}
		s = s[1:]
	}
	stripPrefix := true
	switch {
	case radix == 0:
		radix = 10
	case radix < 2 || radix > 36:
		return math.NaN()
	case radix != 16:
		stripPrefix = false
	}
	if stripPrefix && len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
		radix = 16
	}

	result := 0.0
	digits := 0
	for _, c := range s {
		d := digitValue(c)
		if d < 0 || d >= radix {
			break
		}
		result = result*float64(radix) + float64(d)
		digits++
	}
	if digits == 0 {
		return math.NaN()
	}
	return sign * result
}

func digitValue(c rune) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	}
	return -1
}

func globalParseFloatImpl(r *vm.Realm, _ vm.FnMode, args vm.Args) (vm.Value, error) {
	s, err := r.ToString(args.Arg(0))
	if err != nil {
		return vm.Undefined, err
	}
	return vm.NumberValue(parseFloatPrefix(s)), nil
}

// parseFloatPrefix parses the longest prefix of s that is a decimal literal.
func parseFloatPrefix(s string) float64 {
	s = strings.TrimLeftFunc(s, vm.IsWhiteSpace)
	rest := strings.TrimLeft(s, "+-")
	if len(s)-len(rest) <= 1 && strings.HasPrefix(rest, "Infinity") {
		if strings.HasPrefix(s, "-") {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	mantissaStart := end
	sawDigit := false
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
		sawDigit = true
	}
	if end < len(s) && s[end] == '.' {
		end++
		for end < len(s) && s[end] >= '0' && s[end] <= '9' {
			end++
			sawDigit = true
		}
	}
	if !sawDigit {
		return math.NaN()
	}
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		exp := end + 1
		if exp < len(s) && (s[exp] == '+' || s[exp] == '-') {
			exp++
		}
		expDigits := exp
		for exp < len(s) && s[exp] >= '0' && s[exp] <= '9' {
			exp++
		}
		if exp > expDigits {
			end = exp
		}
	}
	literal := s[:end]
	if mantissaStart < end && s[end-1] == '.' {
		literal = s[:end-1]
	}
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return f
		}
		return math.NaN()
	}
	return f
}
