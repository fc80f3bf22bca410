package builtins

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"jsobj/pkg/errors"
	"jsobj/pkg/vm"
)

// NumberInitializer implements the Number builtin
type NumberInitializer struct{}

func (n *NumberInitializer) Name() string {
	return "Number"
}

func (n *NumberInitializer) Priority() int {
	return PriorityNumber
}

func (n *NumberInitializer) InitRuntime(ctx *RuntimeContext) error {
	r := ctx.Realm
	numberProto := r.NumberPrototype

	method(r, numberProto, "toString", 1, numberToStringImpl)
	method(r, numberProto, "toLocaleString", 0, numberToLocaleStringImpl)
	method(r, numberProto, "valueOf", 0, func(_ *vm.Realm, _ vm.FnMode, args vm.Args) (vm.Value, error) {
		return thisPrimitive(args.This, vm.TypeNumber, "Number.prototype.valueOf")
	})
	method(r, numberProto, "toFixed", 1, numberToFixedImpl)

	ctor := r.NewNativeConstructor(1, "Number", numberProto, numberConstructorImpl)
	ctor.SetOwnReadOnly("MAX_VALUE", vm.NumberValue(math.MaxFloat64))
	ctor.SetOwnReadOnly("MIN_VALUE", vm.NumberValue(5e-324))
	ctor.SetOwnReadOnly("NaN", vm.NaN)
	ctor.SetOwnReadOnly("POSITIVE_INFINITY", vm.NumberValue(math.Inf(1)))
	ctor.SetOwnReadOnly("NEGATIVE_INFINITY", vm.NumberValue(math.Inf(-1)))

	return ctx.DefineGlobal("Number", vm.ObjectValue(ctor))
}

// Number(value) converts; new Number(value) wraps the converted number.
func numberConstructorImpl(r *vm.Realm, mode vm.FnMode, args vm.Args) (vm.Value, error) {
	n := 0.0
	if args.Len() > 0 {
		var err error
		if n, err = r.ToNumber(args.Arg(0)); err != nil {
			return vm.Undefined, err
		}
	}
	if !mode.Construct() {
		return vm.NumberValue(n), nil
	}
	return toObjectValue(r, vm.NumberValue(n))
}

func thisNumber(args vm.Args, caller string) (float64, error) {
	v, err := thisPrimitive(args.This, vm.TypeNumber, caller)
	if err != nil {
		return 0, err
	}
	return v.AsFloat(), nil
}

func numberToStringImpl(r *vm.Realm, _ vm.FnMode, args vm.Args) (vm.Value, error) {
	f, err := thisNumber(args, "Number.prototype.toString")
	if err != nil {
		return vm.Undefined, err
	}
	radix := 10.0
	if !args.Arg(0).IsUndefined() {
		if radix, err = toIntegerArg(r, args, 0, 10); err != nil {
			return vm.Undefined, err
		}
	}
	if radix < 2 || radix > 36 {
		return vm.Undefined, errors.NewRangeError("toString() radix must be between 2 and 36")
	}
	if radix == 10 {
		return vm.NewString(vm.NumberToString(f)), nil
	}
	return vm.NewString(formatRadix(f, int(radix))), nil
}

const radixFractionDigits = 52

// formatRadix renders f in the given radix. Fractions are cut after
// radixFractionDigits digits.
func formatRadix(f float64, radix int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return vm.NumberToString(f)
	}
	var sb strings.Builder
	if f < 0 {
		sb.WriteByte('-')
		f = -f
	}
	intPart, frac := math.Modf(f)
	if intPart < 1<<63 {
		sb.WriteString(strconv.FormatUint(uint64(intPart), radix))
	} else {
		var digits []byte
		for intPart >= 1 {
			d := math.Mod(intPart, float64(radix))
			digits = append(digits, strconv.FormatInt(int64(d), radix)[0])
			intPart = math.Floor(intPart / float64(radix))
		}
		for i := len(digits) - 1; i >= 0; i-- {
			sb.WriteByte(digits[i])
		}
	}
	if frac > 0 {
		sb.WriteByte('.')
		for i := 0; i < radixFractionDigits && frac > 0; i++ {
			frac *= float64(radix)
			d, rest := math.Modf(frac)
			sb.WriteString(strconv.FormatInt(int64(d), radix))
			frac = rest
		}
	}
	return sb.String()
}

// Number.prototype.toLocaleString([locales]) groups digits and keeps at most
// three fraction digits, as the default Intl.NumberFormat does.
func numberToLocaleStringImpl(r *vm.Realm, _ vm.FnMode, args vm.Args) (vm.Value, error) {
	f, err := thisNumber(args, "Number.prototype.toLocaleString")
	if err != nil {
		return vm.Undefined, err
	}
	tag, err := localeArg(r, args.Arg(0))
	if err != nil {
		return vm.Undefined, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return vm.NewString(vm.NumberToString(f)), nil
	}
	if f == 0 {
		f = 0 // drop the sign of -0
	}
	p := message.NewPrinter(tag)
	return vm.NewString(p.Sprint(number.Decimal(f, number.MaxFractionDigits(3)))), nil
}

func numberToFixedImpl(r *vm.Realm, _ vm.FnMode, args vm.Args) (vm.Value, error) {
	f, err := thisNumber(args, "Number.prototype.toFixed")
	if err != nil {
		return vm.Undefined, err
	}
	digits, err := toIntegerArg(r, args, 0, 0)
	if err != nil {
		return vm.Undefined, err
	}
	if digits < 0 || digits > 20 {
		return vm.Undefined, errors.NewRangeError("toFixed() digits argument must be between 0 and 20")
	}
	if math.IsNaN(f) || math.Abs(f) >= 1e21 {
		return vm.NewString(vm.NumberToString(f)), nil
	}
	if f == 0 {
		f = 0
	}
	return vm.NewString(strconv.FormatFloat(f, 'f', int(digits), 64)), nil
}
