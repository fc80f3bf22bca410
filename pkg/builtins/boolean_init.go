package builtins

import (
	"jsobj/pkg/vm"
)

type BooleanInitializer struct{}

func (b *BooleanInitializer) Name() string {
	return "Boolean"
}

func (b *BooleanInitializer) Priority() int {
	return PriorityBoolean
}

func (b *BooleanInitializer) InitRuntime(ctx *RuntimeContext) error {
	r := ctx.Realm
	booleanProto := r.BooleanPrototype

	method(r, booleanProto, "toString", 0, func(_ *vm.Realm, _ vm.FnMode, args vm.Args) (vm.Value, error) {
		v, err := thisPrimitive(args.This, vm.TypeBoolean, "Boolean.prototype.toString")
		if err != nil {
			return vm.Undefined, err
		}
		return vm.NewString(v.ToString()), nil
	})
	method(r, booleanProto, "valueOf", 0, func(_ *vm.Realm, _ vm.FnMode, args vm.Args) (vm.Value, error) {
		return thisPrimitive(args.This, vm.TypeBoolean, "Boolean.prototype.valueOf")
	})

	// Boolean(value) converts; new Boolean(value) wraps
	ctor := r.NewNativeConstructor(1, "Boolean", booleanProto, func(r *vm.Realm, mode vm.FnMode, args vm.Args) (vm.Value, error) {
		b := vm.BooleanValue(args.Arg(0).ToBoolean())
		if !mode.Construct() {
			return b, nil
		}
		return toObjectValue(r, b)
	})

	return ctx.DefineGlobal("Boolean", vm.ObjectValue(ctor))
}
