package builtins

import (
	"jsobj/pkg/errors"
	"jsobj/pkg/vm"
)

// FunctionInitializer implements the Function builtin
type FunctionInitializer struct{}

func (f *FunctionInitializer) Name() string {
	return "Function"
}

func (f *FunctionInitializer) Priority() int {
	return PriorityFunction // Must be after Object but before others
}

func (f *FunctionInitializer) InitRuntime(ctx *RuntimeContext) error {
	r := ctx.Realm
	functionProto := r.FunctionPrototype

	method(r, functionProto, "call", 1, functionPrototypeCallImpl)
	method(r, functionProto, "apply", 2, functionPrototypeApplyImpl)
	method(r, functionProto, "bind", 1, functionPrototypeBindImpl)
	method(r, functionProto, "toString", 0, functionPrototypeToStringImpl)

	// There is no compiler behind this realm, so Function cannot build
	// functions from source text.
	functionCtor := r.NewNativeConstructor(1, "Function", functionProto, func(*vm.Realm, vm.FnMode, vm.Args) (vm.Value, error) {
		return vm.Undefined, errors.NewTypeError("Function constructor is not supported")
	})
	return ctx.DefineGlobal("Function", vm.ObjectValue(functionCtor))
}

func callableThis(args vm.Args, caller string) (vm.Value, error) {
	if !args.This.IsCallable() {
		return vm.Undefined, errors.NewTypeError(errors.TypeNotCallable, caller+" receiver")
	}
	return args.This, nil
}

// Function.prototype.call(thisArg, ...args)
func functionPrototypeCallImpl(r *vm.Realm, _ vm.FnMode, args vm.Args) (vm.Value, error) {
	fn, err := callableThis(args, "Function.prototype.call")
	if err != nil {
		return vm.Undefined, err
	}
	var rest []vm.Value
	if args.Len() > 1 {
		rest = args.Values[1:]
	}
	return r.CallWith(fn, vm.Args{This: args.Arg(0), Values: rest, Strict: args.Strict})
}

// Function.prototype.apply(thisArg, argsArray)
func functionPrototypeApplyImpl(r *vm.Realm, _ vm.FnMode, args vm.Args) (vm.Value, error) {
	fn, err := callableThis(args, "Function.prototype.apply")
	if err != nil {
		return vm.Undefined, err
	}
	var values []vm.Value
	if list := args.Arg(1); !list.IsNullOrUndefined() {
		arr := list.AsObject()
		if arr == nil {
			return vm.Undefined, errors.NewTypeError("CreateListFromArrayLike called on non-object")
		}
		if values, err = r.ArrayValues(arr); err != nil {
			return vm.Undefined, err
		}
	}
	return r.CallWith(fn, vm.Args{This: args.Arg(0), Values: values, Strict: args.Strict})
}

// Function.prototype.bind(thisArg, ...args)
func functionPrototypeBindImpl(r *vm.Realm, _ vm.FnMode, args vm.Args) (vm.Value, error) {
	target, err := callableThis(args, "Function.prototype.bind")
	if err != nil {
		return vm.Undefined, err
	}
	boundThis := args.Arg(0)
	var boundArgs []vm.Value
	if args.Len() > 1 {
		boundArgs = append(boundArgs, args.Values[1:]...)
	}

	native := target.AsObject().Native()
	arity := native.Arity - len(boundArgs)
	if arity < 0 {
		arity = 0
	}
	bound := func(r *vm.Realm, mode vm.FnMode, call vm.Args) (vm.Value, error) {
		all := make([]vm.Value, 0, len(boundArgs)+call.Len())
		all = append(all, boundArgs...)
		all = append(all, call.Values...)
		if mode.Construct() {
			return r.Construct(target, all...)
		}
		return r.CallWith(target, vm.Args{This: boundThis, Values: all, Strict: call.Strict})
	}
	name := "bound " + native.Name
	if native.Constructor {
		return vm.ObjectValue(r.NewNativeConstructor(arity, name, nil, bound)), nil
	}
	return vm.ObjectValue(r.NewNativeFunction(arity, name, bound)), nil
}

func functionPrototypeToStringImpl(r *vm.Realm, _ vm.FnMode, args vm.Args) (vm.Value, error) {
	fn, err := callableThis(args, "Function.prototype.toString")
	if err != nil {
		return vm.Undefined, err
	}
	return vm.NewString("function " + fn.AsObject().Native().Name + "() { [native code] }"), nil
}
