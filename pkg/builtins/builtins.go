package builtins

import (
	"jsobj/pkg/errors"
	"jsobj/pkg/vm"
)

// method installs a native function as a non-enumerable, writable,
// configurable property, the attributes built-in methods carry.
func method(r *vm.Realm, target *vm.Object, name string, arity int, fn vm.NativeFn) *vm.Object {
	f := r.NewNativeFunction(arity, name, fn)
	target.SetOwnNonEnumerable(name, vm.ObjectValue(f))
	return f
}

// objectArg returns argument i when it is an object. Anything else is a
// TypeError naming the calling built-in.
func objectArg(args vm.Args, i int, caller string) (*vm.Object, error) {
	obj := args.Arg(i).AsObject()
	if obj == nil {
		return nil, errors.NewTypeError(errors.TypeNotObject, caller)
	}
	return obj, nil
}

// requireArgs fails when fewer than n arguments were passed.
func requireArgs(args vm.Args, n int, caller string) error {
	if args.Len() < n {
		return errors.NewTypeError(errors.TypeMissingArgument, caller, n)
	}
	return nil
}

// thisPrimitive extracts the primitive of the given type from a receiver
// that is either that primitive or a wrapper object holding it.
func thisPrimitive(this vm.Value, typ vm.ValueType, caller string) (vm.Value, error) {
	if this.Type() == typ {
		return this, nil
	}
	if obj := this.AsObject(); obj != nil {
		if prim, ok := obj.Primitive(); ok && prim.Type() == typ {
			return prim, nil
		}
	}
	return vm.Undefined, errors.NewTypeError("%s requires that 'this' be a %s", caller, className(typ))
}

func className(typ vm.ValueType) string {
	switch typ {
	case vm.TypeString:
		return "String"
	case vm.TypeNumber:
		return "Number"
	case vm.TypeBoolean:
		return "Boolean"
	}
	return "Object"
}
