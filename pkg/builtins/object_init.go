package builtins

import (
	"jsobj/pkg/errors"
	"jsobj/pkg/interner"
	"jsobj/pkg/vm"
)

// ObjectInitializer implements the Object builtin
type ObjectInitializer struct{}

func (o *ObjectInitializer) Name() string {
	return "Object"
}

func (o *ObjectInitializer) Priority() int {
	return PriorityObject // Must be first (base prototype)
}

func (o *ObjectInitializer) InitRuntime(ctx *RuntimeContext) error {
	r := ctx.Realm
	objectProto := r.ObjectPrototype

	// Add prototype methods
	method(r, objectProto, "toString", 0, objectToStringImpl)
	method(r, objectProto, "toLocaleString", 0, objectToLocaleStringImpl)
	method(r, objectProto, "valueOf", 0, objectValueOfImpl)
	method(r, objectProto, "hasOwnProperty", 1, objectHasOwnPropertyImpl)
	method(r, objectProto, "isPrototypeOf", 1, objectIsPrototypeOfImpl)
	method(r, objectProto, "propertyIsEnumerable", 1, objectPropertyIsEnumerableImpl)

	// Create Object constructor; this also links Object.prototype.constructor
	ctor := r.NewNativeConstructor(1, "Object", objectProto, objectConstructorImpl)
	r.ObjectConstructor = ctor

	// Static methods
	method(r, ctor, "create", 2, objectCreateImpl)
	method(r, ctor, "getPrototypeOf", 1, objectGetPrototypeOfImpl)
	method(r, ctor, "setPrototypeOf", 2, objectSetPrototypeOfImpl)
	method(r, ctor, "preventExtensions", 1, objectPreventExtensionsImpl)
	method(r, ctor, "isExtensible", 1, objectIsExtensibleImpl)
	method(r, ctor, "getOwnPropertyNames", 1, objectGetOwnPropertyNamesImpl)
	method(r, ctor, "keys", 1, objectKeysImpl)
	method(r, ctor, "getOwnPropertyDescriptor", 2, objectGetOwnPropertyDescriptorImpl)
	method(r, ctor, "defineProperty", 3, objectDefinePropertyImpl)
	method(r, ctor, "defineProperties", 2, objectDefinePropertiesImpl)

	return ctx.DefineGlobal("Object", vm.ObjectValue(ctor))
}

// Object(value) and new Object(value)
func objectConstructorImpl(r *vm.Realm, mode vm.FnMode, args vm.Args) (vm.Value, error) {
	arg := args.Arg(0)
	if mode.Construct() {
		switch arg.Type() {
		case vm.TypeObject:
			return arg, nil
		case vm.TypeString, vm.TypeBoolean, vm.TypeNumber:
			return toObjectValue(r, arg)
		}
		return vm.ObjectValue(r.NewObject()), nil
	}

	if arg.IsNullOrUndefined() {
		return vm.ObjectValue(r.NewObject()), nil
	}
	return toObjectValue(r, arg)
}

func toObjectValue(r *vm.Realm, v vm.Value) (vm.Value, error) {
	obj, err := r.ToObject(v)
	if err != nil {
		return vm.Undefined, err
	}
	return vm.ObjectValue(obj), nil
}

func objectCreateImpl(r *vm.Realm, _ vm.FnMode, args vm.Args) (vm.Value, error) {
	if err := requireArgs(args, 1, "Object.create"); err != nil {
		return vm.Undefined, err
	}
	proto, err := prototypeArg(r, args.Arg(0))
	if err != nil {
		return vm.Undefined, err
	}
	result := r.NewObjectWithPrototype(proto)

	// Optional property descriptors map
	if props := args.Arg(1); !props.IsUndefined() {
		if err := defineProperties(r, result, props); err != nil {
			return vm.Undefined, err
		}
	}
	return vm.ObjectValue(result), nil
}

// prototypeArg accepts an object or null as a prototype.
func prototypeArg(r *vm.Realm, v vm.Value) (*vm.Object, error) {
	if v.IsNull() {
		return nil, nil
	}
	if obj := v.AsObject(); obj != nil {
		return obj, nil
	}
	return nil, errors.NewTypeError(errors.TypeProtoNotObject, r.Inspect(v))
}

func objectToStringImpl(r *vm.Realm, _ vm.FnMode, args vm.Args) (vm.Value, error) {
	switch args.This.Type() {
	case vm.TypeUndefined:
		return vm.NewString("[object Undefined]"), nil
	case vm.TypeNull:
		return vm.NewString("[object Null]"), nil
	}
	obj, err := r.ToObject(args.This)
	if err != nil {
		return vm.Undefined, err
	}
	return vm.NewString("[object " + obj.ClassOr("Unknown") + "]"), nil
}

func objectToLocaleStringImpl(r *vm.Realm, _ vm.FnMode, args vm.Args) (vm.Value, error) {
	obj, err := r.ToObject(args.This)
	if err != nil {
		return vm.Undefined, err
	}
	toString, err := r.Get(obj, interner.ToString)
	if err != nil {
		return vm.Undefined, err
	}
	if !r.Coerce.IsCallable(toString) {
		return vm.Undefined, errors.NewTypeError(errors.TypeCannotCallToString)
	}
	return r.Call(toString, vm.ObjectValue(obj))
}

func objectValueOfImpl(r *vm.Realm, _ vm.FnMode, args vm.Args) (vm.Value, error) {
	return toObjectValue(r, args.This)
}

func objectHasOwnPropertyImpl(r *vm.Realm, _ vm.FnMode, args vm.Args) (vm.Value, error) {
	name, err := r.InternValue(args.Arg(0))
	if err != nil {
		return vm.Undefined, err
	}
	obj, err := r.ToObject(args.This)
	if err != nil {
		return vm.Undefined, err
	}
	return vm.BooleanValue(obj.HasOwnProperty(name)), nil
}

func objectPropertyIsEnumerableImpl(r *vm.Realm, _ vm.FnMode, args vm.Args) (vm.Value, error) {
	name, err := r.InternValue(args.Arg(0))
	if err != nil {
		return vm.Undefined, err
	}
	obj, err := r.ToObject(args.This)
	if err != nil {
		return vm.Undefined, err
	}
	p, ok := obj.GetOwnProperty(name)
	return vm.BooleanValue(ok && p.Enumerable), nil
}

func objectIsPrototypeOfImpl(r *vm.Realm, _ vm.FnMode, args vm.Args) (vm.Value, error) {
	target := args.Arg(0).AsObject()
	if target == nil {
		return vm.False, nil
	}
	obj, err := r.ToObject(args.This)
	if err != nil {
		return vm.Undefined, err
	}
	found, err := r.IsPrototypeOf(obj, target)
	if err != nil {
		return vm.Undefined, err
	}
	return vm.BooleanValue(found), nil
}

// Object.getPrototypeOf returns null for an object without a prototype.
func objectGetPrototypeOfImpl(r *vm.Realm, _ vm.FnMode, args vm.Args) (vm.Value, error) {
	obj, err := objectArg(args, 0, "Object.getPrototypeOf")
	if err != nil {
		return vm.Undefined, err
	}
	return vm.ObjectValue(obj.Prototype()), nil
}

func objectSetPrototypeOfImpl(r *vm.Realm, _ vm.FnMode, args vm.Args) (vm.Value, error) {
	obj, err := objectArg(args, 0, "Object.setPrototypeOf")
	if err != nil {
		return vm.Undefined, err
	}
	proto, err := prototypeArg(r, args.Arg(1))
	if err != nil {
		return vm.Undefined, err
	}
	if err := r.SetPrototypeChecked(obj, proto); err != nil {
		return vm.Undefined, err
	}
	return vm.ObjectValue(obj), nil
}

func objectPreventExtensionsImpl(r *vm.Realm, _ vm.FnMode, args vm.Args) (vm.Value, error) {
	obj, err := objectArg(args, 0, "Object.preventExtensions")
	if err != nil {
		return vm.Undefined, err
	}
	obj.SetExtensible(false)
	return vm.ObjectValue(obj), nil
}

func objectIsExtensibleImpl(r *vm.Realm, _ vm.FnMode, args vm.Args) (vm.Value, error) {
	obj, err := objectArg(args, 0, "Object.isExtensible")
	if err != nil {
		return vm.Undefined, err
	}
	return vm.BooleanValue(obj.IsExtensible()), nil
}

func objectGetOwnPropertyNamesImpl(r *vm.Realm, _ vm.FnMode, args vm.Args) (vm.Value, error) {
	obj, err := objectArg(args, 0, "Object.getOwnPropertyNames")
	if err != nil {
		return vm.Undefined, err
	}
	return vm.ObjectValue(r.NewArray(enumerableKeys(r, obj))), nil
}

func objectKeysImpl(r *vm.Realm, _ vm.FnMode, args vm.Args) (vm.Value, error) {
	obj, err := objectArg(args, 0, "Object.keys")
	if err != nil {
		return vm.Undefined, err
	}
	return vm.ObjectValue(r.NewArray(enumerableKeys(r, obj))), nil
}

// enumerableKeys walks obj positionally, skipping deleted slots and
// non-enumerable keys, and returns the key texts in insertion order.
func enumerableKeys(r *vm.Realm, obj *vm.Object) []vm.Value {
	var keys []vm.Value
	for i := 0; ; i++ {
		k := obj.GetKey(i)
		if k.Kind == vm.KeyEnd {
			break
		}
		if k.Kind == vm.KeyPresent && k.Enumerable {
			keys = append(keys, vm.NewString(r.NameText(k.Name)))
		}
	}
	return keys
}

func objectGetOwnPropertyDescriptorImpl(r *vm.Realm, _ vm.FnMode, args vm.Args) (vm.Value, error) {
	obj, err := objectArg(args, 0, "Object.getOwnPropertyDescriptor")
	if err != nil {
		return vm.Undefined, err
	}
	name, err := r.InternValue(args.Arg(1))
	if err != nil {
		return vm.Undefined, err
	}
	p, ok := obj.GetOwnProperty(name)
	if !ok {
		return vm.Undefined, nil
	}
	return vm.FromPropertyDescriptor(r, p), nil
}

func objectDefinePropertyImpl(r *vm.Realm, _ vm.FnMode, args vm.Args) (vm.Value, error) {
	obj, err := objectArg(args, 0, "Object.defineProperty")
	if err != nil {
		return vm.Undefined, err
	}
	name, err := r.InternValue(args.Arg(1))
	if err != nil {
		return vm.Undefined, err
	}
	desc, err := vm.ToPropertyDescriptor(r, args.Arg(2))
	if err != nil {
		return vm.Undefined, err
	}
	if _, err := obj.DefineOwnProperty(name, desc, true); err != nil {
		return vm.Undefined, err
	}
	return vm.ObjectValue(obj), nil
}

func objectDefinePropertiesImpl(r *vm.Realm, _ vm.FnMode, args vm.Args) (vm.Value, error) {
	obj, err := objectArg(args, 0, "Object.defineProperties")
	if err != nil {
		return vm.Undefined, err
	}
	if err := defineProperties(r, obj, args.Arg(1)); err != nil {
		return vm.Undefined, err
	}
	return vm.ObjectValue(obj), nil
}

// defineProperties reads every descriptor first and only then defines them,
// so a malformed descriptor leaves obj untouched.
func defineProperties(r *vm.Realm, obj *vm.Object, props vm.Value) error {
	src, err := r.ToObject(props)
	if err != nil {
		return err
	}
	type pending struct {
		name interner.Name
		desc vm.PropertyDescriptor
	}
	var descs []pending
	for i := 0; ; i++ {
		k := src.GetKey(i)
		if k.Kind == vm.KeyEnd {
			break
		}
		if k.Kind != vm.KeyPresent || !k.Enumerable {
			continue
		}
		descObj, err := r.Get(src, k.Name)
		if err != nil {
			return err
		}
		desc, err := vm.ToPropertyDescriptor(r, descObj)
		if err != nil {
			return err
		}
		descs = append(descs, pending{k.Name, desc})
	}
	for _, p := range descs {
		if _, err := obj.DefineOwnProperty(p.name, p.desc, true); err != nil {
			return err
		}
	}
	return nil
}
