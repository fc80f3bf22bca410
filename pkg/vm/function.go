package vm

import (
	"jsobj/pkg/errors"
	"jsobj/pkg/interner"
)

// FnMode tells a native function how it was invoked.
type FnMode uint8

const (
	ModeCall      FnMode = iota // f(...)
	ModeConstruct               // new f(...)
)

func (m FnMode) Construct() bool { return m == ModeConstruct }

func (m FnMode) String() string {
	if m == ModeConstruct {
		return "construct"
	}
	return "call"
}

// Args is the argument frame of a native call. Strict reports whether the
// caller runs in strict mode.
type Args struct {
	This   Value
	Values []Value
	Strict bool
}

// Len returns the number of arguments actually passed.
func (a Args) Len() int { return len(a.Values) }

// Arg returns argument i, or Undefined when fewer were passed.
func (a Args) Arg(i int) Value {
	if i < 0 || i >= len(a.Values) {
		return Undefined
	}
	return a.Values[i]
}

// NativeFn is the Go implementation of a built-in.
type NativeFn func(r *Realm, mode FnMode, args Args) (Value, error)

type NativeFunction struct {
	Name        string
	Arity       int
	Fn          NativeFn
	Constructor bool // may be invoked with new
}

// NewNativeFunction creates a callable object whose prototype is
// Function.prototype, with non-enumerable length and name properties.
func (r *Realm) NewNativeFunction(arity int, name string, fn NativeFn) *Object {
	obj := newObject(r, r.FunctionPrototype)
	obj.class = "Function"
	obj.native = &NativeFunction{Name: name, Arity: arity, Fn: fn}
	obj.defineOwn(interner.Length, DataDescriptor(NumberValue(float64(arity)), false, false, true))
	obj.defineOwn(interner.NameKey, DataDescriptor(NewString(name), false, false, true))
	return obj
}

// NewNativeConstructor is NewNativeFunction for functions that accept new.
// proto becomes the constructor's prototype property and gets a
// constructor back-link.
func (r *Realm) NewNativeConstructor(arity int, name string, proto *Object, fn NativeFn) *Object {
	ctor := r.NewNativeFunction(arity, name, fn)
	ctor.native.Constructor = true
	if proto != nil {
		ctor.defineOwn(interner.Prototype, DataDescriptor(ObjectValue(proto), false, false, false))
		proto.defineOwn(interner.Constructor, DataDescriptor(ObjectValue(ctor), true, false, true))
	}
	return ctor
}

// Call invokes fn with the given receiver in call mode.
func (r *Realm) Call(fn Value, this Value, args ...Value) (Value, error) {
	return r.CallWith(fn, Args{This: this, Values: args})
}

// CallWith invokes fn with a prepared argument frame in call mode.
func (r *Realm) CallWith(fn Value, args Args) (Value, error) {
	obj := fn.AsObject()
	if obj == nil || obj.native == nil {
		return Undefined, errors.NewTypeError(errors.TypeNotCallable, fn.ToString())
	}
	return obj.native.Fn(r, ModeCall, args)
}

// Construct invokes fn in construct mode. The receiver is left undefined;
// native constructors allocate their own result.
func (r *Realm) Construct(fn Value, args ...Value) (Value, error) {
	obj := fn.AsObject()
	if obj == nil || obj.native == nil || !obj.native.Constructor {
		return Undefined, errors.NewTypeError(errors.TypeNotConstructor, fn.ToString())
	}
	return obj.native.Fn(r, ModeConstruct, Args{This: Undefined, Values: args})
}
