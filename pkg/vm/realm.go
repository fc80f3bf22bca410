package vm

import (
	"fmt"
	"strconv"

	"golang.org/x/text/language"

	"jsobj/pkg/errors"
	"jsobj/pkg/interner"
)

const debugRealm = false

// Realm is one engine instance: its interner, its intrinsic prototypes and
// its global object. Nothing in this package is global state; everything
// hangs off a Realm.
type Realm struct {
	// One canonical text <-> Name table per engine instance.
	Interner *interner.Interner

	// Coercion capability. Embedders may swap in their own.
	Coerce Coercer

	// Locale used by the toLocale* built-ins.
	Locale language.Tag

	// Built-in prototypes
	ObjectPrototype   *Object
	FunctionPrototype *Object
	ArrayPrototype    *Object
	StringPrototype   *Object
	NumberPrototype   *Object
	BooleanPrototype  *Object

	// Constructors, set by the builtins package
	ObjectConstructor *Object

	GlobalObject *Object

	initialized bool
}

// NewRealm creates a realm with its interner and empty intrinsic objects.
// The builtins package populates them.
func NewRealm() *Realm {
	r := &Realm{
		Interner: interner.NewWithWellKnown(),
		Coerce:   DefaultCoercer{},
		Locale:   language.English,
	}
	r.InitializePrototypes()
	return r
}

// InitializePrototypes creates the prototype hierarchy of the intrinsics.
func (r *Realm) InitializePrototypes() {
	// Object.prototype is the root (no prototype)
	r.ObjectPrototype = newObject(r, nil)
	r.ObjectPrototype.class = "Object"

	// Function.prototype is itself callable and returns undefined.
	r.FunctionPrototype = newObject(r, r.ObjectPrototype)
	r.FunctionPrototype.class = "Function"
	r.FunctionPrototype.native = &NativeFunction{
		Fn: func(*Realm, FnMode, Args) (Value, error) { return Undefined, nil },
	}

	r.ArrayPrototype = newObject(r, r.ObjectPrototype)
	r.ArrayPrototype.class = "Array"

	r.StringPrototype = newObject(r, r.ObjectPrototype)
	r.StringPrototype.class = "String"
	r.StringPrototype.setPrimitive(NewString(""))

	r.NumberPrototype = newObject(r, r.ObjectPrototype)
	r.NumberPrototype.class = "Number"
	r.NumberPrototype.setPrimitive(NumberValue(0))

	r.BooleanPrototype = newObject(r, r.ObjectPrototype)
	r.BooleanPrototype.class = "Boolean"
	r.BooleanPrototype.setPrimitive(False)

	r.GlobalObject = newObject(r, r.ObjectPrototype)
	r.GlobalObject.class = "global"
	r.GlobalObject.defineOwn(interner.GlobalThis, DataDescriptor(ObjectValue(r.GlobalObject), true, false, true))

	if debugRealm {
		fmt.Printf("[DEBUG realm.go] prototypes initialized, %d names interned\n", r.Interner.Len())
	}
}

// MarkInitialized records that the built-ins have been installed.
func (r *Realm) MarkInitialized() { r.initialized = true }

// IsInitialized reports whether MarkInitialized has been called.
func (r *Realm) IsInitialized() bool { return r.initialized }

// Intern interns text in the realm's interner.
func (r *Realm) Intern(text string) interner.Name {
	return r.Interner.Intern(text)
}

// NameText returns the text of name.
func (r *Realm) NameText(name interner.Name) string {
	return r.Interner.Get(name)
}

// InternValue converts v to a property key: ToString, then intern.
func (r *Realm) InternValue(v Value) (interner.Name, error) {
	if v.IsString() {
		return r.Intern(v.AsString()), nil
	}
	s, err := r.ToString(v)
	if err != nil {
		return 0, err
	}
	return r.Intern(s), nil
}

// NewObject creates an empty ordinary object inheriting from
// Object.prototype.
func (r *Realm) NewObject() *Object {
	return r.NewObjectWithPrototype(r.ObjectPrototype)
}

// NewObjectWithPrototype creates an empty ordinary object with the given
// prototype, which may be nil.
func (r *Realm) NewObjectWithPrototype(proto *Object) *Object {
	obj := newObject(r, proto)
	obj.class = "Object"
	return obj
}

// NewBareObject creates an object with no class tag, for embedders building
// exotic objects.
func (r *Realm) NewBareObject(proto *Object) *Object {
	return newObject(r, proto)
}

// NewArray creates an Array object holding values at keys "0".."n-1" with a
// non-enumerable length.
func (r *Realm) NewArray(values []Value) *Object {
	arr := newObject(r, r.ArrayPrototype)
	arr.class = "Array"
	for i, v := range values {
		arr.defineOwn(r.Intern(strconv.Itoa(i)), DataDescriptor(v, true, true, true))
	}
	arr.defineOwn(interner.Length, DataDescriptor(NumberValue(float64(len(values))), true, false, false))
	return arr
}

// MaxArrayValues bounds the length ArrayValues will read.
const MaxArrayValues = 1 << 24

// ArrayValues reads back the dense elements of an array-like object. The
// length goes through ToUint32, so Infinity reads nothing and lengths
// that wrap past MaxArrayValues are a RangeError.
func (r *Realm) ArrayValues(arr *Object) ([]Value, error) {
	lenVal, err := r.Get(arr, interner.Length)
	if err != nil {
		return nil, err
	}
	n, err := r.ToNumber(lenVal)
	if err != nil {
		return nil, err
	}
	length := ToUint32(n)
	if length > MaxArrayValues {
		return nil, errors.NewRangeError("Too many arguments in function call (only %d allowed)", MaxArrayValues)
	}
	out := make([]Value, 0, length)
	for i := 0; i < int(length); i++ {
		v, err := r.Get(arr, r.Intern(strconv.Itoa(i)))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// DefineGlobal installs a writable, configurable, non-enumerable global.
func (r *Realm) DefineGlobal(name string, value Value) error {
	_, err := r.GlobalObject.DefineOwnProperty(r.Intern(name), DataDescriptor(value, true, false, true), true)
	return err
}

// GetGlobal reads a global binding.
func (r *Realm) GetGlobal(name string) (Value, bool) {
	n, ok := r.Interner.Find(name)
	if !ok {
		return Undefined, false
	}
	prop, ok := r.GlobalObject.GetOwnProperty(n)
	if !ok || prop.IsAccessor() {
		return Undefined, ok
	}
	return prop.Value, true
}

// ThrowValue wraps a script value as a Go error so it can unwind through
// native frames.
func (r *Realm) ThrowValue(v Value) error {
	return &errors.ThrownError{Value: v, Msg: r.Inspect(v)}
}
