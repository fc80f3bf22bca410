package vm

import (
	"fmt"

	"jsobj/pkg/errors"
	"jsobj/pkg/interner"
)

const debugObject = false

// slot is one position in an object's insertion-ordered store. Deleted
// properties leave the slot in place with live == false.
type slot struct {
	name interner.Name
	prop Property
	live bool
}

// Object is a script object: an insertion-ordered Name -> Property store, a
// prototype link, an extensible flag and an optional class tag.
//
// The prototype is a plain pointer. Lifetime belongs to the Go heap; the
// object never owns its prototype.
type Object struct {
	realm      *Realm
	slots      []slot
	index      map[interner.Name]int // live names -> slot position
	prototype  *Object
	extensible bool
	class      string

	// Wrapper objects (new String("x")) carry their primitive here.
	primitive    Value
	hasPrimitive bool

	// Callable objects carry their native behaviour here.
	native *NativeFunction
}

func newObject(r *Realm, proto *Object) *Object {
	return &Object{
		realm:      r,
		index:      make(map[interner.Name]int),
		prototype:  proto,
		extensible: true,
	}
}

// Realm returns the engine instance that created o.
func (o *Object) Realm() *Realm { return o.realm }

// Prototype returns o's prototype, or nil for none.
func (o *Object) Prototype() *Object { return o.prototype }

// SetPrototype replaces the prototype link. It performs no cycle or
// extensibility check; see Realm.SetPrototypeChecked.
func (o *Object) SetPrototype(proto *Object) {
	o.prototype = proto
}

func (o *Object) IsExtensible() bool { return o.extensible }

// SetExtensible sets the extensible flag. Standard built-ins only ever clear
// it; setting it again is allowed and leaves the store untouched.
func (o *Object) SetExtensible(extensible bool) {
	o.extensible = extensible
}

// Class returns the class tag and whether one is set.
func (o *Object) Class() (string, bool) {
	return o.class, o.class != ""
}

// ClassOr returns the class tag or fallback when none is set.
func (o *Object) ClassOr(fallback string) string {
	if o.class == "" {
		return fallback
	}
	return o.class
}

func (o *Object) SetClass(class string) { o.class = class }

// Primitive returns the wrapped primitive of a String/Number/Boolean object.
func (o *Object) Primitive() (Value, bool) {
	return o.primitive, o.hasPrimitive
}

func (o *Object) setPrimitive(v Value) {
	o.primitive = v
	o.hasPrimitive = true
}

// IsCallable reports whether o has a call behaviour.
func (o *Object) IsCallable() bool { return o.native != nil }

// Native returns o's native function record, or nil.
func (o *Object) Native() *NativeFunction { return o.native }

// GetOwnProperty looks up an own property. The prototype chain is not
// consulted.
func (o *Object) GetOwnProperty(name interner.Name) (Property, bool) {
	idx, ok := o.index[name]
	if !ok {
		return Property{}, false
	}
	return o.slots[idx].prop, true
}

// HasOwnProperty reports whether name is an own property.
func (o *Object) HasOwnProperty(name interner.Name) bool {
	_, ok := o.index[name]
	return ok
}

// DefineOwnProperty validates desc against the current state of name and
// commits it only if every check passes. On rejection it returns false, plus
// a TypeError when throw is set.
func (o *Object) DefineOwnProperty(name interner.Name, desc PropertyDescriptor, throw bool) (bool, error) {
	idx, exists := o.index[name]
	if !exists {
		if !o.extensible {
			return o.reject(throw, errors.TypeNotExtensible, name)
		}
		o.appendSlot(name, newProperty(desc))
		return true, nil
	}

	next, ok := merge(o.slots[idx].prop, desc)
	if !ok {
		return o.reject(throw, errors.TypeCannotRedefine, name)
	}
	o.slots[idx].prop = next
	if debugObject {
		fmt.Printf("[DEBUG object.go] redefine %s at slot %d: %+v\n", o.nameText(name), idx, next)
	}
	return true, nil
}

// defineOwn is DefineOwnProperty for internal setup where failure would be a
// programming error.
func (o *Object) defineOwn(name interner.Name, desc PropertyDescriptor) {
	if ok, _ := o.DefineOwnProperty(name, desc, false); !ok {
		panic(fmt.Sprintf("vm: cannot define %s on %s object", o.nameText(name), o.ClassOr("unknown")))
	}
}

func (o *Object) appendSlot(name interner.Name, p Property) {
	o.index[name] = len(o.slots)
	o.slots = append(o.slots, slot{name: name, prop: p, live: true})
	if debugObject {
		fmt.Printf("[DEBUG object.go] add %s at slot %d: %+v\n", o.nameText(name), len(o.slots)-1, p)
	}
}

// Delete removes an own property, leaving a tombstone in its slot.
// Non-configurable properties are rejected; absent names succeed.
func (o *Object) Delete(name interner.Name, throw bool) (bool, error) {
	idx, ok := o.index[name]
	if !ok {
		return true, nil
	}
	if !o.slots[idx].prop.Configurable {
		return o.reject(throw, errors.TypeCannotDelete, name)
	}
	o.slots[idx] = slot{name: name}
	delete(o.index, name)
	return true, nil
}

func (o *Object) reject(throw bool, format string, name interner.Name) (bool, error) {
	if throw {
		return false, errors.NewTypeError(format, o.nameText(name))
	}
	return false, nil
}

func (o *Object) nameText(name interner.Name) string {
	if o.realm == nil || name.Index() >= o.realm.Interner.Len() {
		return name.String()
	}
	return o.realm.Interner.Get(name)
}

// KeyKind is the outcome of one positional enumeration step.
type KeyKind uint8

const (
	KeyPresent KeyKind = iota // a live property
	KeyMissing                // a tombstone; advance past it
	KeyEnd                    // no slot at or after this index
)

// KeyResult is returned by GetKey.
type KeyResult struct {
	Kind       KeyKind
	Name       interner.Name
	Enumerable bool
}

// GetKey returns the key stored at position index of the insertion order.
// Deleted slots report KeyMissing and must be skipped, not treated as the end.
// Properties added during a walk get new slots at the end and are reached if
// the walk continues that far.
func (o *Object) GetKey(index int) KeyResult {
	if index < 0 || index >= len(o.slots) {
		return KeyResult{Kind: KeyEnd}
	}
	s := o.slots[index]
	if !s.live {
		return KeyResult{Kind: KeyMissing}
	}
	return KeyResult{Kind: KeyPresent, Name: s.name, Enumerable: s.prop.Enumerable}
}

// OwnKeys returns the live own property names in insertion order.
func (o *Object) OwnKeys() []interner.Name {
	keys := make([]interner.Name, 0, len(o.index))
	for _, s := range o.slots {
		if s.live {
			keys = append(keys, s.name)
		}
	}
	return keys
}

// Len returns the number of live own properties.
func (o *Object) Len() int { return len(o.index) }

// SetOwn defines or overwrites a writable, enumerable, configurable data
// property, the way plain assignment creates one.
func (o *Object) SetOwn(name string, v Value) {
	o.defineOwn(o.realm.Intern(name), DataDescriptor(v, true, true, true))
}

// SetOwnNonEnumerable defines a writable, configurable, non-enumerable data
// property (the attributes of built-in methods).
func (o *Object) SetOwnNonEnumerable(name string, v Value) {
	o.defineOwn(o.realm.Intern(name), DataDescriptor(v, true, false, true))
}

// SetOwnReadOnly defines a non-writable, non-enumerable, non-configurable
// data property.
func (o *Object) SetOwnReadOnly(name string, v Value) {
	o.defineOwn(o.realm.Intern(name), DataDescriptor(v, false, false, false))
}
