package vm

import (
	"jsobj/pkg/errors"
	"jsobj/pkg/interner"
)

// Flag is a tri-state property attribute: absent, false or true.
type Flag int8

const (
	FlagNotSet Flag = iota
	FlagFalse
	FlagTrue
)

func ToFlag(b bool) Flag {
	if b {
		return FlagTrue
	}
	return FlagFalse
}

// Bool resolves the flag, treating FlagNotSet as false.
func (f Flag) Bool() bool {
	return f == FlagTrue
}

// PropertyDescriptor is a possibly partial attribute record, the input to
// DefineOwnProperty. Absent fields keep the stored attribute of an existing
// property and default to false/undefined for a new one.
type PropertyDescriptor struct {
	Value    Value
	HasValue bool

	Getter Value
	HasGet bool
	Setter Value
	HasSet bool

	Writable, Enumerable, Configurable Flag
}

// DataDescriptor returns a complete data descriptor.
func DataDescriptor(value Value, writable, enumerable, configurable bool) PropertyDescriptor {
	return PropertyDescriptor{
		Value:        value,
		HasValue:     true,
		Writable:     ToFlag(writable),
		Enumerable:   ToFlag(enumerable),
		Configurable: ToFlag(configurable),
	}
}

// AccessorDescriptor returns a complete accessor descriptor. Pass Undefined
// for a missing getter or setter.
func AccessorDescriptor(getter, setter Value, enumerable, configurable bool) PropertyDescriptor {
	return PropertyDescriptor{
		Getter:       getter,
		HasGet:       true,
		Setter:       setter,
		HasSet:       true,
		Enumerable:   ToFlag(enumerable),
		Configurable: ToFlag(configurable),
	}
}

func (d PropertyDescriptor) IsAccessorDescriptor() bool {
	return d.HasGet || d.HasSet
}

func (d PropertyDescriptor) IsDataDescriptor() bool {
	return d.HasValue || d.Writable != FlagNotSet
}

func (d PropertyDescriptor) IsGenericDescriptor() bool {
	return !d.IsAccessorDescriptor() && !d.IsDataDescriptor()
}

type PropertyKind uint8

const (
	DataProperty PropertyKind = iota
	AccessorProperty
)

// Property is a fully resolved, stored property. Data properties use Value
// and Writable; accessor properties use Getter and Setter (Undefined when
// missing).
type Property struct {
	Kind         PropertyKind
	Value        Value
	Getter       Value
	Setter       Value
	Writable     bool
	Enumerable   bool
	Configurable bool
}

func (p Property) IsAccessor() bool {
	return p.Kind == AccessorProperty
}

// Descriptor returns p as a descriptor with every field of its shape set.
func (p Property) Descriptor() PropertyDescriptor {
	if p.IsAccessor() {
		return AccessorDescriptor(p.Getter, p.Setter, p.Enumerable, p.Configurable)
	}
	return DataDescriptor(p.Value, p.Writable, p.Enumerable, p.Configurable)
}

// newProperty resolves a descriptor for a property that does not exist yet.
func newProperty(d PropertyDescriptor) Property {
	p := Property{
		Value:        Undefined,
		Getter:       Undefined,
		Setter:       Undefined,
		Enumerable:   d.Enumerable.Bool(),
		Configurable: d.Configurable.Bool(),
	}
	if d.IsAccessorDescriptor() {
		p.Kind = AccessorProperty
		if d.HasGet {
			p.Getter = d.Getter
		}
		if d.HasSet {
			p.Setter = d.Setter
		}
		return p
	}
	if d.HasValue {
		p.Value = d.Value
	}
	p.Writable = d.Writable.Bool()
	return p
}

// merge validates d against the stored property cur and returns the updated
// property. It never mutates cur; ok is false when the change is illegal.
func merge(cur Property, d PropertyDescriptor) (next Property, ok bool) {
	if !cur.Configurable {
		if d.Configurable == FlagTrue {
			return cur, false
		}
		if d.Enumerable != FlagNotSet && d.Enumerable.Bool() != cur.Enumerable {
			return cur, false
		}
	}

	next = cur
	switch {
	case d.IsGenericDescriptor():
		// only enumerable/configurable change
	case cur.IsAccessor() != d.IsAccessorDescriptor():
		if !cur.Configurable {
			return cur, false
		}
		// Switching shape keeps enumerable/configurable, resets the rest.
		next = Property{
			Value:        Undefined,
			Getter:       Undefined,
			Setter:       Undefined,
			Enumerable:   cur.Enumerable,
			Configurable: cur.Configurable,
		}
		if d.IsAccessorDescriptor() {
			next.Kind = AccessorProperty
		}
	case !cur.IsAccessor():
		if !cur.Configurable && !cur.Writable {
			if d.Writable == FlagTrue {
				return cur, false
			}
			if d.HasValue && !SameValue(d.Value, cur.Value) {
				return cur, false
			}
		}
	default:
		if !cur.Configurable {
			if d.HasGet && !SameValue(d.Getter, cur.Getter) {
				return cur, false
			}
			if d.HasSet && !SameValue(d.Setter, cur.Setter) {
				return cur, false
			}
		}
	}

	if d.HasValue {
		next.Value = d.Value
	}
	if d.Writable != FlagNotSet {
		next.Writable = d.Writable.Bool()
	}
	if d.HasGet {
		next.Getter = d.Getter
	}
	if d.HasSet {
		next.Setter = d.Setter
	}
	if d.Enumerable != FlagNotSet {
		next.Enumerable = d.Enumerable.Bool()
	}
	if d.Configurable != FlagNotSet {
		next.Configurable = d.Configurable.Bool()
	}
	return next, true
}

// ToPropertyDescriptor reads the descriptor attributes off candidate. Reads
// go through [[Get]], so inherited attributes count and getters run.
func ToPropertyDescriptor(r *Realm, candidate Value) (PropertyDescriptor, error) {
	var d PropertyDescriptor
	obj := candidate.AsObject()
	if obj == nil {
		return d, errors.NewTypeError("Property description must be an object: %s", candidate.ToString())
	}

	readFlag := func(name interner.Name) (Flag, error) {
		v, ok, err := r.getIfPresent(obj, name)
		if err != nil || !ok {
			return FlagNotSet, err
		}
		return ToFlag(v.ToBoolean()), nil
	}

	var err error
	if d.Enumerable, err = readFlag(interner.Enumerable); err != nil {
		return d, err
	}
	if d.Configurable, err = readFlag(interner.Configurable); err != nil {
		return d, err
	}
	if d.Value, d.HasValue, err = r.getIfPresent(obj, interner.Value); err != nil {
		return d, err
	}
	if d.Writable, err = readFlag(interner.Writable); err != nil {
		return d, err
	}
	if d.Getter, d.HasGet, err = r.getIfPresent(obj, interner.Get); err != nil {
		return d, err
	}
	if d.HasGet && !d.Getter.IsUndefined() && !r.Coerce.IsCallable(d.Getter) {
		return d, errors.NewTypeError(errors.TypeAccessorNotCallable, "Getter", d.Getter.ToString())
	}
	if d.Setter, d.HasSet, err = r.getIfPresent(obj, interner.Set); err != nil {
		return d, err
	}
	if d.HasSet && !d.Setter.IsUndefined() && !r.Coerce.IsCallable(d.Setter) {
		return d, errors.NewTypeError(errors.TypeAccessorNotCallable, "Setter", d.Setter.ToString())
	}
	if d.IsAccessorDescriptor() && d.IsDataDescriptor() {
		return d, errors.NewTypeError(errors.TypeMixedDescriptor)
	}
	return d, nil
}

// FromPropertyDescriptor projects a stored property into a plain object
// carrying exactly the attributes of its shape.
func FromPropertyDescriptor(r *Realm, p Property) Value {
	obj := r.NewObject()
	put := func(name interner.Name, v Value) {
		obj.defineOwn(name, DataDescriptor(v, true, true, true))
	}
	if p.IsAccessor() {
		put(interner.Get, p.Getter)
		put(interner.Set, p.Setter)
	} else {
		put(interner.Value, p.Value)
		put(interner.Writable, BooleanValue(p.Writable))
	}
	put(interner.Enumerable, BooleanValue(p.Enumerable))
	put(interner.Configurable, BooleanValue(p.Configurable))
	return ObjectValue(obj)
}
