package vm

import (
	"jsobj/pkg/errors"
	"jsobj/pkg/interner"
)

// chainWalker follows prototype links and fails instead of looping when a
// link leads back to an object already visited. Short chains are checked by
// scanning the visited slice; longer ones switch to a set.
type chainWalker struct {
	seen []*Object
	set  map[*Object]struct{}
}

const chainScanLimit = 16

// visit records o and reports whether it had been seen before.
func (w *chainWalker) visit(o *Object) bool {
	if w.set != nil {
		if _, ok := w.set[o]; ok {
			return true
		}
		w.set[o] = struct{}{}
		return false
	}
	for _, s := range w.seen {
		if s == o {
			return true
		}
	}
	w.seen = append(w.seen, o)
	if len(w.seen) > chainScanLimit {
		w.set = make(map[*Object]struct{}, 2*chainScanLimit)
		for _, s := range w.seen {
			w.set[s] = struct{}{}
		}
		w.seen = nil
	}
	return false
}

func cycleError() error {
	return errors.NewTypeError(errors.TypePrototypeCycle).CausedBy(errors.ErrPrototypeCycle)
}

// WalkChain calls fn for o and then each of its prototypes until fn returns
// false or the chain ends. A cyclic chain yields an error wrapping
// errors.ErrPrototypeCycle.
func (r *Realm) WalkChain(o *Object, fn func(*Object) bool) error {
	var w chainWalker
	for cur := o; cur != nil; cur = cur.prototype {
		if w.visit(cur) {
			return cycleError()
		}
		if !fn(cur) {
			return nil
		}
	}
	return nil
}

// GetProperty finds name on o or its prototype chain. It returns the
// property and the object that owns it.
func (r *Realm) GetProperty(o *Object, name interner.Name) (Property, *Object, bool, error) {
	var (
		found Property
		owner *Object
	)
	err := r.WalkChain(o, func(cur *Object) bool {
		if p, ok := cur.GetOwnProperty(name); ok {
			found, owner = p, cur
			return false
		}
		return true
	})
	if err != nil {
		return Property{}, nil, false, err
	}
	return found, owner, owner != nil, nil
}

// HasProperty reports whether name is found on o or its prototype chain.
func (r *Realm) HasProperty(o *Object, name interner.Name) (bool, error) {
	_, _, ok, err := r.GetProperty(o, name)
	return ok, err
}

// Get implements [[Get]]: inherited lookup, running accessor getters with o
// as the receiver.
func (r *Realm) Get(o *Object, name interner.Name) (Value, error) {
	v, _, err := r.getIfPresent(o, name)
	return v, err
}

func (r *Realm) getIfPresent(o *Object, name interner.Name) (Value, bool, error) {
	p, _, ok, err := r.GetProperty(o, name)
	if err != nil || !ok {
		return Undefined, false, err
	}
	if !p.IsAccessor() {
		return p.Value, true, nil
	}
	if p.Getter.IsUndefined() {
		return Undefined, true, nil
	}
	v, err := r.Call(p.Getter, ObjectValue(o))
	return v, true, err
}

// GetValue is Get on an arbitrary value; primitives are boxed first.
func (r *Realm) GetValue(v Value, name interner.Name) (Value, error) {
	obj, err := r.ToObject(v)
	if err != nil {
		return Undefined, err
	}
	p, _, ok, err := r.GetProperty(obj, name)
	if err != nil || !ok {
		return Undefined, err
	}
	if !p.IsAccessor() {
		return p.Value, nil
	}
	if p.Getter.IsUndefined() {
		return Undefined, nil
	}
	// Accessors on primitives see the primitive as receiver.
	return r.Call(p.Getter, v)
}

// Put implements [[Put]]: setters found on the chain run, inherited
// read-only data blocks the write, otherwise an own data property is
// created or updated. Rejections report false, or a TypeError when throw.
func (r *Realm) Put(o *Object, name interner.Name, v Value, throw bool) (bool, error) {
	if own, ok := o.GetOwnProperty(name); ok && !own.IsAccessor() {
		if !own.Writable {
			return o.reject(throw, errors.TypeReadOnly, name)
		}
		return o.DefineOwnProperty(name, PropertyDescriptor{Value: v, HasValue: true}, throw)
	}

	p, _, ok, err := r.GetProperty(o, name)
	if err != nil {
		return false, err
	}
	if ok && p.IsAccessor() {
		if p.Setter.IsUndefined() {
			return o.reject(throw, errors.TypeReadOnly, name)
		}
		if _, err := r.Call(p.Setter, ObjectValue(o), v); err != nil {
			return false, err
		}
		return true, nil
	}
	if ok && !p.Writable {
		return o.reject(throw, errors.TypeReadOnly, name)
	}
	return o.DefineOwnProperty(name, DataDescriptor(v, true, true, true), throw)
}

// IsPrototypeOf reports whether proto appears on o's prototype chain,
// excluding o itself.
func (r *Realm) IsPrototypeOf(proto, o *Object) (bool, error) {
	if o == nil {
		return false, nil
	}
	found := false
	err := r.WalkChain(o.prototype, func(cur *Object) bool {
		if cur == proto {
			found = true
			return false
		}
		return true
	})
	return found, err
}

// SetPrototypeChecked is SetPrototype with the checks of
// Object.setPrototypeOf: a non-extensible object keeps its prototype, and a
// link that would close a cycle is rejected.
func (r *Realm) SetPrototypeChecked(o, proto *Object) error {
	if o.prototype == proto {
		return nil
	}
	if !o.extensible {
		return errors.NewTypeError("#<%s> is not extensible", o.ClassOr("Object"))
	}
	var w chainWalker
	for cur := proto; cur != nil; cur = cur.prototype {
		if cur == o || w.visit(cur) {
			return cycleError()
		}
	}
	o.prototype = proto
	return nil
}
