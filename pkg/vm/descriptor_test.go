package vm

import (
	"testing"

	"jsobj/pkg/errors"
	"jsobj/pkg/interner"
)

func noop(*Realm, FnMode, Args) (Value, error) { return Undefined, nil }

func TestDescriptorRoundTrip(t *testing.T) {
	r := NewRealm()
	getter := ObjectValue(r.NewNativeFunction(0, "get", noop))
	setter := ObjectValue(r.NewNativeFunction(1, "set", noop))

	tests := []struct {
		name string
		prop Property
	}{
		{"data enumerable", newProperty(DataDescriptor(NumberValue(1), true, true, false))},
		{"data non-enumerable", newProperty(DataDescriptor(NewString("x"), false, false, true))},
		{"accessor enumerable", newProperty(AccessorDescriptor(getter, setter, true, true))},
		{"accessor non-enumerable", newProperty(AccessorDescriptor(getter, Undefined, false, false))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exchanged := FromPropertyDescriptor(r, tt.prop)
			desc, err := ToPropertyDescriptor(r, exchanged)
			if err != nil {
				t.Fatalf("ToPropertyDescriptor failed: %v", err)
			}
			back := newProperty(desc)
			if !samePropertyForTest(tt.prop, back) {
				t.Errorf("round trip mismatch:\n  want %+v\n  got  %+v", tt.prop, back)
			}
		})
	}
}

func TestFromPropertyDescriptorShape(t *testing.T) {
	r := NewRealm()
	data := FromPropertyDescriptor(r, newProperty(DataDescriptor(NumberValue(1), true, false, true))).AsObject()
	for _, n := range []interner.Name{interner.Value, interner.Writable, interner.Enumerable, interner.Configurable} {
		if !data.HasOwnProperty(n) {
			t.Errorf("data descriptor object missing %s", r.NameText(n))
		}
	}
	if data.HasOwnProperty(interner.Get) || data.HasOwnProperty(interner.Set) {
		t.Errorf("data descriptor object must not expose get/set")
	}

	acc := FromPropertyDescriptor(r, newProperty(AccessorDescriptor(Undefined, Undefined, true, true))).AsObject()
	if acc.HasOwnProperty(interner.Value) || acc.HasOwnProperty(interner.Writable) {
		t.Errorf("accessor descriptor object must not expose value/writable")
	}
	if keys := acc.OwnKeys(); len(keys) != 4 {
		t.Errorf("expected 4 keys on accessor descriptor object, got %d", len(keys))
	}
}

func TestToPropertyDescriptorValidation(t *testing.T) {
	r := NewRealm()
	fn := ObjectValue(r.NewNativeFunction(0, "f", noop))

	mixed := r.NewObject()
	mixed.SetOwn("value", NumberValue(1))
	mixed.SetOwn("get", fn)
	if _, err := ToPropertyDescriptor(r, ObjectValue(mixed)); !errors.IsTypeError(err) {
		t.Errorf("expected TypeError for mixed descriptor, got %v", err)
	}

	writableAndSet := r.NewObject()
	writableAndSet.SetOwn("writable", False)
	writableAndSet.SetOwn("set", Undefined)
	if _, err := ToPropertyDescriptor(r, ObjectValue(writableAndSet)); !errors.IsTypeError(err) {
		t.Errorf("expected TypeError for writable+set, got %v", err)
	}

	badGetter := r.NewObject()
	badGetter.SetOwn("get", NumberValue(3))
	if _, err := ToPropertyDescriptor(r, ObjectValue(badGetter)); !errors.IsTypeError(err) {
		t.Errorf("expected TypeError for non-callable getter, got %v", err)
	}

	undefinedSetter := r.NewObject()
	undefinedSetter.SetOwn("set", Undefined)
	d, err := ToPropertyDescriptor(r, ObjectValue(undefinedSetter))
	if err != nil || !d.HasSet || !d.IsAccessorDescriptor() {
		t.Errorf("expected undefined setter to be accepted, got %+v err=%v", d, err)
	}

	if _, err := ToPropertyDescriptor(r, NumberValue(1)); !errors.IsTypeError(err) {
		t.Errorf("expected TypeError for primitive candidate, got %v", err)
	}
}

func TestToPropertyDescriptorAbsentStaysUnset(t *testing.T) {
	r := NewRealm()
	obj := r.NewObject()
	obj.SetOwn("enumerable", True)
	d, err := ToPropertyDescriptor(r, ObjectValue(obj))
	if err != nil {
		t.Fatal(err)
	}
	if d.Enumerable != FlagTrue {
		t.Errorf("expected enumerable set")
	}
	if d.Configurable != FlagNotSet || d.Writable != FlagNotSet || d.HasValue || d.HasGet || d.HasSet {
		t.Errorf("expected absent attributes to stay unset, got %+v", d)
	}
	if !d.IsGenericDescriptor() {
		t.Errorf("expected a generic descriptor")
	}
}

func TestToPropertyDescriptorReadsInheritedAndGetters(t *testing.T) {
	r := NewRealm()
	proto := r.NewObject()
	proto.SetOwn("writable", True)

	calls := 0
	getter := r.NewNativeFunction(0, "value", func(*Realm, FnMode, Args) (Value, error) {
		calls++
		return NewString("computed"), nil
	})
	candidate := r.NewObjectWithPrototype(proto)
	candidate.DefineOwnProperty(interner.Value, AccessorDescriptor(ObjectValue(getter), Undefined, true, true), true)

	d, err := ToPropertyDescriptor(r, ObjectValue(candidate))
	if err != nil {
		t.Fatal(err)
	}
	if d.Writable != FlagTrue {
		t.Errorf("expected inherited writable to be read")
	}
	if !d.HasValue || d.Value.AsString() != "computed" || calls != 1 {
		t.Errorf("expected getter to supply value once, got %+v calls=%d", d.Value, calls)
	}
}

func TestToPropertyDescriptorPropagatesGetterError(t *testing.T) {
	r := NewRealm()
	boom := errors.NewTypeError("boom")
	getter := r.NewNativeFunction(0, "enumerable", func(*Realm, FnMode, Args) (Value, error) {
		return Undefined, boom
	})
	candidate := r.NewObject()
	candidate.DefineOwnProperty(interner.Enumerable, AccessorDescriptor(ObjectValue(getter), Undefined, true, true), true)
	if _, err := ToPropertyDescriptor(r, ObjectValue(candidate)); err != boom {
		t.Errorf("expected getter error to propagate, got %v", err)
	}
}

func TestDescriptorKinds(t *testing.T) {
	if !(PropertyDescriptor{Writable: FlagFalse}).IsDataDescriptor() {
		t.Errorf("writable alone makes a data descriptor")
	}
	if !(PropertyDescriptor{HasSet: true}).IsAccessorDescriptor() {
		t.Errorf("set alone makes an accessor descriptor")
	}
	if !(PropertyDescriptor{Enumerable: FlagTrue}).IsGenericDescriptor() {
		t.Errorf("flags alone make a generic descriptor")
	}
	p := newProperty(DataDescriptor(NumberValue(1), true, false, true))
	if d := p.Descriptor(); !d.HasValue || d.Writable != FlagTrue || d.Enumerable != FlagFalse {
		t.Errorf("Descriptor() lost attributes: %+v", d)
	}
}
