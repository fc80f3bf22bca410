package vm

import (
	"testing"

	"jsobj/pkg/errors"
	"jsobj/pkg/interner"
)

func TestRealmIntrinsics(t *testing.T) {
	r := NewRealm()
	if r.ObjectPrototype.Prototype() != nil {
		t.Errorf("Object.prototype must be the root")
	}
	for name, proto := range map[string]*Object{
		"Function": r.FunctionPrototype,
		"Array":    r.ArrayPrototype,
		"String":   r.StringPrototype,
		"Number":   r.NumberPrototype,
		"Boolean":  r.BooleanPrototype,
	} {
		if proto.Prototype() != r.ObjectPrototype {
			t.Errorf("%s.prototype should inherit from Object.prototype", name)
		}
		if proto.ClassOr("") != name {
			t.Errorf("%s.prototype has class %q", name, proto.ClassOr(""))
		}
	}
	if !r.FunctionPrototype.IsCallable() {
		t.Errorf("Function.prototype should be callable")
	}
	v, ok := r.GetGlobal("globalThis")
	if !ok || v.AsObject() != r.GlobalObject {
		t.Errorf("globalThis should refer to the global object")
	}
	if r.IsInitialized() {
		t.Errorf("a fresh realm has no built-ins installed")
	}
}

func TestGlobals(t *testing.T) {
	r := NewRealm()
	if _, ok := r.GetGlobal("neverDefined"); ok {
		t.Errorf("unknown global should be absent")
	}
	if err := r.DefineGlobal("answer", NumberValue(42)); err != nil {
		t.Fatal(err)
	}
	v, ok := r.GetGlobal("answer")
	if !ok || v.AsFloat() != 42 {
		t.Errorf("expected answer=42, got %s", v.ToString())
	}
	p, _ := r.GlobalObject.GetOwnProperty(r.Intern("answer"))
	if p.Enumerable || !p.Writable || !p.Configurable {
		t.Errorf("globals should be writable, configurable and hidden")
	}
}

func TestNativeFunction(t *testing.T) {
	r := NewRealm()
	var seen Args
	var seenMode FnMode
	fn := r.NewNativeFunction(2, "pair", func(_ *Realm, mode FnMode, args Args) (Value, error) {
		seen, seenMode = args, mode
		return NumberValue(float64(args.Len())), nil
	})

	if fn.Prototype() != r.FunctionPrototype || !fn.IsCallable() {
		t.Fatalf("native function has the wrong shape")
	}
	length, _ := fn.GetOwnProperty(interner.Length)
	name, _ := fn.GetOwnProperty(interner.NameKey)
	if length.Value.AsFloat() != 2 || name.Value.AsString() != "pair" {
		t.Errorf("length/name not installed")
	}
	if length.Writable || length.Enumerable || !length.Configurable {
		t.Errorf("length has the wrong attributes: %+v", length)
	}

	this := NewString("recv")
	got, err := r.Call(ObjectValue(fn), this, NumberValue(1))
	if err != nil || got.AsFloat() != 1 {
		t.Fatalf("Call = %s err=%v", got.ToString(), err)
	}
	if seenMode != ModeCall || seen.This.AsString() != "recv" || !seen.Arg(1).IsUndefined() {
		t.Errorf("call frame not passed through: %+v", seen)
	}

	if _, err := r.Construct(ObjectValue(fn)); !errors.IsTypeError(err) {
		t.Errorf("plain function should not be constructible, got %v", err)
	}
	if _, err := r.Call(NumberValue(1), Undefined); !errors.IsTypeError(err) {
		t.Errorf("calling a number should be a TypeError, got %v", err)
	}
}

func TestNativeConstructor(t *testing.T) {
	r := NewRealm()
	proto := r.NewObject()
	var mode FnMode
	ctor := r.NewNativeConstructor(0, "Thing", proto, func(_ *Realm, m FnMode, _ Args) (Value, error) {
		mode = m
		return ObjectValue(r.NewObjectWithPrototype(proto)), nil
	})

	p, _ := ctor.GetOwnProperty(interner.Prototype)
	if p.Value.AsObject() != proto || p.Writable || p.Configurable {
		t.Errorf("prototype property is wrong: %+v", p)
	}
	back, _ := proto.GetOwnProperty(interner.Constructor)
	if back.Value.AsObject() != ctor || back.Enumerable {
		t.Errorf("constructor back-link is wrong: %+v", back)
	}

	v, err := r.Construct(ObjectValue(ctor))
	if err != nil {
		t.Fatal(err)
	}
	if mode != ModeConstruct || v.AsObject().Prototype() != proto {
		t.Errorf("construct did not run in construct mode")
	}
}

func TestArrayRoundTrip(t *testing.T) {
	r := NewRealm()
	arr := r.NewArray([]Value{NewString("a"), NewString("b")})
	vals, err := r.ArrayValues(arr)
	if err != nil {
		t.Fatal(err)
	}
	if len(vals) != 2 || vals[0].AsString() != "a" || vals[1].AsString() != "b" {
		t.Errorf("unexpected array values")
	}
	length, _ := arr.GetOwnProperty(interner.Length)
	if length.Enumerable || length.Configurable || !length.Writable {
		t.Errorf("array length has the wrong attributes")
	}
}

func TestThrowValue(t *testing.T) {
	r := NewRealm()
	err := r.ThrowValue(NewString("bad"))
	var thrown *errors.ThrownError
	if !errors.As(err, &thrown) {
		t.Fatalf("expected ThrownError, got %T", err)
	}
	if err.Error() != "Uncaught bad" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
