package vm

import "testing"

func TestInspect(t *testing.T) {
	r := NewRealm()

	plain := r.NewObject()
	plain.SetOwn("a", NumberValue(1))
	plain.SetOwn("b c", NewString("x"))
	plain.SetOwnNonEnumerable("hidden", True)

	nullProto := r.NewObjectWithPrototype(nil)
	nullProto.SetOwn("k", Null)

	withAccessors := r.NewObject()
	fn := ObjectValue(r.NewNativeFunction(0, "", noop))
	withAccessors.DefineOwnProperty(r.Intern("g"), AccessorDescriptor(fn, Undefined, true, true), true)
	withAccessors.DefineOwnProperty(r.Intern("gs"), AccessorDescriptor(fn, fn, true, true), true)

	wrapped, _ := r.ToObject(NewString("hi"))

	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"string", NewString("top"), "top"},
		{"number", NumberValue(1.5), "1.5"},
		{"empty", ObjectValue(r.NewObject()), "{}"},
		{"plain", ObjectValue(plain), `{ a: 1, 'b c': "x" }`},
		{"null prototype", ObjectValue(nullProto), "[Object: null prototype] { k: null }"},
		{"accessors", ObjectValue(withAccessors), "{ g: [Getter], gs: [Getter/Setter] }"},
		{"array", ObjectValue(r.NewArray([]Value{NumberValue(1), NewString("s")})), `[1, "s"]`},
		{"function", ObjectValue(r.NewNativeFunction(0, "keys", noop)), "[Function: keys]"},
		{"anonymous function", fn, "[Function (anonymous)]"},
		{"wrapper", ObjectValue(wrapped), `[String: "hi"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Inspect(tt.v); got != tt.want {
				t.Errorf("Inspect = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInspectCircular(t *testing.T) {
	r := NewRealm()
	obj := r.NewObject()
	obj.SetOwn("self", ObjectValue(obj))
	if got, want := r.Inspect(ObjectValue(obj)), "{ self: [Circular] }"; got != want {
		t.Errorf("Inspect = %q, want %q", got, want)
	}
}

func TestIsIdentifierName(t *testing.T) {
	valid := []string{"a", "_x", "$", "café", "a1", "ünïcode"}
	for _, s := range valid {
		if !IsIdentifierName(s) {
			t.Errorf("expected %q to be an identifier name", s)
		}
	}
	invalid := []string{"", "1a", "a b", "a-b", "a\n"}
	for _, s := range invalid {
		if IsIdentifierName(s) {
			t.Errorf("expected %q not to be an identifier name", s)
		}
	}
}
