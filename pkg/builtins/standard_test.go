package builtins

import (
	"testing"

	"jsobj/pkg/vm"
)

func TestStandardInitializersSorted(t *testing.T) {
	inits := GetStandardInitializers()
	if len(inits) == 0 {
		t.Fatal("no initializers")
	}
	if inits[0].Name() != "Object" {
		t.Errorf("Object must initialize first, got %s", inits[0].Name())
	}
	seen := make(map[string]bool)
	for i, init := range inits {
		if seen[init.Name()] {
			t.Errorf("duplicate initializer %s", init.Name())
		}
		seen[init.Name()] = true
		if i > 0 && inits[i-1].Priority() > init.Priority() {
			t.Errorf("%s (priority %d) runs after %s (priority %d)",
				init.Name(), init.Priority(), inits[i-1].Name(), inits[i-1].Priority())
		}
	}
}

func TestInitializeRealmIdempotent(t *testing.T) {
	r := vm.NewRealm()
	if err := InitializeRealm(r); err != nil {
		t.Fatal(err)
	}
	if !r.IsInitialized() {
		t.Fatalf("realm should be marked initialized")
	}
	before := r.GlobalObject.Len()
	if err := InitializeRealm(r); err != nil {
		t.Fatal(err)
	}
	if r.GlobalObject.Len() != before {
		t.Errorf("second InitializeRealm should not redefine globals")
	}
	for _, name := range []string{"Object", "Function", "String", "Number", "Boolean", "isNaN", "globalThis"} {
		if _, ok := r.GetGlobal(name); !ok {
			t.Errorf("global %s missing", name)
		}
	}
}

type failingInitializer struct{}

func (failingInitializer) Name() string  { return "Failing" }
func (failingInitializer) Priority() int { return 0 }
func (failingInitializer) InitRuntime(ctx *RuntimeContext) error {
	return ctx.DefineGlobal("NaN", vm.NumberValue(1))
}

func TestDefineGlobalRejectsReadOnly(t *testing.T) {
	r := vm.NewRealm()
	if err := InitializeRealm(r); err != nil {
		t.Fatal(err)
	}
	ctx := &RuntimeContext{Realm: r, DefineGlobal: r.DefineGlobal}
	var init BuiltinInitializer = failingInitializer{}
	if err := init.InitRuntime(ctx); err == nil {
		t.Errorf("redefining the read-only NaN global should fail")
	}
}
