package builtins

import (
	"fmt"
	"sort"

	"jsobj/pkg/vm"
)

const debugBuiltins = false

// GetStandardInitializers returns all built-in initializers sorted by priority
func GetStandardInitializers() []BuiltinInitializer {
	var initializers []BuiltinInitializer

	// Global constants and functions
	initializers = append(initializers, &GlobalsInitializer{})

	// Core builtins
	initializers = append(initializers, &ObjectInitializer{})
	initializers = append(initializers, &FunctionInitializer{})

	// Primitive wrappers
	initializers = append(initializers, &StringInitializer{})
	initializers = append(initializers, &NumberInitializer{})
	initializers = append(initializers, &BooleanInitializer{})

	// Sort by priority (lower numbers first)
	sort.SliceStable(initializers, func(i, j int) bool {
		return initializers[i].Priority() < initializers[j].Priority()
	})

	return initializers
}

// InitializeRealm runs every standard initializer against r. Calling it
// again on an initialized realm is a no-op.
func InitializeRealm(r *vm.Realm) error {
	if r.IsInitialized() {
		return nil
	}
	ctx := &RuntimeContext{
		Realm:        r,
		DefineGlobal: r.DefineGlobal,
	}
	for _, init := range GetStandardInitializers() {
		if debugBuiltins {
			fmt.Printf("[DEBUG standard.go] initializing %s (priority %d)\n", init.Name(), init.Priority())
		}
		if err := init.InitRuntime(ctx); err != nil {
			return fmt.Errorf("failed to initialize %s: %w", init.Name(), err)
		}
	}
	r.MarkInitialized()
	return nil
}
