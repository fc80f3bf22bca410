package driver

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/text/language"

	"jsobj/pkg/builtins"
	"jsobj/pkg/errors"
	"jsobj/pkg/vm"
)

const debugDriver = false

// Options configures an Engine.
type Options struct {
	// Locale is a BCP 47 tag used by the toLocale* built-ins. Empty means English.
	Locale string
	// Debug traces lookups and calls to stdout.
	Debug bool
}

// Engine is one initialized realm plus the helpers the command line needs to
// poke at it: dotted-path lookups, JSON argument decoding and rendering.
type Engine struct {
	realm *vm.Realm
	opts  Options
}

// NewEngine creates a realm, installs the standard built-ins and applies the
// configured locale.
func NewEngine(opts Options) (*Engine, error) {
	r := vm.NewRealm()
	if opts.Locale != "" {
		tag, err := language.Parse(opts.Locale)
		if err != nil {
			return nil, errors.NewRangeError("Incorrect locale information provided").CausedBy(err)
		}
		r.Locale = tag
	}
	if err := builtins.InitializeRealm(r); err != nil {
		return nil, err
	}
	e := &Engine{realm: r, opts: opts}
	e.debugf("engine ready, locale %s, %d globals\n", r.Locale, r.GlobalObject.Len())
	return e, nil
}

func (e *Engine) debugf(format string, args ...interface{}) {
	if debugDriver || e.opts.Debug {
		fmt.Printf("[DEBUG driver.go] "+format, args...)
	}
}

// Realm exposes the underlying realm.
func (e *Engine) Realm() *vm.Realm {
	return e.realm
}

// Lookup resolves a dotted path such as "Object.prototype.toString" starting
// from the global object. The first segment must be a global binding; later
// segments follow the prototype chain and may run getters.
func (e *Engine) Lookup(path string) (vm.Value, error) {
	if path == "" {
		return vm.Undefined, errors.NewTypeError("empty path")
	}
	segments := strings.Split(path, ".")
	r := e.realm

	first := r.Intern(segments[0])
	found, err := r.HasProperty(r.GlobalObject, first)
	if err != nil {
		return vm.Undefined, err
	}
	if !found {
		return vm.Undefined, errors.NewReferenceError(segments[0])
	}
	v, err := r.Get(r.GlobalObject, first)
	if err != nil {
		return vm.Undefined, err
	}
	for _, seg := range segments[1:] {
		if v.IsNullOrUndefined() {
			return vm.Undefined, errors.NewTypeError("Cannot read properties of %s (reading '%s')", v.ToString(), seg)
		}
		v, err = r.GetValue(v, r.Intern(seg))
		if err != nil {
			return vm.Undefined, err
		}
	}
	e.debugf("lookup %s -> %s\n", path, v.TypeName())
	return v, nil
}

// Call looks up path and invokes it with the given receiver and arguments.
func (e *Engine) Call(path string, this vm.Value, args []vm.Value) (vm.Value, error) {
	fn, err := e.Lookup(path)
	if err != nil {
		return vm.Undefined, err
	}
	if !fn.IsCallable() {
		return vm.Undefined, errors.NewTypeError(errors.TypeNotCallable, path)
	}
	e.debugf("call %s with %d argument(s)\n", path, len(args))
	return e.realm.Call(fn, this, args...)
}

// Construct looks up path and invokes it with new.
func (e *Engine) Construct(path string, args []vm.Value) (vm.Value, error) {
	fn, err := e.Lookup(path)
	if err != nil {
		return vm.Undefined, err
	}
	e.debugf("construct %s with %d argument(s)\n", path, len(args))
	return e.realm.Construct(fn, args...)
}

// Describe renders the value at path followed by one line per own property,
// enumerable or not, showing its full descriptor.
func (e *Engine) Describe(path string) (string, error) {
	v, err := e.Lookup(path)
	if err != nil {
		return "", err
	}
	r := e.realm
	var sb strings.Builder
	sb.WriteString(r.Inspect(v))
	sb.WriteByte('\n')
	if !v.IsObject() {
		return sb.String(), nil
	}
	o := v.AsObject()
	for _, name := range o.OwnKeys() {
		p, _ := o.GetOwnProperty(name)
		fmt.Fprintf(&sb, "  %s: %s\n", r.InspectName(name), r.Inspect(vm.FromPropertyDescriptor(r, p)))
	}
	if proto := o.Prototype(); proto != nil {
		fmt.Fprintf(&sb, "  [[Prototype]]: %s\n", e.protoLabel(proto))
	} else {
		sb.WriteString("  [[Prototype]]: null\n")
	}
	return sb.String(), nil
}

// protoLabel names well-known prototypes instead of dumping them.
func (e *Engine) protoLabel(proto *vm.Object) string {
	r := e.realm
	for _, known := range []struct {
		obj  *vm.Object
		name string
	}{
		{r.ObjectPrototype, "Object.prototype"},
		{r.FunctionPrototype, "Function.prototype"},
		{r.ArrayPrototype, "Array.prototype"},
		{r.StringPrototype, "String.prototype"},
		{r.NumberPrototype, "Number.prototype"},
		{r.BooleanPrototype, "Boolean.prototype"},
	} {
		if proto == known.obj {
			return known.name
		}
	}
	return r.Inspect(vm.ObjectValue(proto))
}

// Globals returns the names of all global bindings, sorted.
func (e *Engine) Globals() []string {
	keys := e.realm.GlobalObject.OwnKeys()
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, e.realm.NameText(k))
	}
	sort.Strings(names)
	return names
}

// Format renders a result value the way the command line prints it.
func (e *Engine) Format(v vm.Value) string {
	if v.IsString() {
		return fmt.Sprintf("%q", v.AsString())
	}
	return e.realm.Inspect(v)
}

// DisplayResult prints either the value or the error and reports success.
func (e *Engine) DisplayResult(w io.Writer, v vm.Value, err error) bool {
	if err != nil {
		errors.DisplayError(w, err)
		return false
	}
	fmt.Fprintln(w, e.Format(v))
	return true
}

