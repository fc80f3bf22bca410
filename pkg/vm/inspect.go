package vm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"

	"jsobj/pkg/interner"
)

// identifierName matches ECMAScript IdentifierName. Keys that match are
// printed bare, anything else is quoted.
var identifierName = regexp2.MustCompile(
	`^[\p{L}\p{Nl}$_][\p{L}\p{Nl}\p{Mn}\p{Mc}\p{Nd}\p{Pc}$_\u200C\u200D]*\z`, regexp2.None)

// IsIdentifierName reports whether s can be written as a bare property name.
func IsIdentifierName(s string) bool {
	ok, err := identifierName.MatchString(s)
	return err == nil && ok
}

const maxInspectDepth = 64

// Inspect renders v for diagnostics. It never runs user code: accessors are
// shown as [Getter], [Setter] or [Getter/Setter] rather than invoked.
func (r *Realm) Inspect(v Value) string {
	ins := inspector{r: r, seen: make(map[*Object]bool)}
	return ins.value(v, false, 0)
}

type inspector struct {
	r    *Realm
	seen map[*Object]bool
}

func (ins *inspector) value(v Value, nested bool, depth int) string {
	switch v.Type() {
	case TypeString:
		if nested {
			return strconv.Quote(v.AsString())
		}
		return v.AsString()
	case TypeObject:
		return ins.object(v.AsObject(), depth)
	default:
		return v.ToString()
	}
}

func (ins *inspector) object(o *Object, depth int) string {
	if ins.seen[o] {
		return "[Circular]"
	}
	if depth >= maxInspectDepth {
		return "[...]"
	}
	ins.seen[o] = true
	defer delete(ins.seen, o)

	if o.native != nil {
		if o.native.Name != "" {
			return fmt.Sprintf("[Function: %s]", o.native.Name)
		}
		return "[Function (anonymous)]"
	}
	if prim, ok := o.Primitive(); ok {
		return fmt.Sprintf("[%s: %s]", o.ClassOr("Object"), ins.value(prim, true, depth+1))
	}

	var parts []string
	isArray := o.class == "Array"
	for i := 0; ; i++ {
		k := o.GetKey(i)
		if k.Kind == KeyEnd {
			break
		}
		if k.Kind == KeyMissing || !k.Enumerable {
			continue
		}
		p, _ := o.GetOwnProperty(k.Name)
		text := ins.r.Interner.Get(k.Name)
		rendered := ins.property(p, depth)
		if isArray && isArrayIndex(text) {
			parts = append(parts, rendered)
			continue
		}
		parts = append(parts, ins.key(text)+": "+rendered)
	}

	if isArray {
		return "[" + strings.Join(parts, ", ") + "]"
	}
	body := "{}"
	if len(parts) > 0 {
		body = "{ " + strings.Join(parts, ", ") + " }"
	}
	switch {
	case o.prototype == nil:
		return "[Object: null prototype] " + body
	case o.class != "" && o.class != "Object":
		return o.class + " " + body
	}
	return body
}

func (ins *inspector) property(p Property, depth int) string {
	if !p.IsAccessor() {
		return ins.value(p.Value, true, depth+1)
	}
	switch {
	case !p.Getter.IsUndefined() && !p.Setter.IsUndefined():
		return "[Getter/Setter]"
	case !p.Getter.IsUndefined():
		return "[Getter]"
	case !p.Setter.IsUndefined():
		return "[Setter]"
	}
	return "undefined"
}

func (ins *inspector) key(text string) string {
	if IsIdentifierName(text) {
		return text
	}
	return "'" + strings.ReplaceAll(text, "'", `\'`) + "'"
}

func isArrayIndex(s string) bool {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return false
	}
	n, err := strconv.ParseUint(s, 10, 32)
	return err == nil && n < 1<<32-1
}

// InspectName renders a Name for diagnostics.
func (r *Realm) InspectName(n interner.Name) string {
	if n.Index() >= r.Interner.Len() {
		return n.String()
	}
	return r.Interner.Get(n)
}
