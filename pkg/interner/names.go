package interner

// Well-known names. They are valid for an Interner created by
// NewWithWellKnown until that interner is cleared.
const (
	Empty Name = iota
	Length
	Prototype
	Constructor
	ToString
	ToLocaleString
	ValueOf
	HasOwnProperty
	IsPrototypeOf
	PropertyIsEnumerable
	Value
	Writable
	Enumerable
	Configurable
	Get
	Set
	NameKey
	Message
	Undefined
	NaN
	Infinity
	GlobalThis

	wellKnownCount
)

var wellKnown = [wellKnownCount]string{
	Empty:                "",
	Length:               "length",
	Prototype:            "prototype",
	Constructor:          "constructor",
	ToString:             "toString",
	ToLocaleString:       "toLocaleString",
	ValueOf:              "valueOf",
	HasOwnProperty:       "hasOwnProperty",
	IsPrototypeOf:        "isPrototypeOf",
	PropertyIsEnumerable: "propertyIsEnumerable",
	Value:                "value",
	Writable:             "writable",
	Enumerable:           "enumerable",
	Configurable:         "configurable",
	Get:                  "get",
	Set:                  "set",
	NameKey:              "name",
	Message:              "message",
	Undefined:            "undefined",
	NaN:                  "NaN",
	Infinity:             "Infinity",
	GlobalThis:           "globalThis",
}

// NewWithWellKnown creates an Interner whose first entries are the
// well-known names, in declaration order.
func NewWithWellKnown() *Interner {
	return Prefill(wellKnown[:]...)
}

// IsWellKnown reports whether n is one of the predeclared names.
func IsWellKnown(n Name) bool {
	return n < wellKnownCount
}
