// Package value implements the runtime Value Model (spec.md §3/§4.1): the
// tagged-union Value type, its Owned/Reference storage cell, and the
// arithmetic/comparison/string operations defined over it. Grounded on the
// teacher's internal/interp/runtime value system (an interface-based Value
// with capability sub-interfaces); here the variant set is small and fixed
// enough that a single concrete struct with a Kind tag is the more natural
// idiom, so Object/Callable are modelled as marker interfaces implemented
// by the object package to avoid an import cycle between value and object.
package value

import "fmt"

// Kind tags which variant of the Value union is populated.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindObject
	KindCallable
	KindResource
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindCallable:
		return "callable"
	case KindResource:
		return "resource"
	default:
		return "unknown"
	}
}

// Object is the marker interface implemented by the object package's
// instance type. Value only needs to carry and compare identities; the
// object subsystem owns construction, method dispatch, and property
// storage.
type Object interface {
	ClassName() string
}

// Array is a stub variant: spec.md's type system includes arrays so that
// operations like printable/truthiness/size are total functions, but no
// expression in this grammar subset constructs one (Non-goals).
type Array struct {
	Elements []Value
}

// Callable is a stub variant for the same reason as Array: first-class
// function values and closures are out of scope, but the Value union
// still needs the variant to keep printable/truthiness/size total.
type Callable struct {
	Name string
}

// Resource is a stub variant; resources are a Non-goal feature but the
// Value union still needs the variant for the same reason as Array.
type Resource struct {
	Label string
}

// Value is a single tagged-union runtime value (spec.md §3 Value). It is
// always passed by value (Go value semantics); shared mutable identity is
// provided separately by Cell, not by Value itself.
type Value struct {
	kind Kind

	b        bool
	i        int64
	f        float64
	s        string
	obj      Object
	array    *Array
	callable *Callable
	resource *Resource
}

// Null is the singular null value.
func Null() Value { return Value{kind: KindNull} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int wraps an integer.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float wraps a float.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Str wraps a byte-string. The language's strings are 8-bit clean, not
// Unicode text (spec.md §3), so callers must not assume s is valid UTF-8.
func Str(s string) Value { return Value{kind: KindString, s: s} }

// NewArray wraps an Array stub value.
func NewArray(a *Array) Value { return Value{kind: KindArray, array: a} }

// NewObject wraps an Object.
func NewObject(o Object) Value { return Value{kind: KindObject, obj: o} }

// NewCallable wraps a Callable stub value.
func NewCallable(c *Callable) Value { return Value{kind: KindCallable, callable: c} }

// NewResource wraps a Resource stub value.
func NewResource(r *Resource) Value { return Value{kind: KindResource, resource: r} }

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) AsBool() bool { return v.b }
func (v Value) AsInt() int64 { return v.i }
func (v Value) AsFloat() float64 { return v.f }
func (v Value) AsString() string { return v.s }
func (v Value) AsObject() Object { return v.obj }
func (v Value) AsArray() *Array { return v.array }
func (v Value) AsCallable() *Callable { return v.callable }
func (v Value) AsResource() *Resource { return v.resource }

func (v Value) isNumeric() bool { return v.kind == KindInt || v.kind == KindFloat }

// asFloat64 widens any numeric variant to float64.
func (v Value) asFloat64() float64 {
	if v.kind == KindInt {
		return float64(v.i)
	}
	return v.f
}

// TypeName returns the user-facing type name used in diagnostic messages
// (e.g. the "'int|string'" / "'null'" fragments of spec.md §4.5/§7).
func (v Value) TypeName() string {
	if v.kind == KindObject && v.obj != nil {
		return v.obj.ClassName()
	}
	return v.kind.String()
}

// GoString supports %v/%#v debugging output; not used for user-visible
// formatting (see Printable in convert.go for that).
func (v Value) GoString() string {
	return fmt.Sprintf("Value{%s}", v.kind)
}
