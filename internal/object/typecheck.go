package object

import (
	"strconv"
	"strings"

	"github.com/scriptlang/phpwalk/internal/ast"
	"github.com/scriptlang/phpwalk/internal/value"
)

// primitiveKinds maps a TypeNode.Name primitive keyword to the Value.Kind
// it accepts (spec.md §4.4 property default-compatibility relation).
var primitiveKinds = map[string]value.Kind{
	"int":    value.KindInt,
	"float":  value.KindFloat,
	"string": value.KindString,
	"bool":   value.KindBool,
	"array":  value.KindArray,
	"object": value.KindObject,
}

// TypeAccepts implements both the property default-compatibility relation
// and the argument-compatibility relation (spec.md §4.4/§4.5); a nil type
// (no declared type) accepts anything, matching an implicit "mixed".
func TypeAccepts(t *ast.TypeNode, v value.Value) bool {
	if t == nil {
		return true
	}
	if t.Nullable && v.IsNull() {
		return true
	}
	if len(t.Union) > 0 {
		for _, m := range t.Union {
			if TypeAccepts(m, v) {
				return true
			}
		}
		return false
	}
	if len(t.Intersection) > 0 {
		for _, m := range t.Intersection {
			if !TypeAccepts(m, v) {
				return false
			}
		}
		return true
	}

	switch strings.ToLower(t.Name) {
	case "mixed":
		return true
	case "null":
		return v.IsNull()
	case "int", "float", "string", "bool", "array", "object":
		if v.Kind() == primitiveKinds[strings.ToLower(t.Name)] {
			return true
		}
		return numericCoercion(t.Name, v)
	case "callable":
		return v.Kind() == value.KindCallable
	case "iterable":
		// Not accepted at declaration time (spec.md §4.4); runtime
		// arguments of this shape don't occur in this grammar subset.
		return false
	case "self", "parent", "static":
		// SelfRef/ParentRef are not accepted at declaration time (spec.md
		// §4.4); as an argument type they accept any object, since static
		// resolution of the exact class happens at the call site, not here.
		return v.Kind() == value.KindObject
	default:
		// A named class/trait type: accept any object. Exact instanceof
		// checking is a stretch beyond what this subset's argument-binding
		// invariants require (spec.md §4.5 doesn't ask for it), so accept
		// structurally by kind the way the reference CallableArgument
		// validation does for non-builtin type hints.
		return v.Kind() == value.KindObject
	}
}

// numericCoercion implements the argument-compatibility relation's "safe
// coercions" clause (spec.md §4.5): int<->float<->string for numeric-like
// values, and bool narrowing.
func numericCoercion(wantName string, v value.Value) bool {
	switch strings.ToLower(wantName) {
	case "int", "float":
		switch v.Kind() {
		case value.KindInt, value.KindFloat:
			return true
		case value.KindString:
			_, err := strconv.ParseFloat(strings.TrimSpace(v.AsString()), 64)
			return err == nil
		}
		return false
	case "string":
		return v.Kind() == value.KindInt || v.Kind() == value.KindFloat
	case "bool":
		return v.Kind() == value.KindInt || v.Kind() == value.KindFloat || v.Kind() == value.KindString
	}
	return false
}

// TypeNodeString renders a TypeNode back to source-like text for
// diagnostic messages ("int|string", "?Foo", "A&B").
func TypeNodeString(t *ast.TypeNode) string {
	if t == nil {
		return "mixed"
	}
	if len(t.Union) > 0 {
		parts := make([]string, len(t.Union))
		for i, m := range t.Union {
			parts[i] = TypeNodeString(m)
		}
		return strings.Join(parts, "|")
	}
	if len(t.Intersection) > 0 {
		parts := make([]string, len(t.Intersection))
		for i, m := range t.Intersection {
			parts[i] = TypeNodeString(m)
		}
		return strings.Join(parts, "&")
	}
	prefix := ""
	if t.Nullable {
		prefix = "?"
	}
	return prefix + t.Name
}
