package object

import (
	"testing"

	"github.com/scriptlang/phpwalk/internal/ast"
	"github.com/scriptlang/phpwalk/internal/value"
)

func TestTypeAcceptsNilIsMixed(t *testing.T) {
	if !TypeAccepts(nil, value.Str("anything")) {
		t.Error("a nil TypeNode should accept any value")
	}
}

func TestTypeAcceptsNullable(t *testing.T) {
	tn := &ast.TypeNode{Name: "int", Nullable: true}
	if !TypeAccepts(tn, value.Null()) {
		t.Error("?int should accept null")
	}
	if !TypeAccepts(tn, value.Int(1)) {
		t.Error("?int should accept int")
	}
}

func TestTypeAcceptsUnion(t *testing.T) {
	tn := &ast.TypeNode{Union: []*ast.TypeNode{{Name: "int"}, {Name: "string"}}}
	if !TypeAccepts(tn, value.Str("x")) {
		t.Error("int|string should accept a string")
	}
	if TypeAccepts(tn, value.Bool(true)) {
		t.Error("int|string should not accept a bool")
	}
}

func TestTypeAcceptsNumericCoercion(t *testing.T) {
	tn := &ast.TypeNode{Name: "int"}
	if !TypeAccepts(tn, value.Str("42")) {
		t.Error("int parameter should accept a string via safe coercion")
	}
	if !TypeAccepts(tn, value.Float(1.0)) {
		t.Error("int parameter should accept a float via safe coercion")
	}
}

func TestTypeAcceptsRejectsArrayForInt(t *testing.T) {
	tn := &ast.TypeNode{Name: "int"}
	if TypeAccepts(tn, value.NewArray(&value.Array{})) {
		t.Error("int parameter should not accept an array")
	}
}

func TestTypeNodeString(t *testing.T) {
	if TypeNodeString(nil) != "mixed" {
		t.Error("nil TypeNode should render as mixed")
	}
	tn := &ast.TypeNode{Name: "Foo", Nullable: true}
	if TypeNodeString(tn) != "?Foo" {
		t.Errorf("got %q, want ?Foo", TypeNodeString(tn))
	}
	union := &ast.TypeNode{Union: []*ast.TypeNode{{Name: "int"}, {Name: "string"}}}
	if TypeNodeString(union) != "int|string" {
		t.Errorf("got %q, want int|string", TypeNodeString(union))
	}
}
