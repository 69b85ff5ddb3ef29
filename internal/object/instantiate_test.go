package object

import (
	"testing"

	"github.com/scriptlang/phpwalk/internal/ast"
	"github.com/scriptlang/phpwalk/internal/diag"
	"github.com/scriptlang/phpwalk/internal/scope"
	"github.com/scriptlang/phpwalk/internal/token"
	"github.com/scriptlang/phpwalk/internal/value"
)

func noopRun(body []ast.Statement, sc *scope.Scope) *diag.Diagnostic { return nil }

func TestInstantiateAbstractClassIsFatal(t *testing.T) {
	abstract := newTestClass("Shape", nil)
	abstract.Kind = ast.KindAbstractClass

	_, d := Instantiate("f.php", token.Position{}, abstract, nil, noopRun, nil)
	if d == nil {
		t.Fatal("expected a fatal diagnostic when instantiating an abstract class")
	}
}

func TestInstantiateTraitIsFatal(t *testing.T) {
	trait := newTestClass("Greets", nil)
	trait.Kind = ast.KindTrait

	_, d := Instantiate("f.php", token.Position{}, trait, nil, noopRun, nil)
	if d == nil {
		t.Fatal("expected a fatal diagnostic when instantiating a trait")
	}
}

func TestInstantiateNoConstructorMaterializesDefaults(t *testing.T) {
	cls := newTestClass("Point", nil)
	cls.Properties["$x"] = &Property{Name: "$x", Default: value.NewCell(value.Int(0))}
	cls.PropertyOrder = []string{"$x"}

	inst, d := Instantiate("f.php", token.Position{}, cls, nil, noopRun, nil)
	if d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
	if inst.Properties["$x"].Get().AsInt() != 0 {
		t.Fatalf("expected default property value, got %v", inst.Properties["$x"].Get())
	}
}

func TestInstantiateRunsConstructorWithThis(t *testing.T) {
	cls := newTestClass("Point", nil)
	cls.Properties["$x"] = &Property{Name: "$x", Default: value.NewCell(value.Int(0))}
	cls.PropertyOrder = []string{"$x"}
	cls.Constructor = &CallableDef{
		Name:   "__construct",
		Params: []*Parameter{{Name: "$x"}},
	}

	var sawThis value.Object
	run := func(body []ast.Statement, sc *scope.Scope) *diag.Diagnostic {
		sawThis = sc.This
		sc.This.(*Instance).Properties["$x"].Set(sc.GetVar("$x").Get())
		return nil
	}

	args := []BoundArg{{Value: value.Int(7)}}
	inst, d := Instantiate("f.php", token.Position{}, cls, args, run, nil)
	if d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
	if sawThis != inst {
		t.Fatal("constructor body should see $this bound to the new instance")
	}
	if inst.Properties["$x"].Get().AsInt() != 7 {
		t.Fatalf("expected constructor-assigned value, got %v", inst.Properties["$x"].Get())
	}
}

func TestInstantiatePromotedPropertyAliasesInstanceCell(t *testing.T) {
	cls := newTestClass("Point", nil)
	cls.Constructor = &CallableDef{
		Name:   "__construct",
		Params: []*Parameter{{Name: "$x", Promoted: &ast.Modifiers{Public: true}}},
	}
	cls.Properties["$x"] = &Property{Name: "$x", Default: value.NewCell(value.Null()), Modifiers: &ast.Modifiers{Public: true}}
	cls.PropertyOrder = []string{"$x"}

	run := func(body []ast.Statement, sc *scope.Scope) *diag.Diagnostic { return nil }

	args := []BoundArg{{Value: value.Int(3)}}
	inst, d := Instantiate("f.php", token.Position{}, cls, args, run, nil)
	if d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
	if inst.Properties["$x"].Get().AsInt() != 3 {
		t.Fatalf("promoted property should be bound from the constructor argument, got %v", inst.Properties["$x"].Get())
	}
}
