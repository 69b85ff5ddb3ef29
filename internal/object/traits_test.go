package object

import (
	"testing"

	"github.com/scriptlang/phpwalk/internal/ast"
	"github.com/scriptlang/phpwalk/internal/diag"
	"github.com/scriptlang/phpwalk/internal/scope"
	"github.com/scriptlang/phpwalk/internal/token"
)

// applyTraitUse composes the two production phases (prepareTraitUse,
// then foldTraitMethods) in one call, for tests that declare a class's
// own methods directly on def before exercising trait composition rather
// than going through Declare's two-pass ordering.
func applyTraitUse(path string, def *ClassDef, use *ast.TraitUseDecl, sc *scope.Scope) *diag.Diagnostic {
	pending, d := prepareTraitUse(path, def, use, sc)
	if d != nil {
		return d
	}
	return foldTraitMethods(path, def, pending)
}

func declareTrait(t *testing.T, sc *scope.Scope, name string, methods ...string) *ClassDef {
	t.Helper()
	trait := newTestClass(name, nil)
	trait.Kind = ast.KindTrait
	for _, m := range methods {
		trait.Methods[m] = &CallableDef{Name: m}
		trait.MethodOrder = append(trait.MethodOrder, m)
	}
	sc.DefineObject("f.php", token.Position{}, name, trait)
	return trait
}

func TestApplyTraitUseSimpleComposition(t *testing.T) {
	sc := scope.New()
	declareTrait(t, sc, "Greets", "hello")

	def := newTestClass("Greeter", nil)
	use := &ast.TraitUseDecl{Traits: []string{"Greets"}}

	if d := applyTraitUse("f.php", def, use, sc); d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
	if m, _ := def.LookupMethod("hello"); m == nil {
		t.Fatal("expected composed method 'hello' to be present on Greeter")
	}
}

func TestApplyTraitUseCollisionIsFatal(t *testing.T) {
	sc := scope.New()
	declareTrait(t, sc, "A", "speak")
	declareTrait(t, sc, "B", "speak")

	def := newTestClass("C", nil)
	use := &ast.TraitUseDecl{Traits: []string{"A", "B"}}

	if d := applyTraitUse("f.php", def, use, sc); d == nil {
		t.Fatal("expected a fatal diagnostic for an unresolved trait method collision")
	}
}

func TestApplyTraitUsePrecedenceResolvesCollision(t *testing.T) {
	sc := scope.New()
	declareTrait(t, sc, "A", "speak")
	declareTrait(t, sc, "B", "speak")

	def := newTestClass("C", nil)
	use := &ast.TraitUseDecl{
		Traits: []string{"A", "B"},
		Adaptations: []*ast.TraitAdaptation{
			{Kind: "precedence", SourceTrait: "A", Method: "speak", InsteadOf: []string{"B"}},
		},
	}

	if d := applyTraitUse("f.php", def, use, sc); d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
	if _, ok := def.Methods["speak"]; !ok {
		t.Fatal("expected 'speak' to resolve via precedence adaptation")
	}
}

func TestApplyTraitUseAlias(t *testing.T) {
	sc := scope.New()
	declareTrait(t, sc, "A", "speak")

	def := newTestClass("C", nil)
	use := &ast.TraitUseDecl{
		Traits: []string{"A"},
		Adaptations: []*ast.TraitAdaptation{
			{Kind: "alias", SourceTrait: "A", Method: "speak", NewName: "talk"},
		},
	}

	if d := applyTraitUse("f.php", def, use, sc); d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
	if _, ok := def.Methods["talk"]; !ok {
		t.Fatal("expected alias adaptation to register 'talk'")
	}
	if _, ok := def.Methods["speak"]; !ok {
		t.Fatal("aliasing should not remove the original method name")
	}
}

func TestApplyTraitUseHostMethodWinsOverCollision(t *testing.T) {
	sc := scope.New()
	declareTrait(t, sc, "A", "speak")
	declareTrait(t, sc, "B", "speak")

	def := newTestClass("C", nil)
	def.Methods["speak"] = &CallableDef{Name: "speak"}
	use := &ast.TraitUseDecl{Traits: []string{"A", "B"}}

	if d := applyTraitUse("f.php", def, use, sc); d != nil {
		t.Fatalf("host class method should silently win over trait collision, got diagnostic: %v", d)
	}
}
