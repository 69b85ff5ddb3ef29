package object

import (
	"github.com/scriptlang/phpwalk/internal/ast"
	"github.com/scriptlang/phpwalk/internal/diag"
	"github.com/scriptlang/phpwalk/internal/scope"
	"github.com/scriptlang/phpwalk/internal/token"
	"github.com/scriptlang/phpwalk/internal/value"
)

// ExprEvaluator evaluates an expression against the scope active when a
// class/trait declaration statement runs. Declaration needs this only for
// constant values and property/parameter defaults (spec.md §4.4); it never
// needs to run a method body, so object stays independent of evaluator.
type ExprEvaluator func(expr ast.Expression) (value.Value, *diag.Diagnostic)

// traitBody is a raw trait definition kept around for composition: unlike
// a ClassDef that's already wired to an inheritance chain, a trait has no
// Parent and its methods/properties/constants are copied into the class
// that uses it.
type traitBody = ClassDef

// Declare builds a ClassDef from decl (spec.md §4.4's declaration pass),
// resolving `extends` and trait `use` against sc, and evaluating constant
// values / property defaults via eval. It registers nothing in sc itself;
// the caller (evaluator) does that via scope.DefineObject so redeclaration
// is checked uniformly for every identifier kind.
func Declare(path string, decl *ast.ClassDecl, sc *scope.Scope, eval ExprEvaluator) (*ClassDef, *diag.Diagnostic) {
	def := &ClassDef{
		Name:            decl.Name,
		Kind:            decl.Kind,
		Final:           decl.Final,
		Constants:       make(map[string]*Constant),
		Properties:      make(map[string]*Property),
		Methods:         make(map[string]*CallableDef),
		AbstractMethods: make(map[string]*CallableDef),
	}

	for _, cdecl := range decl.Constants {
		if _, exists := def.Constants[cdecl.Name]; exists {
			return nil, diag.NewFatal(path, cdecl.Pos(), "Cannot redeclare %s::%s", decl.Name, cdecl.Name)
		}
		v, d := eval(cdecl.Value)
		if d != nil {
			return nil, d
		}
		def.Constants[cdecl.Name] = &Constant{Name: cdecl.Name, Value: v, Modifiers: cdecl.Modifiers}
	}

	for _, pdecl := range decl.Properties {
		if _, exists := def.Properties[pdecl.Name]; exists {
			return nil, diag.NewFatal(path, pdecl.Pos(), "Cannot redeclare property %s::$%s", decl.Name, trimDollar(pdecl.Name))
		}
		defVal := value.Null()
		if pdecl.Default != nil {
			v, d := eval(pdecl.Default)
			if d != nil {
				return nil, d
			}
			if !TypeAccepts(pdecl.Type, v) {
				return nil, diag.NewFatal(path, pdecl.Pos(), "Cannot use default value for property %s::$%s of type %s", decl.Name, trimDollar(pdecl.Name), TypeNodeString(pdecl.Type))
			}
			defVal = v
		}
		def.Properties[pdecl.Name] = &Property{Name: pdecl.Name, Type: pdecl.Type, Default: value.NewCell(defVal), Modifiers: pdecl.Modifiers}
		def.PropertyOrder = append(def.PropertyOrder, pdecl.Name)
	}

	// Trait composition runs in two passes: pools/adaptations/property-and-
	// constant folding first (here), then method folding after the class
	// body's own methods are registered below, so a host concrete method
	// always pre-empts a trait collision regardless of source order.
	pending := make([]*pendingTraitUse, 0, len(decl.TraitUse))
	for _, use := range decl.TraitUse {
		p, d := prepareTraitUse(path, def, use, sc)
		if d != nil {
			return nil, d
		}
		pending = append(pending, p)
	}

	for _, m := range decl.Methods {
		name := m.Name
		if m.IsAbstract {
			if _, exists := def.AbstractMethods[name]; exists {
				return nil, diag.NewFatal(path, m.Pos(), "Cannot redeclare %s::%s()", decl.Name, name)
			}
			if m.Modifiers != nil && m.Modifiers.Private {
				return nil, diag.NewFatal(path, m.Pos(), "Abstract method %s::%s() cannot be declared private", decl.Name, name)
			}
			def.AbstractMethods[name] = buildCallable(m, eval)
			continue
		}
		if _, exists := def.Methods[name]; exists {
			return nil, diag.NewFatal(path, m.Pos(), diag.ErrMsgCannotRedeclareFunction, decl.Name+"::"+name)
		}
		def.Methods[name] = buildCallable(m, eval)
		def.MethodOrder = append(def.MethodOrder, name)
	}

	for _, p := range pending {
		if d := foldTraitMethods(path, def, p); d != nil {
			return nil, d
		}
	}

	if decl.Constructor != nil {
		ctor, err := buildConstructor(path, decl.Name, decl.Constructor, def, eval)
		if err != nil {
			return nil, err
		}
		def.Constructor = ctor
	}

	if decl.Parent != "" {
		parentObj, ok := sc.GetObject(decl.Parent)
		if !ok {
			return nil, diag.NewFatal(path, decl.Pos(), diag.ErrMsgExtendUndefinedClass, decl.Parent, decl.Name)
		}
		parent, ok := parentObj.(*ClassDef)
		if !ok {
			return nil, diag.NewFatal(path, decl.Pos(), diag.ErrMsgExtendUndefinedClass, decl.Parent, decl.Name)
		}
		if parent.Final {
			return nil, diag.NewFatal(path, decl.Pos(), diag.ErrMsgExtendFinalClass, decl.Name, parent.Name)
		}
		if parent.Kind == ast.KindTrait {
			return nil, diag.NewFatal(path, decl.Pos(), "Class %s cannot extend trait %s", decl.Name, parent.Name)
		}
		def.Parent = parent

		if def.Kind != ast.KindAbstractClass {
			if d := checkAbstractCoverage(path, decl.Pos(), def); d != nil {
				return nil, d
			}
		}
	}

	return def, nil
}

// checkAbstractCoverage enforces spec.md §4.4: every inherited abstract
// method must have a matching concrete implementation when the child is
// non-abstract.
func checkAbstractCoverage(path string, pos token.Position, def *ClassDef) *diag.Diagnostic {
	for cur := def; cur != nil; cur = cur.Parent {
		for name := range cur.AbstractMethods {
			if m, _ := def.LookupMethod(name); m == nil {
				return diag.NewFatal(path, pos, "Class %s contains 1 abstract method and must therefore be declared abstract or implement the remaining method (%s::%s)", def.Name, cur.Name, name)
			}
		}
	}
	return nil
}

// DeclareFunction builds a free function's CallableDef the same way a
// method's is built, for the evaluator's "function" statement handling
// (spec.md §4.3).
func DeclareFunction(fn *ast.FunctionDecl, eval ExprEvaluator) *CallableDef {
	return buildCallable(fn, eval)
}

func buildCallable(m *ast.FunctionDecl, eval ExprEvaluator) *CallableDef {
	return &CallableDef{
		Name:       m.Name,
		Params:     buildParameters(m.Parameters, eval),
		Body:       m.Body,
		IsStatic:   m.Modifiers != nil && m.Modifiers.Static,
		Modifiers:  m.Modifiers,
		IsAbstract: m.IsAbstract,
	}
}

// buildParameters converts AST parameters to object.Parameter, evaluating
// defaults via eval (nil defaults stay nil — required parameters).
func buildParameters(params []*ast.Parameter, eval ExprEvaluator) []*Parameter {
	out := make([]*Parameter, len(params))
	for i, p := range params {
		var def *value.Value
		if p.Default != nil && eval != nil {
			if v, d := eval(p.Default); d == nil {
				def = &v
			}
		}
		out[i] = &Parameter{
			Name:        p.Name,
			Type:        p.Type,
			Default:     def,
			ByReference: p.ByReference,
			Promoted:    p.PromotedModif,
		}
	}
	return out
}

// buildConstructor builds the constructor CallableDef and, for every
// promoted-property parameter, registers (or rejects a colliding) property
// on def (spec.md §4.4).
func buildConstructor(path, className string, fn *ast.FunctionDecl, def *ClassDef, eval ExprEvaluator) (*CallableDef, *diag.Diagnostic) {
	seen := make(map[string]bool, len(fn.Parameters))
	params := make([]*Parameter, 0, len(fn.Parameters))

	for _, p := range fn.Parameters {
		if seen[p.Name] {
			return nil, diag.NewFatal(path, fn.Pos(), "Duplicate parameter name $%s", trimDollar(p.Name))
		}
		seen[p.Name] = true

		var def2 *value.Value
		if p.Default != nil {
			v, d := eval(p.Default)
			if d != nil {
				return nil, d
			}
			def2 = &v
		}

		param := &Parameter{Name: p.Name, Type: p.Type, Default: def2, ByReference: p.ByReference, Promoted: p.PromotedModif}
		params = append(params, param)

		if p.PromotedModif != nil {
			propName := p.Name
			if _, exists := def.Properties[propName]; exists {
				return nil, diag.NewFatal(path, fn.Pos(), "Cannot redeclare property %s::$%s", className, trimDollar(propName))
			}
			initial := value.Null()
			if def2 != nil {
				initial = *def2
			}
			def.Properties[propName] = &Property{Name: propName, Type: p.Type, Default: value.NewCell(initial), Modifiers: p.PromotedModif}
			def.PropertyOrder = append(def.PropertyOrder, propName)
		}
	}

	return &CallableDef{Name: "__construct", Params: params, Body: fn.Body, Modifiers: fn.Modifiers}, nil
}
