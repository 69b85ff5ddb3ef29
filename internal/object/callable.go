// Package object implements the Object Subsystem (spec.md §4.4): class and
// trait declaration, trait composition, instantiation, instanceof testing,
// and the argument-binding algorithm (§4.5) shared by free functions,
// methods, and constructors.
//
// Grounded on the reference implementation's php_data_types/objects/class.rs
// (PhpClass, PhpObjectProperty, PhpObjectConcreteMethod,
// PhpObjectConcreteConstructor) and evaluator/src/expressions/function_call.rs
// (the argument-binding loop). Object never imports the evaluator package:
// running a callable's body is the evaluator's job, so Call accepts a
// StmtRunner callback instead — the same callback-based cycle-break the
// teacher uses for destructor invocation in internal/interp/runtime/refcount.go.
package object

import (
	"github.com/scriptlang/phpwalk/internal/ast"
	"github.com/scriptlang/phpwalk/internal/diag"
	"github.com/scriptlang/phpwalk/internal/scope"
	"github.com/scriptlang/phpwalk/internal/token"
	"github.com/scriptlang/phpwalk/internal/value"
)

// Parameter is a declared formal parameter, with its default already
// evaluated at declaration time (mirroring the reference implementation,
// whose CallableArgument.default_value is a pre-evaluated PhpValue rather
// than an unevaluated expression).
type Parameter struct {
	Name        string
	Type        *ast.TypeNode
	Default     *value.Value // nil if required
	ByReference bool
	Promoted    *ast.Modifiers // non-nil on a constructor's promoted property
}

// CallableDef is a free function, method, or constructor (spec.md §3
// CallableDef). It satisfies scope.Callable.
type CallableDef struct {
	Name       string
	Params     []*Parameter
	Body       []ast.Statement
	IsStatic   bool
	Modifiers  *ast.Modifiers // nil for free functions
	IsAbstract bool
}

// CallableName implements scope.Callable.
func (c *CallableDef) CallableName() string { return c.Name }

// StmtRunner executes a callable body against a freshly installed scope.
// The evaluator supplies this; object never executes statements itself.
type StmtRunner func(body []ast.Statement, sc *scope.Scope) *diag.Diagnostic

// BoundArg is one call-site argument, already evaluated to a Value in the
// caller's scope.
type BoundArg struct {
	Name  string // "" for positional
	Value value.Value
	Expr  ast.Expression // original call-site expression; needed for &-parameters
}

// BindResult is the per-parameter outcome of BindArguments: the value to
// install, and (when the parameter is by-reference) the call-site
// expression the evaluator must resolve back to a shared *value.Cell.
type BindResult struct {
	Param *Parameter
	Val   value.Value
	Expr  ast.Expression // nil unless this slot came from an argument expression
}

// BindArguments implements spec.md §4.5: positional-then-named matching
// against the declared parameter queue, type compatibility checking, and
// default substitution. calleeName is used only for error-message
// prefixing ("<fn>(): Argument #<n> ($name): ...").
func BindArguments(path, calleeName string, pos token.Position, params []*Parameter, args []BoundArg) ([]BindResult, *diag.Diagnostic) {
	queue := make([]*Parameter, len(params))
	copy(queue, params)

	bound := make(map[string]BindResult, len(params))
	argNum := 0

	removeFromQueue := func(name string) {
		for i, p := range queue {
			if p.Name == name {
				queue = append(queue[:i], queue[i+1:]...)
				return
			}
		}
	}
	find := func(name string) *Parameter {
		for _, p := range queue {
			if p.Name == name {
				return p
			}
		}
		return nil
	}

	for _, a := range args {
		argNum++
		if a.Name == "" {
			if len(queue) == 0 {
				continue // extra positional argument: silently dropped
			}
			p := queue[0]
			queue = queue[1:]
			if p.ByReference && !isLValue(a.Expr) {
				return nil, diag.NewFatal(path, pos, "%s(): Argument #%d ($%s) could not be passed by reference", calleeName, argNum, trimDollar(p.Name))
			}
			if d := checkArgType(path, calleeName, pos, argNum, p, a.Value); d != nil {
				return nil, d
			}
			bound[p.Name] = BindResult{Param: p, Val: a.Value, Expr: a.Expr}
			continue
		}

		key := "$" + a.Name
		if _, already := bound[key]; already {
			return nil, diag.NewFatal(path, pos, "Named argument %s overwrites previous argument", key)
		}
		p := find(key)
		if p == nil {
			return nil, diag.NewFatal(path, pos, diag.ErrMsgArgUnknownNamed, a.Name)
		}
		removeFromQueue(key)
		if p.ByReference && !isLValue(a.Expr) {
			return nil, diag.NewFatal(path, pos, "%s(): Argument #%d ($%s) could not be passed by reference", calleeName, argNum, a.Name)
		}
		if d := checkArgType(path, calleeName, pos, argNum, p, a.Value); d != nil {
			return nil, d
		}
		bound[key] = BindResult{Param: p, Val: a.Value, Expr: a.Expr}
	}

	for _, p := range queue {
		if p.Default == nil {
			return nil, diag.NewFatal(path, pos, diag.ErrMsgArgCountFew, calleeName, len(args), requiredCount(params))
		}
		bound[p.Name] = BindResult{Param: p, Val: *p.Default}
	}

	results := make([]BindResult, 0, len(params))
	for _, p := range params {
		if r, ok := bound[p.Name]; ok {
			results = append(results, r)
		}
	}
	return results, nil
}

// isLValue reports whether expr can be the target of "&" reference
// binding: a plain variable, variable-variable, or property access
// (spec.md §4.1's "e must be an lvalue").
func isLValue(expr ast.Expression) bool {
	switch expr.(type) {
	case *ast.VariableExpr, *ast.VarVarExpr, *ast.PropertyAccessExpr:
		return true
	default:
		return false
	}
}

func requiredCount(params []*Parameter) int {
	n := 0
	for _, p := range params {
		if p.Default == nil {
			n++
		}
	}
	return n
}

func checkArgType(path, calleeName string, pos token.Position, argNum int, p *Parameter, v value.Value) *diag.Diagnostic {
	if !TypeAccepts(p.Type, v) {
		want := "mixed"
		if p.Type != nil {
			want = TypeNodeString(p.Type)
		}
		return diag.NewFatal(path, pos, diag.ErrMsgArgTypeMismatch, calleeName, argNum, trimDollar(p.Name), want, v.TypeName())
	}
	return nil
}

func trimDollar(name string) string {
	if len(name) > 0 && name[0] == '$' {
		return name[1:]
	}
	return name
}

// Call binds args against def's parameters, installs a fresh scope
// (optionally customized by ctxSetup for This/DefiningClass/StaticClass),
// lets wireByRef alias each by-reference parameter's cell into the fresh
// scope, and runs the body via run. ctxSetup may be nil for free
// functions; wireByRef may be nil when def has no by-reference parameters.
func Call(path string, pos token.Position, def *CallableDef, args []BoundArg, run StmtRunner, ctxSetup func(*scope.Scope), wireByRef func(fresh *scope.Scope, paramName string, expr ast.Expression)) *diag.Diagnostic {
	bound, d := BindArguments(path, def.Name, pos, def.Params, args)
	if d != nil {
		return d
	}

	fresh := scope.New()
	if ctxSetup != nil {
		ctxSetup(fresh)
	}
	for _, b := range bound {
		if b.Param.ByReference && b.Expr != nil && wireByRef != nil {
			wireByRef(fresh, b.Param.Name, b.Expr)
			continue
		}
		fresh.SetVar(b.Param.Name, b.Val)
	}
	return run(def.Body, fresh)
}
