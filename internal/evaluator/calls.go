package evaluator

import (
	"strings"

	"github.com/scriptlang/phpwalk/internal/ast"
	"github.com/scriptlang/phpwalk/internal/diag"
	"github.com/scriptlang/phpwalk/internal/object"
	"github.com/scriptlang/phpwalk/internal/scope"
	"github.com/scriptlang/phpwalk/internal/token"
	"github.com/scriptlang/phpwalk/internal/value"
)

// runBody is the object.StmtRunner every call site (free function, method,
// constructor) supplies: install the fresh activation scope, run the body
// in program order honoring the die flag, and always restore the caller's
// scope on the way out (spec.md §4.2 "Activation discipline" — normal,
// error, or die, the old scope comes back).
func (e *Evaluator) runBody(body []ast.Statement, fresh *scope.Scope) *diag.Diagnostic {
	saved := e.sc
	e.sc = fresh
	defer func() { e.sc = saved }()

	for _, stmt := range body {
		if e.die {
			break
		}
		if d := e.evalStatement(stmt); d != nil {
			return d
		}
	}
	return nil
}

// buildArgs evaluates a call site's argument list into object.BoundArg,
// retaining each argument's source expression for by-reference binding
// (spec.md §4.5).
func (e *Evaluator) buildArgs(args []ast.Argument) ([]object.BoundArg, *diag.Diagnostic) {
	out := make([]object.BoundArg, len(args))
	for i, a := range args {
		v, d := e.evalExpr(a.Value)
		if d != nil {
			return nil, d
		}
		out[i] = object.BoundArg{Name: a.Name, Value: v, Expr: a.Value}
	}
	return out, nil
}

// wireByRef aliases a by-reference parameter's slot in fresh to the
// caller-scope cell backing expr, so mutations inside the callee are
// observed by the caller's variable (spec.md §4.1/§4.5).
func (e *Evaluator) wireByRef(fresh *scope.Scope, paramName string, expr ast.Expression) {
	switch x := expr.(type) {
	case *ast.VariableExpr:
		cell := e.sc.GetVar(x.Name)
		if cell == nil {
			e.sc.SetVar(x.Name, value.Null())
			cell = e.sc.GetVar(x.Name)
		}
		fresh.BindCell(paramName, cell)
	case *ast.VarVarExpr:
		inner, d := e.evalExpr(x.Inner)
		if d != nil {
			return
		}
		name, ok := value.Printable(inner)
		if !ok {
			return
		}
		cell := e.sc.GetVar(name)
		if cell == nil {
			e.sc.SetVar(name, value.Null())
			cell = e.sc.GetVar(name)
		}
		fresh.BindCell(paramName, cell)
	default:
		// PropertyAccessExpr and other lvalues fall back to by-value
		// binding; only plain/variable-variable targets get true aliasing
		// in this subset.
		v, d := e.evalExpr(expr)
		if d == nil {
			fresh.SetVar(paramName, v)
		}
	}
}

// evalCall implements the "Function call" row of spec.md §4.3: a free
// function looked up in the active scope's identifier table.
func (e *Evaluator) evalCall(x *ast.CallExpr) (value.Value, *diag.Diagnostic) {
	ident, ok := x.Callee.(*ast.IdentifierExpr)
	if !ok {
		return value.Value{}, diag.NewFatal(e.path, x.Pos(), "Expression is not callable")
	}
	id, ok := e.sc.GetIdentifier(ident.Name)
	if !ok || id.IsConst {
		return value.Value{}, diag.NewFatal(e.path, x.Pos(), diag.ErrMsgUndefinedFunction, ident.Name)
	}
	fn, ok := id.Fn.(*object.CallableDef)
	if !ok {
		return value.Value{}, diag.NewFatal(e.path, x.Pos(), diag.ErrMsgUndefinedFunction, ident.Name)
	}

	args, d := e.buildArgs(x.Args)
	if d != nil {
		return value.Value{}, d
	}

	if d := object.Call(e.path, x.Pos(), fn, args, e.runBody, nil, e.wireByRef); d != nil {
		return value.Value{}, d
	}
	// spec.md §4.5: there is no explicit `return` handling in this subset;
	// every free-function/method call yields null (§9 open question,
	// deliberately left as a gap for a later iteration).
	return value.Null(), nil
}

// resolveClassRef resolves a class-name-producing expression to its
// ClassDef: a bare identifier (including self/parent/static against the
// active scope's object context), or any other expression evaluated to a
// string and looked up by that computed name (spec.md §4.4 "new").
func (e *Evaluator) resolveClassRef(expr ast.Expression, pos token.Position) (*object.ClassDef, *diag.Diagnostic) {
	if ident, ok := expr.(*ast.IdentifierExpr); ok {
		return e.resolveClassByName(ident.Name, pos)
	}
	v, d := e.evalExpr(expr)
	if d != nil {
		return nil, d
	}
	name, ok := value.Printable(v)
	if !ok {
		return nil, diag.NewFatal(e.path, pos, diag.ErrMsgTypeMismatch, "string", "conversion of", v.TypeName())
	}
	return e.resolveClassByName(name, pos)
}

// resolveClassByName resolves self/parent/static against the current
// scope's object context, or looks up a plain class/trait name (spec.md
// SPEC_FULL.md §4 self/parent/static supplement).
func (e *Evaluator) resolveClassByName(name string, pos token.Position) (*object.ClassDef, *diag.Diagnostic) {
	switch strings.ToLower(name) {
	case "self":
		if e.sc.DefiningClass == nil {
			return nil, diag.NewFatal(e.path, pos, "Cannot access self:: when no class scope is active")
		}
		return asClassDef(e.sc.DefiningClass), nil
	case "parent":
		if e.sc.DefiningClass == nil {
			return nil, diag.NewFatal(e.path, pos, "Cannot access parent:: when no class scope is active")
		}
		def := asClassDef(e.sc.DefiningClass)
		if def == nil || def.Parent == nil {
			return nil, diag.NewFatal(e.path, pos, "Cannot access parent:: when current class scope has no parent")
		}
		return def.Parent, nil
	case "static":
		if e.sc.StaticClass == nil {
			return nil, diag.NewFatal(e.path, pos, "Cannot access static:: when no class scope is active")
		}
		return asClassDef(e.sc.StaticClass), nil
	default:
		obj, ok := e.sc.GetObject(name)
		if !ok {
			return nil, diag.NewFatal(e.path, pos, diag.ErrMsgUndefinedClass, name)
		}
		def, ok := obj.(*object.ClassDef)
		if !ok {
			return nil, diag.NewFatal(e.path, pos, diag.ErrMsgUndefinedClass, name)
		}
		return def, nil
	}
}

func asClassDef(def scope.ObjectDef) *object.ClassDef {
	d, _ := def.(*object.ClassDef)
	return d
}

// evalNew implements spec.md §4.4 "new": look up the target, reject
// abstract classes/traits, bind constructor arguments, and materialize
// promoted properties.
func (e *Evaluator) evalNew(x *ast.NewExpr) (value.Value, *diag.Diagnostic) {
	def, d := e.resolveClassRef(x.ClassExpr, x.Pos())
	if d != nil {
		return value.Value{}, d
	}

	args, d := e.buildArgs(x.Args)
	if d != nil {
		return value.Value{}, d
	}

	inst, d := object.Instantiate(e.path, x.Pos(), def, args, e.runBody, e.wireByRef)
	if d != nil {
		return value.Value{}, d
	}
	return value.NewObject(inst), nil
}

// currentClassContext reports the class whose body is currently executing
// (DefiningClass), used for visibility checks.
func (e *Evaluator) currentClassContext() *object.ClassDef {
	if e.sc.DefiningClass == nil {
		return nil
	}
	return asClassDef(e.sc.DefiningClass)
}

// checkPropertyAccess enforces SPEC_FULL.md's visibility supplement: a
// private member is reachable only from its declaring class, a protected
// member only from within the class hierarchy.
func checkPropertyAccess(path string, pos token.Position, owner *object.ClassDef, prop *object.Property, from *object.ClassDef) *diag.Diagnostic {
	vis := object.Visibility(prop.Modifiers)
	switch vis {
	case "private":
		if from == nil || from.Name != owner.Name {
			return diag.NewFatal(path, pos, diag.ErrMsgAccessPrivateProperty, owner.Name, trimDollarName(prop.Name))
		}
	case "protected":
		if from == nil || !(from.InstanceOf(owner) || owner.InstanceOf(from)) {
			return diag.NewFatal(path, pos, diag.ErrMsgAccessProtectedProperty, owner.Name, trimDollarName(prop.Name))
		}
	}
	return nil
}

func checkMethodAccess(path string, pos token.Position, owner *object.ClassDef, method *object.CallableDef, methodName string, from *object.ClassDef) *diag.Diagnostic {
	vis := object.Visibility(method.Modifiers)
	switch vis {
	case "private":
		if from == nil || from.Name != owner.Name {
			return diag.NewFatal(path, pos, diag.ErrMsgAccessPrivateMethod, owner.Name, methodName)
		}
	case "protected":
		if from == nil || !(from.InstanceOf(owner) || owner.InstanceOf(from)) {
			return diag.NewFatal(path, pos, diag.ErrMsgAccessProtectedMethod, owner.Name, methodName)
		}
	}
	return nil
}

// propKey canonicalizes a `->` access name to the `$`-sigiled form that
// ClassDef.Properties/Instance.Properties are keyed under (declare.go
// stores properties by their `$name` token literal, while a
// PropertyAccessExpr.Property is the bare identifier written after `->`).
func propKey(name string) string {
	if len(name) > 0 && name[0] == '$' {
		return name
	}
	return "$" + name
}

// evalPropertyRead implements `$obj->prop` reads (SPEC_FULL.md member
// access supplement), enforcing visibility.
func (e *Evaluator) evalPropertyRead(x *ast.PropertyAccessExpr) (value.Value, *diag.Diagnostic) {
	objVal, d := e.evalExpr(x.Object)
	if d != nil {
		return value.Value{}, d
	}
	inst, ok := instanceOf(objVal)
	if !ok {
		return value.Value{}, diag.NewFatal(e.path, x.Pos(), "Attempt to read property \"%s\" on %s", trimDollarName(x.Property), objVal.TypeName())
	}
	prop, owner := inst.Class.LookupProperty(propKey(x.Property))
	if prop == nil {
		e.warnAt(x, diag.ErrMsgUndefinedProperty, inst.Class.Name, trimDollarName(x.Property))
		return value.Null(), nil
	}
	if d := checkPropertyAccess(e.path, x.Pos(), owner, prop, e.currentClassContext()); d != nil {
		return value.Value{}, d
	}
	cell := inst.Properties[propKey(x.Property)]
	return cell.Get(), nil
}

// assignProperty implements the write side of `$obj->prop = v`.
func (e *Evaluator) assignProperty(x *ast.PropertyAccessExpr, v value.Value) *diag.Diagnostic {
	objVal, d := e.evalExpr(x.Object)
	if d != nil {
		return d
	}
	inst, ok := instanceOf(objVal)
	if !ok {
		return diag.NewFatal(e.path, x.Pos(), "Attempt to assign property \"%s\" on %s", trimDollarName(x.Property), objVal.TypeName())
	}
	prop, owner := inst.Class.LookupProperty(propKey(x.Property))
	if prop == nil {
		// Declaring-on-write is not supported in this subset's typed
		// property model; assigning an undeclared property is fatal,
		// mirroring a typed-property language rather than PHP's dynamic
		// stdClass-style behavior.
		return diag.NewFatal(e.path, x.Pos(), diag.ErrMsgUndefinedProperty, inst.Class.Name, trimDollarName(x.Property))
	}
	if d := checkPropertyAccess(e.path, x.Pos(), owner, prop, e.currentClassContext()); d != nil {
		return d
	}
	if !object.TypeAccepts(prop.Type, v) {
		return diag.NewFatal(e.path, x.Pos(), "Cannot assign %s to property %s::$%s of type %s", v.TypeName(), owner.Name, trimDollarName(x.Property), object.TypeNodeString(prop.Type))
	}
	cell, ok := inst.Properties[propKey(x.Property)]
	if !ok {
		cell = value.NewCell(v)
		inst.Properties[propKey(x.Property)] = cell
		return nil
	}
	cell.Set(v)
	return nil
}

// evalMethodCall implements `$obj->method(args...)` (SPEC_FULL.md member
// access supplement): lookup starts at the instance's actual runtime
// class, binds arguments exactly as free functions do, and runs with
// This/DefiningClass/StaticClass set for self/parent/static resolution
// inside the method body.
func (e *Evaluator) evalMethodCall(x *ast.MethodCallExpr) (value.Value, *diag.Diagnostic) {
	objVal, d := e.evalExpr(x.Object)
	if d != nil {
		return value.Value{}, d
	}
	inst, ok := instanceOf(objVal)
	if !ok {
		return value.Value{}, diag.NewFatal(e.path, x.Pos(), diag.ErrMsgUndefinedMethod, objVal.TypeName(), x.Method)
	}
	method, owner := inst.Class.LookupMethod(x.Method)
	if method == nil {
		return value.Value{}, diag.NewFatal(e.path, x.Pos(), diag.ErrMsgUndefinedMethod, inst.Class.Name, x.Method)
	}
	if d := checkMethodAccess(e.path, x.Pos(), owner, method, x.Method, e.currentClassContext()); d != nil {
		return value.Value{}, d
	}

	args, d := e.buildArgs(x.Args)
	if d != nil {
		return value.Value{}, d
	}

	ctxSetup := func(fresh *scope.Scope) {
		fresh.This = inst
		fresh.DefiningClass = owner
		fresh.StaticClass = inst.Class
	}

	if d := object.Call(e.path, x.Pos(), method, args, e.runBody, ctxSetup, e.wireByRef); d != nil {
		return value.Value{}, d
	}
	return value.Null(), nil
}

// evalStaticAccess implements `Class::CONST` and `Class::method(...)`,
// including `self::`/`parent::`/`static::` receivers (SPEC_FULL.md member
// access supplement).
func (e *Evaluator) evalStaticAccess(x *ast.StaticAccessExpr) (value.Value, *diag.Diagnostic) {
	def, d := e.resolveClassByName(x.ClassName, x.Pos())
	if d != nil {
		return value.Value{}, d
	}

	if !x.IsCall {
		c, _ := def.LookupConstant(x.Member)
		if c == nil {
			return value.Value{}, diag.NewFatal(e.path, x.Pos(), "Undefined constant %s::%s", def.Name, x.Member)
		}
		return c.Value, nil
	}

	var method *object.CallableDef
	var owner *object.ClassDef
	if x.Member == "__construct" {
		// "parent::__construct(...)" constructor-chaining form (SPEC_FULL.md
		// §4): constructors live in ClassDef.Constructor, not Methods, so
		// they need their own lookup.
		method, owner = def.LookupConstructor()
	} else {
		method, owner = def.LookupMethod(x.Member)
	}
	if method == nil {
		return value.Value{}, diag.NewFatal(e.path, x.Pos(), diag.ErrMsgUndefinedMethod, def.Name, x.Member)
	}
	if x.Member != "__construct" {
		if d := checkMethodAccess(e.path, x.Pos(), owner, method, x.Member, e.currentClassContext()); d != nil {
			return value.Value{}, d
		}
	}

	args, d := e.buildArgs(x.Args)
	if d != nil {
		return value.Value{}, d
	}

	// parent::method(...) / self::method(...) called from inside another
	// method run against the same receiver: preserve This and the
	// late-static-binding StaticClass, only DefiningClass moves to the
	// method's actual owner (constructor-chaining per SPEC_FULL.md §4).
	this := e.sc.This
	staticClass := e.sc.StaticClass
	ctxSetup := func(fresh *scope.Scope) {
		fresh.This = this
		fresh.DefiningClass = owner
		if staticClass != nil {
			fresh.StaticClass = staticClass
		} else {
			fresh.StaticClass = def
		}
	}

	if method.IsStatic {
		ctxSetup = func(fresh *scope.Scope) {
			fresh.DefiningClass = owner
			fresh.StaticClass = def
		}
	}

	if x.Member == "__construct" && this != nil {
		// Promoted-property parameters alias directly into the existing
		// instance's property cells (spec.md §4.4), exactly as a direct
		// "new" would, so chained construction still persists mutations.
		return value.Null(), e.callConstructorChain(x.Pos(), method, owner, this, args, ctxSetup)
	}

	if d := object.Call(e.path, x.Pos(), method, args, e.runBody, ctxSetup, e.wireByRef); d != nil {
		return value.Value{}, d
	}
	return value.Null(), nil
}

// callConstructorChain runs a constructor (typically "parent::__construct")
// against an already-materialized instance, binding promoted-property
// parameters to that instance's existing property cells instead of
// allocating fresh ones (spec.md §4.4).
func (e *Evaluator) callConstructorChain(pos token.Position, ctor *object.CallableDef, owner *object.ClassDef, this value.Object, args []object.BoundArg, ctxSetup func(*scope.Scope)) *diag.Diagnostic {
	inst, ok := this.(*object.Instance)
	if !ok {
		return diag.NewFatal(e.path, pos, "Cannot call %s::__construct() without an object context", owner.Name)
	}
	bound, d := object.BindArguments(e.path, owner.Name+"::__construct", pos, ctor.Params, args)
	if d != nil {
		return d
	}
	fresh := scope.New()
	ctxSetup(fresh)
	for _, b := range bound {
		if b.Param.Promoted != nil {
			if cell, ok := inst.Properties[b.Param.Name]; ok {
				cell.Set(b.Val)
				fresh.BindCell(b.Param.Name, cell)
				continue
			}
		}
		if b.Param.ByReference && b.Expr != nil {
			e.wireByRef(fresh, b.Param.Name, b.Expr)
			continue
		}
		fresh.SetVar(b.Param.Name, b.Val)
	}
	return e.runBody(ctor.Body, fresh)
}
