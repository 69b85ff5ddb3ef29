package evaluator

import (
	"github.com/scriptlang/phpwalk/internal/ast"
	"github.com/scriptlang/phpwalk/internal/diag"
	"github.com/scriptlang/phpwalk/internal/object"
	"github.com/scriptlang/phpwalk/internal/value"
)

// evalExpr dispatches one expression node (spec.md §4.3 "Expressions").
func (e *Evaluator) evalExpr(expr ast.Expression) (value.Value, *diag.Diagnostic) {
	switch x := expr.(type) {
	case *ast.IntLiteral:
		return value.Int(x.Value), nil
	case *ast.FloatLiteral:
		return value.Float(x.Value), nil
	case *ast.StringLiteral:
		return value.Str(x.Value), nil
	case *ast.BoolLiteral:
		return value.Bool(x.Value), nil
	case *ast.NullLiteral:
		return value.Null(), nil

	case *ast.VariableExpr:
		return e.readVar(x, x.Name)

	case *ast.VarVarExpr:
		inner, d := e.evalExpr(x.Inner)
		if d != nil {
			return value.Value{}, d
		}
		name, ok := value.Printable(inner)
		if !ok {
			return value.Value{}, diag.NewFatal(e.path, x.Pos(), diag.ErrMsgTypeMismatch, "string", "conversion of", inner.TypeName())
		}
		return e.readVar(x, name)

	case *ast.AssignExpr:
		return e.evalAssign(x)

	case *ast.CompoundAssignExpr:
		return e.evalCompoundAssign(x)

	case *ast.BinaryExpr:
		return e.evalBinary(x)

	case *ast.UnaryExpr:
		return e.evalUnary(x)

	case *ast.CoalesceExpr:
		left, d := e.evalExpr(x.Left)
		if d != nil {
			return value.Value{}, d
		}
		if !left.IsNull() {
			return left, nil
		}
		return e.evalExpr(x.Right)

	case *ast.InstanceofExpr:
		return e.evalInstanceof(x)

	case *ast.ParenExpr:
		return e.evalExpr(x.Inner)

	case *ast.ErrorSuppressExpr:
		return e.evalSuppressed(x)

	case *ast.IdentifierExpr:
		return e.evalIdentifier(x)

	case *ast.EmptyExpr:
		v, d := e.evalExpr(x.Arg)
		if d != nil {
			return value.Value{}, d
		}
		return value.Bool(!value.Truthy(v)), nil

	case *ast.IssetExpr:
		return e.evalIsset(x), nil

	case *ast.UnsetExpr:
		e.evalUnset(x)
		return value.Null(), nil

	case *ast.PrintExpr:
		v, d := e.evalExpr(x.Arg)
		if d != nil {
			return value.Value{}, d
		}
		str, ok := value.Printable(v)
		if !ok {
			e.warnAt(x.Arg, "%s to string conversion failed", v.TypeName())
		} else {
			e.output.WriteString(str)
		}
		return value.Int(1), nil

	case *ast.DieExpr:
		if x.Arg != nil {
			v, d := e.evalExpr(x.Arg)
			if d != nil {
				return value.Value{}, d
			}
			if str, ok := value.Printable(v); ok {
				e.output.WriteString(str)
			}
		}
		e.die = true
		return value.Null(), nil

	case *ast.ReferenceExpr:
		if !isReferenceable(x.Target) {
			return value.Value{}, diag.NewFatal(e.path, x.Pos(), "Only variables should be passed by reference")
		}
		return e.evalExpr(x.Target)

	case *ast.IncludeExpr:
		return e.evalInclude(x)

	case *ast.CallExpr:
		return e.evalCall(x)

	case *ast.NewExpr:
		return e.evalNew(x)

	case *ast.PropertyAccessExpr:
		return e.evalPropertyRead(x)

	case *ast.MethodCallExpr:
		return e.evalMethodCall(x)

	case *ast.StaticAccessExpr:
		return e.evalStaticAccess(x)

	default:
		return value.Null(), nil
	}
}

func isReferenceable(expr ast.Expression) bool {
	switch expr.(type) {
	case *ast.VariableExpr, *ast.VarVarExpr, *ast.PropertyAccessExpr:
		return true
	default:
		return false
	}
}

// readVar implements the Variable row of spec.md §4.3: reads the current
// scope, warning + null if undefined. "$this" is special-cased against the
// scope's object context (SPEC_FULL.md §4 self/parent/static supplement)
// rather than living in the ordinary vars map, since it is bound by method
// dispatch, not by assignment.
func (e *Evaluator) readVar(node ast.Node, name string) (value.Value, *diag.Diagnostic) {
	if name == "$this" {
		if e.sc.This == nil {
			return value.Null(), nil
		}
		return value.NewObject(e.sc.This), nil
	}
	cell := e.sc.GetVar(name)
	if cell == nil {
		e.warnAt(node, diag.ErrMsgUndefinedVariable, trimDollarName(name))
		return value.Null(), nil
	}
	return cell.Get(), nil
}

func trimDollarName(name string) string {
	if len(name) > 0 && name[0] == '$' {
		return name[1:]
	}
	return name
}

func (e *Evaluator) evalSuppressed(x *ast.ErrorSuppressExpr) (value.Value, *diag.Diagnostic) {
	savedDie := e.die
	savedWarnCount := len(e.warns)
	v, d := e.evalExpr(x.Inner)
	if d != nil || e.die != savedDie || len(e.warns) != savedWarnCount {
		e.die = savedDie
		e.warns = e.warns[:savedWarnCount]
	}
	if d != nil {
		return value.Null(), nil
	}
	return v, nil
}

func (e *Evaluator) evalIsset(x *ast.IssetExpr) value.Value {
	for _, arg := range x.Args {
		v, ok := e.peekLValue(arg)
		if !ok || v.IsNull() {
			return value.Bool(false)
		}
	}
	return value.Bool(true)
}

// peekLValue reads a variable/property without emitting an
// undefined-variable warning, for isset()'s silent-check semantics.
func (e *Evaluator) peekLValue(expr ast.Expression) (value.Value, bool) {
	switch x := expr.(type) {
	case *ast.VariableExpr:
		if x.Name == "$this" {
			if e.sc.This == nil {
				return value.Value{}, false
			}
			return value.NewObject(e.sc.This), true
		}
		cell := e.sc.GetVar(x.Name)
		if cell == nil {
			return value.Value{}, false
		}
		return cell.Get(), true
	case *ast.PropertyAccessExpr:
		obj, d := e.evalExpr(x.Object)
		if d != nil {
			return value.Value{}, false
		}
		inst, ok := instanceOf(obj)
		if !ok {
			return value.Value{}, false
		}
		cell, ok := inst.Properties[propKey(x.Property)]
		if !ok {
			return value.Value{}, false
		}
		return cell.Get(), true
	default:
		v, d := e.evalExpr(expr)
		if d != nil {
			return value.Value{}, false
		}
		return v, true
	}
}

func (e *Evaluator) evalUnset(x *ast.UnsetExpr) {
	for _, arg := range x.Args {
		if v, ok := arg.(*ast.VariableExpr); ok {
			e.sc.DeleteVar(v.Name)
		}
	}
}

func (e *Evaluator) evalIdentifier(x *ast.IdentifierExpr) (value.Value, *diag.Diagnostic) {
	id, ok := e.sc.GetIdentifier(x.Name)
	if !ok {
		return value.Value{}, diag.NewFatal(e.path, x.Pos(), diag.ErrMsgUndefinedIdentifier, x.Name)
	}
	if id.IsConst {
		return id.Const, nil
	}
	return value.NewCallable(&value.Callable{Name: id.Fn.CallableName()}), nil
}

func (e *Evaluator) evalInstanceof(x *ast.InstanceofExpr) (value.Value, *diag.Diagnostic) {
	left, d := e.evalExpr(x.Left)
	if d != nil {
		return value.Value{}, d
	}
	leftInst, ok := instanceOf(left)
	if !ok {
		return value.Value{}, diag.NewFatal(e.path, x.Pos(), diag.ErrMsgInstanceofOperand, left.TypeName())
	}

	var targetName string
	if ident, ok := x.Right.(*ast.IdentifierExpr); ok {
		targetName = ident.Name
	} else {
		right, d := e.evalExpr(x.Right)
		if d != nil {
			return value.Value{}, d
		}
		rightInst, ok := instanceOf(right)
		if !ok {
			return value.Value{}, diag.NewFatal(e.path, x.Pos(), diag.ErrMsgInstanceofOperand, right.TypeName())
		}
		targetName = rightInst.Class.Name
	}

	targetObj, ok := e.sc.GetObject(targetName)
	if !ok {
		return value.Value{}, diag.NewFatal(e.path, x.Pos(), diag.ErrMsgUndefinedClass, targetName)
	}
	target := targetObj.(*object.ClassDef)
	return value.Bool(leftInst.Class.InstanceOf(target)), nil
}

// instanceOf unwraps a Value's Object marker back to the concrete
// *object.Instance it always is in this runtime (object is the only
// package that constructs value.Object implementations).
func instanceOf(v value.Value) (*object.Instance, bool) {
	if v.Kind() != value.KindObject {
		return nil, false
	}
	inst, ok := v.AsObject().(*object.Instance)
	return inst, ok
}
