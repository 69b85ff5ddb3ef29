package evaluator

import (
	"github.com/scriptlang/phpwalk/internal/ast"
	"github.com/scriptlang/phpwalk/internal/diag"
	"github.com/scriptlang/phpwalk/internal/token"
	"github.com/scriptlang/phpwalk/internal/value"
)

// evalAssign implements spec.md §4.1's reference/owned assignment rules
// and §4.3's Assignment row: the result of "a = b" is the assigned value.
func (e *Evaluator) evalAssign(x *ast.AssignExpr) (value.Value, *diag.Diagnostic) {
	if x.ByRef {
		srcName, ok := lvalueName(x.Value)
		if !ok {
			return value.Value{}, diag.NewFatal(e.path, x.Pos(), "Only variables should be assigned by reference")
		}
		dstName, ok := lvalueName(x.Target)
		if !ok {
			return value.Value{}, diag.NewFatal(e.path, x.Pos(), "Only variables can be assigned by reference")
		}
		e.sc.MakeReference(dstName, srcName)
		return e.sc.GetVar(dstName).Get(), nil
	}

	v, d := e.evalExpr(x.Value)
	if d != nil {
		return value.Value{}, d
	}
	if d := e.assignTo(x.Target, v); d != nil {
		return value.Value{}, d
	}
	return v, nil
}

// lvalueName extracts the plain variable name from a VariableExpr; it fails
// for anything else, a VarVarExpr included.
func lvalueName(expr ast.Expression) (string, bool) {
	switch x := expr.(type) {
	case *ast.VariableExpr:
		return x.Name, true
	default:
		_ = x
		return "", false
	}
}

// assignTo writes v into the lvalue expr: a plain variable, a
// variable-variable, or an object property.
func (e *Evaluator) assignTo(expr ast.Expression, v value.Value) *diag.Diagnostic {
	switch x := expr.(type) {
	case *ast.VariableExpr:
		e.sc.SetVar(x.Name, v)
		return nil

	case *ast.VarVarExpr:
		inner, d := e.evalExpr(x.Inner)
		if d != nil {
			return d
		}
		name, ok := value.Printable(inner)
		if !ok {
			return diag.NewFatal(e.path, x.Pos(), diag.ErrMsgTypeMismatch, "string", "conversion of", inner.TypeName())
		}
		e.sc.SetVar(name, v)
		return nil

	case *ast.PropertyAccessExpr:
		return e.assignProperty(x, v)

	default:
		return diag.NewFatal(e.path, expr.Pos(), "Cannot assign to this expression")
	}
}

// evalCompoundAssign implements spec.md §4.3's compound-assign row:
// undefined LHS is fatal except for "??=", otherwise read-modify-write.
func (e *Evaluator) evalCompoundAssign(x *ast.CompoundAssignExpr) (value.Value, *diag.Diagnostic) {
	cur, existed := e.peekLValue(x.Target)

	if x.Op == token.COALESCE_ASSIGN {
		if existed && !cur.IsNull() {
			return cur, nil
		}
		rhs, d := e.evalExpr(x.Value)
		if d != nil {
			return value.Value{}, d
		}
		if d := e.assignTo(x.Target, rhs); d != nil {
			return value.Value{}, d
		}
		return rhs, nil
	}

	if !existed {
		name, _ := lvalueName(x.Target)
		return value.Value{}, diag.NewFatal(e.path, x.Pos(), diag.ErrMsgUndefinedVariable, trimDollarName(name))
	}

	rhs, d := e.evalExpr(x.Value)
	if d != nil {
		return value.Value{}, d
	}

	result, opErr := applyBinaryOp(compoundBaseOp(x.Op), cur, rhs)
	if opErr != nil {
		return value.Value{}, diag.NewFatal(e.path, x.Pos(), opErr.Message)
	}
	if d := e.assignTo(x.Target, result); d != nil {
		return value.Value{}, d
	}
	return result, nil
}

// compoundBaseOp maps a compound-assign token to the binary operator it
// wraps ("+=" -> "+", etc).
func compoundBaseOp(op token.Type) token.Type {
	switch op {
	case token.PLUS_ASSIGN:
		return token.PLUS
	case token.MINUS_ASSIGN:
		return token.MINUS
	case token.STAR_ASSIGN:
		return token.STAR
	case token.SLASH_ASSIGN:
		return token.SLASH
	case token.PERCENT_ASSIGN:
		return token.PERCENT
	case token.POW_ASSIGN:
		return token.POW
	case token.DOT_ASSIGN:
		return token.DOT
	case token.AND_ASSIGN:
		return token.AMP
	case token.OR_ASSIGN:
		return token.PIPE
	case token.XOR_ASSIGN:
		return token.CARET
	case token.SHL_ASSIGN:
		return token.SHL
	case token.SHR_ASSIGN:
		return token.SHR
	default:
		return op
	}
}
