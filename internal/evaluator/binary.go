package evaluator

import (
	"github.com/scriptlang/phpwalk/internal/ast"
	"github.com/scriptlang/phpwalk/internal/diag"
	"github.com/scriptlang/phpwalk/internal/token"
	"github.com/scriptlang/phpwalk/internal/value"
)

// evalBinary implements spec.md §4.1's arithmetic/bitwise/comparison/
// logical/concat operators, short-circuiting "&&"/"||" before evaluating
// the right operand.
func (e *Evaluator) evalBinary(x *ast.BinaryExpr) (value.Value, *diag.Diagnostic) {
	if x.Op == token.AND_AND {
		left, d := e.evalExpr(x.Left)
		if d != nil {
			return value.Value{}, d
		}
		if !value.Truthy(left) {
			return value.Bool(false), nil
		}
		right, d := e.evalExpr(x.Right)
		if d != nil {
			return value.Value{}, d
		}
		return value.Bool(value.Truthy(right)), nil
	}
	if x.Op == token.OR_OR {
		left, d := e.evalExpr(x.Left)
		if d != nil {
			return value.Value{}, d
		}
		if value.Truthy(left) {
			return value.Bool(true), nil
		}
		right, d := e.evalExpr(x.Right)
		if d != nil {
			return value.Value{}, d
		}
		return value.Bool(value.Truthy(right)), nil
	}

	left, d := e.evalExpr(x.Left)
	if d != nil {
		return value.Value{}, d
	}
	right, d := e.evalExpr(x.Right)
	if d != nil {
		return value.Value{}, d
	}

	result, opErr := applyBinaryOp(x.Op, left, right)
	if opErr != nil {
		return value.Value{}, diag.NewFatal(e.path, x.Pos(), opErr.Message)
	}
	return result, nil
}

// applyBinaryOp dispatches a binary token to the corresponding value
// package operation (spec.md §4.1), shared with compound-assignment's
// read-modify-write.
func applyBinaryOp(op token.Type, left, right value.Value) (value.Value, *value.OpError) {
	switch op {
	case token.PLUS:
		return value.Add(left, right)
	case token.MINUS:
		return value.Sub(left, right)
	case token.STAR:
		return value.Mul(left, right)
	case token.SLASH:
		return value.Div(left, right)
	case token.PERCENT:
		return value.Mod(left, right)
	case token.POW:
		return value.Pow(left, right)
	case token.DOT:
		return value.Concat(left, right)
	case token.AMP:
		return value.BitAnd(left, right)
	case token.PIPE:
		return value.BitOr(left, right)
	case token.CARET:
		return value.BitXor(left, right)
	case token.SHL:
		return value.Shl(left, right)
	case token.SHR:
		return value.Shr(left, right)
	case token.EQ:
		return value.Bool(value.Eq(left, right)), nil
	case token.NOT_EQ:
		return value.Bool(!value.Eq(left, right)), nil
	case token.IDENTICAL:
		return value.Bool(value.Identical(left, right)), nil
	case token.NOT_IDENTICAL:
		return value.Bool(!value.Identical(left, right)), nil
	case token.LT:
		return value.Bool(value.Cmp(left, right) < 0), nil
	case token.GT:
		return value.Bool(value.Cmp(left, right) > 0), nil
	case token.LE:
		return value.Bool(value.Cmp(left, right) <= 0), nil
	case token.GE:
		return value.Bool(value.Cmp(left, right) >= 0), nil
	case token.SPACESHIP:
		return value.Int(int64(value.Cmp(left, right))), nil
	default:
		return value.Value{}, &value.OpError{Kind: "UnsupportedOperation", Message: "Unsupported operator " + op.String()}
	}
}

// evalUnary implements spec.md §4.1's prefix "!"/"-"/"+"/"~".
func (e *Evaluator) evalUnary(x *ast.UnaryExpr) (value.Value, *diag.Diagnostic) {
	v, d := e.evalExpr(x.Right)
	if d != nil {
		return value.Value{}, d
	}
	switch x.Op {
	case token.BANG:
		return value.Not(v), nil
	case token.MINUS:
		neg, opErr := value.Sub(value.Int(0), v)
		if opErr != nil {
			return value.Value{}, diag.NewFatal(e.path, x.Pos(), opErr.Message)
		}
		return neg, nil
	case token.PLUS:
		pos, opErr := value.Add(value.Int(0), v)
		if opErr != nil {
			return value.Value{}, diag.NewFatal(e.path, x.Pos(), opErr.Message)
		}
		return pos, nil
	case token.TILDE:
		inv, opErr := value.BitXor(v, value.Int(-1))
		if opErr != nil {
			return value.Value{}, diag.NewFatal(e.path, x.Pos(), opErr.Message)
		}
		return inv, nil
	default:
		return value.Value{}, diag.NewFatal(e.path, x.Pos(), "Unsupported unary operator %s", x.Op.String())
	}
}
