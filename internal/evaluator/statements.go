package evaluator

import (
	"github.com/scriptlang/phpwalk/internal/ast"
	"github.com/scriptlang/phpwalk/internal/diag"
	"github.com/scriptlang/phpwalk/internal/object"
	"github.com/scriptlang/phpwalk/internal/scope"
	"github.com/scriptlang/phpwalk/internal/value"
)

// evalStatement dispatches one statement node (spec.md §4.3 "Statements").
func (e *Evaluator) evalStatement(stmt ast.Statement) *diag.Diagnostic {
	switch s := stmt.(type) {
	case *ast.InlineHTMLStatement:
		// Inline markup is appended verbatim regardless of open/close-tag
		// state (spec.md §4.3/§9's documented quirk).
		e.output.WriteString(s.Text)
		return nil

	case *ast.EchoStatement:
		return e.evalEcho(s)

	case *ast.ExpressionStatement:
		_, d := e.evalExpr(s.Expr)
		return d

	case *ast.FunctionDecl:
		fn := object.DeclareFunction(s, e.evalConstExpr)
		return e.sc.DefineIdentifier(e.path, s.Pos(), s.Name, scopeFnIdentifier(fn))

	case *ast.ClassDecl:
		def, d := object.Declare(e.path, s, e.sc, e.evalConstExpr)
		if d != nil {
			return d
		}
		return e.sc.DefineObject(e.path, s.Pos(), s.Name, def)

	default:
		return nil
	}
}

func (e *Evaluator) evalEcho(s *ast.EchoStatement) *diag.Diagnostic {
	for _, expr := range s.Expressions {
		v, d := e.evalExpr(expr)
		if d != nil {
			return d
		}
		str, ok := value.Printable(v)
		if !ok {
			e.warnAt(expr, "%s to string conversion failed", v.TypeName())
			continue
		}
		e.output.WriteString(str)
	}
	return nil
}

func scopeFnIdentifier(fn *object.CallableDef) scope.Identifier {
	return scope.Identifier{Fn: fn}
}

// evalConstExpr evaluates an expression in the evaluator's current scope,
// used by the object package for constant values and property/parameter
// defaults (spec.md §4.4), which are evaluated at declaration time.
func (e *Evaluator) evalConstExpr(expr ast.Expression) (value.Value, *diag.Diagnostic) {
	return e.evalExpr(expr)
}
