package evaluator

import (
	"github.com/scriptlang/phpwalk/internal/ast"
	"github.com/scriptlang/phpwalk/internal/diag"
	"github.com/scriptlang/phpwalk/internal/lexer"
	"github.com/scriptlang/phpwalk/internal/parser"
	"github.com/scriptlang/phpwalk/internal/value"
)

// evalInclude implements spec.md §4.6: evaluate the path expression,
// canonicalize it, and (for a file not yet loaded) parse and evaluate it
// in a child Evaluator that shares the parent's scope, splicing the
// child's output and warnings into the parent in append order.
func (e *Evaluator) evalInclude(x *ast.IncludeExpr) (value.Value, *diag.Diagnostic) {
	pathVal, d := e.evalExpr(x.Path)
	if d != nil {
		return value.Value{}, d
	}
	pathStr, ok := value.Printable(pathVal)
	if !ok {
		e.warnAt(x, "%s to string conversion failed", pathVal.TypeName())
		return value.Null(), nil
	}

	isRequire := x.Kind == ast.Require || x.Kind == ast.RequireOnce
	isOnce := x.Kind == ast.IncludeOnce || x.Kind == ast.RequireOnce

	canonical := e.includer.Canonicalize(pathStr)
	if isOnce && e.includedOnce[canonical] {
		return value.Bool(true), nil
	}

	src, err := e.includer.Read(pathStr)
	if err != nil {
		if isRequire {
			return value.Value{}, diag.NewFatal(e.path, x.Pos(), diag.ErrMsgRequireNotFound, pathStr)
		}
		e.warnAt(x, diag.ErrMsgIncludeNotFound, pathStr)
		return value.Null(), nil
	}

	l := lexer.New(src)
	p := parser.New(l)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		msg := errs[0]
		if isRequire {
			return value.Value{}, diag.NewFatal(e.path, x.Pos(), "Parse error in %s: %s", pathStr, msg)
		}
		e.warnAt(x, "Parse error in %s: %s", pathStr, msg)
		return value.Null(), nil
	}

	// The child evaluator shares the parent's scope (spec.md §4.6) so
	// declarations and variable mutations in the included file are visible
	// to the includer, but owns its own output/warnings/die state until
	// they are merged back.
	child := &Evaluator{
		path:         canonical,
		includer:     e.includer,
		sc:           e.sc,
		includedOnce: e.includedOnce,
	}

	fatal := child.Run(prog)

	e.output.WriteString(child.Output())
	e.warns = append(e.warns, child.Warnings()...)
	if child.Died() {
		e.die = true
	}

	if fatal != nil {
		if isRequire {
			return value.Value{}, fatal
		}
		// include (not require): the child's fatal error is reported but
		// does not abort the parent (spec.md §4.6).
		e.warns = append(e.warns, diag.NewRaw(fatal.Format()))
		return value.Null(), nil
	}

	if isOnce {
		e.includedOnce[canonical] = true
	}
	return value.Bool(true), nil
}
