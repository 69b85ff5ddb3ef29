// Package phpwalk is the embeddable facade over the lexer, parser, and
// evaluator, grounded on the teacher's pkg/dwscript engine facade and its
// internal/interp/runner.New wiring helper: a small New/Run surface that
// keeps callers from reaching into internal/* directly.
package phpwalk

import (
	"fmt"
	"strings"

	"github.com/scriptlang/phpwalk/internal/diag"
	"github.com/scriptlang/phpwalk/internal/evaluator"
	"github.com/scriptlang/phpwalk/internal/include"
	"github.com/scriptlang/phpwalk/internal/lexer"
	"github.com/scriptlang/phpwalk/internal/parser"
	"github.com/scriptlang/phpwalk/internal/token"
)

// Result is the outcome of running a program: its buffered output, any
// warning diagnostics in emission order, and the fatal diagnostic (if any)
// that stopped evaluation.
type Result struct {
	Output   string
	Warnings []*diag.Diagnostic
	Fatal    *diag.Diagnostic
	Died     bool
}

// Option configures an Engine the way the teacher's WithTypeCheck/WithOutput
// functional options configure its Engine.
type Option func(*Engine)

// WithIncluder overrides the include/require resolver, mainly so tests can
// serve include() targets from memory instead of the filesystem.
func WithIncluder(inc include.Includer) Option {
	return func(e *Engine) { e.includer = inc }
}

// Engine bundles a source path (used in diagnostic messages) with the
// options that configure every Run call against it.
type Engine struct {
	path     string
	includer include.Includer
}

// New builds an Engine. path is attributed in diagnostic messages as
// "in <path> on line <N>" (spec.md §6); pass "" for ad-hoc snippets.
func New(path string, opts ...Option) *Engine {
	e := &Engine{path: path}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ParseErrors reports syntax errors without evaluating, mirroring the
// "parse" CLI subcommand.
func (e *Engine) ParseErrors(source string) []string {
	p := parser.New(lexer.New(source))
	p.ParseProgram()
	return p.Errors()
}

// Run parses and evaluates source, returning its accumulated output and
// diagnostics. A non-empty ParseErrors result is folded into a single
// ParseError-level Fatal on the Result rather than evaluated.
func (e *Engine) Run(source string) Result {
	p := parser.New(lexer.New(source))
	prog := p.ParseProgram()

	if errs := p.Errors(); len(errs) > 0 {
		return Result{
			Fatal: diag.NewParseError(e.path, token.Position{}, "%s", strings.Join(errs, "; ")),
		}
	}

	ev := evaluator.New(evaluator.Config{Path: e.path, Includer: e.includer})
	fatal := ev.Run(prog)

	return Result{
		Output:   ev.Output(),
		Warnings: ev.Warnings(),
		Fatal:    fatal,
		Died:     ev.Died(),
	}
}

// Rendered formats output followed by every diagnostic the way the "run"
// CLI subcommand writes to stdout, for callers that just want one string.
func (r Result) Rendered() string {
	var b strings.Builder
	b.WriteString(r.Output)
	for _, w := range r.Warnings {
		fmt.Fprintln(&b, w.Format())
	}
	if r.Fatal != nil {
		fmt.Fprintln(&b, r.Fatal.Format())
	}
	return b.String()
}
