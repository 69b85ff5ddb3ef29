package evaluator

import (
	"testing"

	"github.com/scriptlang/phpwalk/internal/ast"
	"github.com/scriptlang/phpwalk/internal/lexer"
	"github.com/scriptlang/phpwalk/internal/parser"
)

// parserProgram parses src, failing the test on parse errors.
func parserProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := parser.New(lexer.New(src))
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, errs)
	}
	return prog
}

// run parses and evaluates src, failing the test on parse errors.
func run(t *testing.T, src string) *Evaluator {
	t.Helper()
	prog := parserProgram(t, src)
	ev := New(Config{Path: "test.php"})
	ev.Run(prog)
	return ev
}

func TestEchoOutputsPrintableValues(t *testing.T) {
	ev := run(t, `<?php echo "hello ", 1, " ", 2.5;`)
	if got := ev.Output(); got != "hello 1 2.5" {
		t.Fatalf("Output() = %q", got)
	}
}

func TestVariableAssignmentAndArithmetic(t *testing.T) {
	ev := run(t, `<?php $a = 1; $b = 2; echo $a + $b;`)
	if got := ev.Output(); got != "3" {
		t.Fatalf("Output() = %q, want 3", got)
	}
}

func TestUndefinedVariableWarns(t *testing.T) {
	ev := run(t, `<?php echo $undefined;`)
	if len(ev.Warnings()) != 1 {
		t.Fatalf("expected 1 warning, got %d: %v", len(ev.Warnings()), ev.Warnings())
	}
}

func TestReferenceAssignmentShares(t *testing.T) {
	ev := run(t, `<?php $a = 1; $b = &$a; $b = 5; echo $a;`)
	if got := ev.Output(); got != "5" {
		t.Fatalf("Output() = %q, want 5 (reference semantics)", got)
	}
}

func TestCompoundAssignUndefinedIsFatal(t *testing.T) {
	prog := parserProgram(t, `<?php $a += 1;`)
	ev := New(Config{Path: "test.php"})
	if fatal := ev.Run(prog); fatal == nil {
		t.Fatal("expected a fatal diagnostic for compound assignment to an undefined variable")
	}
}

func TestDivisionByZeroIsFatal(t *testing.T) {
	p := parser.New(lexer.New(`<?php echo 1 / 0;`))
	prog := p.ParseProgram()
	ev := New(Config{Path: "test.php"})
	fatal := ev.Run(prog)
	if fatal == nil {
		t.Fatal("expected a fatal diagnostic for division by zero")
	}
}

// Functions always yield null in this subset: there is no explicit
// "return" statement (spec.md §4.3), so calling a function only runs its
// body for side effects.
func TestFunctionCallAlwaysYieldsNull(t *testing.T) {
	ev := run(t, `<?php
function greet() { echo "hi"; }
$r = greet();
echo isset($r);
`)
	if got := ev.Output(); got != "hi" {
		t.Fatalf("Output() = %q, want hi (isset on a null-valued $r prints nothing)", got)
	}
}

func TestIssetAndUnset(t *testing.T) {
	ev := run(t, `<?php $a = 1; echo isset($a); unset($a); echo isset($a);`)
	if got := ev.Output(); got != "1" {
		t.Fatalf("Output() = %q, want \"1\" (true before unset, false after prints nothing)", got)
	}
}

func TestCoalesceOperator(t *testing.T) {
	ev := run(t, `<?php echo $missing ?? "default";`)
	if got := ev.Output(); got != "default" {
		t.Fatalf("Output() = %q, want default", got)
	}
}

func TestErrorSuppressionSwallowsWarning(t *testing.T) {
	ev := run(t, `<?php $x = @$undefined; echo "ok";`)
	if len(ev.Warnings()) != 0 {
		t.Fatalf("expected suppressed warning, got %v", ev.Warnings())
	}
	if ev.Output() != "ok" {
		t.Fatalf("Output() = %q, want ok", ev.Output())
	}
}

func TestDieStopsExecution(t *testing.T) {
	ev := run(t, `<?php echo "a"; die("b"); echo "c";`)
	if got := ev.Output(); got != "ab" {
		t.Fatalf("Output() = %q, want ab (statements after die must not run)", got)
	}
	if !ev.Died() {
		t.Error("Died() should be true after a die expression")
	}
}
