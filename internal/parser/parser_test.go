package parser

import (
	"testing"

	"github.com/scriptlang/phpwalk/internal/ast"
	"github.com/scriptlang/phpwalk/internal/lexer"
	"github.com/scriptlang/phpwalk/internal/token"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(lexer.New(src))
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, errs)
	}
	return prog
}

func TestParseEchoStatement(t *testing.T) {
	prog := parseProgram(t, `<?php echo "hi", 1;`)
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	echo, ok := prog.Statements[0].(*ast.EchoStatement)
	if !ok {
		t.Fatalf("expected *ast.EchoStatement, got %T", prog.Statements[0])
	}
	if len(echo.Expressions) != 2 {
		t.Fatalf("expected 2 echo expressions, got %d", len(echo.Expressions))
	}
}

func TestParseAssignmentAndBinary(t *testing.T) {
	prog := parseProgram(t, `<?php $x = 1 + 2 * 3;`)
	stmt := prog.Statements[0].(*ast.ExpressionStatement)
	assign, ok := stmt.Expr.(*ast.AssignExpr)
	if !ok {
		t.Fatalf("expected *ast.AssignExpr, got %T", stmt.Expr)
	}
	v, ok := assign.Target.(*ast.VariableExpr)
	if !ok || v.Name != "$x" {
		t.Fatalf("expected target $x, got %#v", assign.Target)
	}
	bin, ok := assign.Value.(*ast.BinaryExpr)
	if !ok || bin.Op != token.PLUS {
		t.Fatalf("expected top-level '+' binary, got %#v", assign.Value)
	}
	// precedence: "*" should bind tighter, so the right side of "+" is itself a BinaryExpr("*").
	rhs, ok := bin.Right.(*ast.BinaryExpr)
	if !ok || rhs.Op != token.STAR {
		t.Fatalf("expected '*' to bind tighter than '+', got rhs=%#v", bin.Right)
	}
}

func TestParseFunctionDecl(t *testing.T) {
	prog := parseProgram(t, `<?php function add(int $a, int $b = 0) { echo $a; }`)
	fn, ok := prog.Statements[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("expected *ast.FunctionDecl, got %T", prog.Statements[0])
	}
	if fn.Name != "add" || len(fn.Parameters) != 2 {
		t.Fatalf("got name=%q params=%d, want add/2", fn.Name, len(fn.Parameters))
	}
	if fn.Parameters[1].Default == nil {
		t.Error("second parameter should carry a default expression")
	}
}

func TestParseClassDecl(t *testing.T) {
	prog := parseProgram(t, `<?php class Point { public int $x; public function __construct(int $x) { $this->x = $x; } }`)
	cls, ok := prog.Statements[0].(*ast.ClassDecl)
	if !ok {
		t.Fatalf("expected *ast.ClassDecl, got %T", prog.Statements[0])
	}
	if cls.Name != "Point" {
		t.Fatalf("got class name %q, want Point", cls.Name)
	}
}

func TestParseNewAndMethodCall(t *testing.T) {
	prog := parseProgram(t, `<?php $p = new Point(1, 2); $p->move(3);`)
	if len(prog.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(prog.Statements))
	}
	assign := prog.Statements[0].(*ast.ExpressionStatement).Expr.(*ast.AssignExpr)
	newExpr, ok := assign.Value.(*ast.NewExpr)
	if !ok {
		t.Fatalf("expected *ast.NewExpr, got %T", assign.Value)
	}
	if len(newExpr.Args) != 2 {
		t.Fatalf("expected 2 constructor args, got %d", len(newExpr.Args))
	}

	callStmt := prog.Statements[1].(*ast.ExpressionStatement)
	if _, ok := callStmt.Expr.(*ast.MethodCallExpr); !ok {
		t.Fatalf("expected *ast.MethodCallExpr, got %T", callStmt.Expr)
	}
}

func TestParseErrorOnMalformedFunctionDecl(t *testing.T) {
	p := New(lexer.New(`<?php function add int $a) { }`))
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatal("expected a parse error for a function decl missing its '('")
	}
}
