package lexer

import (
	"testing"

	"github.com/scriptlang/phpwalk/internal/token"
)

func TestNextTokenBasic(t *testing.T) {
	input := `<?php $x = 1 + 2; echo $x;`

	want := []struct {
		typ token.Type
		lit string
	}{
		{token.OPEN_TAG, "<?php"},
		{token.VARIABLE, "$x"},
		{token.ASSIGN, "="},
		{token.INT, "1"},
		{token.PLUS, "+"},
		{token.INT, "2"},
		{token.SEMICOLON, ";"},
		{token.ECHO, "echo"},
		{token.VARIABLE, "$x"},
		{token.SEMICOLON, ";"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, w := range want {
		tok := l.NextToken()
		if tok.Type != w.typ || tok.Literal != w.lit {
			t.Fatalf("token %d: got {%s %q}, want {%s %q}", i, tok.Type, tok.Literal, w.typ, w.lit)
		}
	}
}

func TestInlineHTMLOutsidePHPTags(t *testing.T) {
	l := New("Hello <?php echo 1; ?>\nWorld")

	tok := l.NextToken()
	if tok.Type != token.INLINE_HTML || tok.Literal != "Hello " {
		t.Fatalf("expected leading INLINE_HTML %q, got {%s %q}", "Hello ", tok.Type, tok.Literal)
	}
	if tok = l.NextToken(); tok.Type != token.OPEN_TAG {
		t.Fatalf("expected OPEN_TAG, got %s", tok.Type)
	}
	if tok = l.NextToken(); tok.Type != token.ECHO {
		t.Fatalf("expected ECHO, got %s", tok.Type)
	}
	if tok = l.NextToken(); tok.Type != token.INT || tok.Literal != "1" {
		t.Fatalf("expected INT 1, got {%s %q}", tok.Type, tok.Literal)
	}
	if tok = l.NextToken(); tok.Type != token.SEMICOLON {
		t.Fatalf("expected SEMICOLON, got %s", tok.Type)
	}
	if tok = l.NextToken(); tok.Type != token.CLOSE_TAG {
		t.Fatalf("expected CLOSE_TAG, got %s", tok.Type)
	}
	if tok = l.NextToken(); tok.Type != token.INLINE_HTML || tok.Literal != "World" {
		t.Fatalf("expected trailing INLINE_HTML %q (leading newline swallowed), got {%s %q}", "World", tok.Type, tok.Literal)
	}
}

func TestOperators(t *testing.T) {
	cases := []struct {
		src string
		typ token.Type
		lit string
	}{
		{"===", token.IDENTICAL, "==="},
		{"!==", token.NOT_IDENTICAL, "!=="},
		{"<=>", token.SPACESHIP, "<=>"},
		{"**=", token.POW_ASSIGN, "**="},
		{"??=", token.COALESCE_ASSIGN, "??="},
		{"=&", token.REF_ASSIGN, "=&"},
		{"->", token.ARROW, "->"},
		{"::", token.DOUBLE_COLON, "::"},
	}
	for _, c := range cases {
		l := New("<?php " + c.src)
		l.NextToken() // OPEN_TAG
		tok := l.NextToken()
		if tok.Type != c.typ || tok.Literal != c.lit {
			t.Errorf("lexing %q: got {%s %q}, want {%s %q}", c.src, tok.Type, tok.Literal, c.typ, c.lit)
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	l := New("<?php 42 3.14 1e10")
	l.NextToken() // OPEN_TAG
	if tok := l.NextToken(); tok.Type != token.INT || tok.Literal != "42" {
		t.Fatalf("got {%s %q}, want INT 42", tok.Type, tok.Literal)
	}
	if tok := l.NextToken(); tok.Type != token.FLOAT || tok.Literal != "3.14" {
		t.Fatalf("got {%s %q}, want FLOAT 3.14", tok.Type, tok.Literal)
	}
	if tok := l.NextToken(); tok.Type != token.FLOAT || tok.Literal != "1e10" {
		t.Fatalf("got {%s %q}, want FLOAT 1e10", tok.Type, tok.Literal)
	}
}

func TestVariableVariable(t *testing.T) {
	l := New("<?php $$name")
	l.NextToken() // OPEN_TAG
	tok := l.NextToken()
	if tok.Type != token.DOLLAR {
		t.Fatalf("expected DOLLAR prefix for variable-variable, got %s %q", tok.Type, tok.Literal)
	}
	tok = l.NextToken()
	if tok.Type != token.VARIABLE || tok.Literal != "$name" {
		t.Fatalf("got {%s %q}, want VARIABLE $name", tok.Type, tok.Literal)
	}
}

func TestCommentsSkipped(t *testing.T) {
	l := New("<?php // line comment\n# hash comment\n/* block */ $x")
	l.NextToken() // OPEN_TAG
	tok := l.NextToken()
	if tok.Type != token.VARIABLE || tok.Literal != "$x" {
		t.Fatalf("comments not skipped: got {%s %q}", tok.Type, tok.Literal)
	}
}
