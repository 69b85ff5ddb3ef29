// Package lexer tokenizes phpwalk source text. It is the upstream
// collaborator spec.md treats as external; its only contract with the
// rest of the module is the token.Token stream it produces.
package lexer

import (
	"strings"

	"github.com/scriptlang/phpwalk/internal/token"
)

// Lexer scans a byte-oriented source buffer into tokens. Strings in the
// modelled language are byte sequences, not Unicode text (spec.md §3), so
// the lexer itself also operates byte-at-a-time rather than rune-at-a-time;
// column numbers in diagnostics count bytes as well.
type Lexer struct {
	input        string
	pos          int  // current position (points to ch)
	readPos      int  // next position to read
	ch           byte // current byte under examination
	line, column int

	// inPHP tracks whether we are inside a "<?php ... ?>" block. Outside
	// of it, everything is INLINE_HTML.
	inPHP bool
}

// New creates a Lexer positioned before the first byte of input.
func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	if l.ch == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}
	l.pos = l.readPos
	l.readPos++
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) peekChar2() byte {
	if l.readPos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.readPos+1]
}

func (l *Lexer) pos2() token.Position {
	return token.Position{Line: l.line, Column: l.column, Offset: l.pos}
}

// NextToken returns the next token in the stream, advancing the lexer.
func (l *Lexer) NextToken() token.Token {
	if !l.inPHP {
		return l.scanInlineHTML()
	}

	l.skipWhitespaceAndComments()

	pos := l.pos2()

	if l.ch == 0 {
		return token.Token{Type: token.EOF, Literal: "", Pos: pos}
	}

	if l.ch == '?' && l.peekChar() == '>' {
		l.readChar()
		l.readChar()
		l.inPHP = false
		// A close tag swallows one immediately-following newline, matching
		// the reference language's treatment of "?>\n".
		if l.ch == '\n' {
			l.readChar()
		}
		return token.Token{Type: token.CLOSE_TAG, Literal: "?>", Pos: pos}
	}

	switch {
	case l.ch == '$':
		return l.scanVariable(pos)
	case isLetter(l.ch):
		return l.scanIdentOrKeyword(pos)
	case isDigit(l.ch):
		return l.scanNumber(pos)
	case l.ch == '\'' || l.ch == '"':
		return l.scanString(pos)
	}

	tok := l.scanOperator(pos)
	l.readChar()
	return tok
}

func (l *Lexer) scanInlineHTML() token.Token {
	pos := l.pos2()
	if l.ch == 0 {
		return token.Token{Type: token.EOF, Literal: "", Pos: pos}
	}

	start := l.pos
	for l.ch != 0 {
		if l.ch == '<' && l.peekChar() == '?' {
			break
		}
		l.readChar()
	}
	html := l.input[start:l.pos]

	if l.ch == '<' && l.peekChar() == '?' {
		if html != "" {
			// Leave the open tag for the next call, which reports it as
			// its own OPEN_TAG token.
			return token.Token{Type: token.INLINE_HTML, Literal: html, Pos: pos}
		}
		// Consume "<?php" or bare "<?"; both open a PHP region.
		openPos := l.pos2()
		l.readChar() // <
		l.readChar() // ?
		if strings.HasPrefix(strings.ToLower(l.input[l.pos:]), "php") {
			for i := 0; i < 3; i++ {
				l.readChar()
			}
		}
		l.inPHP = true
		return token.Token{Type: token.OPEN_TAG, Literal: "<?php", Pos: openPos}
	}

	return token.Token{Type: token.INLINE_HTML, Literal: html, Pos: pos}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		case l.ch == '#' && l.peekChar() != '[':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		case l.ch == '/' && l.peekChar() == '*':
			l.readChar()
			l.readChar()
			for !(l.ch == '*' && l.peekChar() == '/') && l.ch != 0 {
				l.readChar()
			}
			if l.ch != 0 {
				l.readChar()
				l.readChar()
			}
		default:
			return
		}
	}
}

// scanVariable handles '$'. A plain name ("$foo") yields VARIABLE; a bare
// '$' followed by another '$' or by '{' is a variable-variable prefix
// ("$$x" / "${expr}") and yields DOLLAR / DOLLAR_LBRACE instead, letting
// the parser recurse into the inner expression (spec.md §4.3 Variable row).
func (l *Lexer) scanVariable(pos token.Position) token.Token {
	l.readChar() // consume '$'
	if l.ch == '$' {
		return token.Token{Type: token.DOLLAR, Literal: "$", Pos: pos}
	}
	if l.ch == '{' {
		l.readChar()
		return token.Token{Type: token.DOLLAR_LBRACE, Literal: "${", Pos: pos}
	}
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	name := l.input[start:l.pos]
	return token.Token{Type: token.VARIABLE, Literal: "$" + name, Pos: pos}
}

func (l *Lexer) scanIdentOrKeyword(pos token.Position) token.Token {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	lit := l.input[start:l.pos]
	return token.Token{Type: token.LookupIdent(lit), Literal: lit, Pos: pos}
}

func (l *Lexer) scanNumber(pos token.Position) token.Token {
	start := l.pos
	isFloat := false
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		isFloat = true
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		if isDigit(l.peekChar()) || ((l.peekChar() == '+' || l.peekChar() == '-') && isDigit(l.peekChar2())) {
			isFloat = true
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}
	lit := l.input[start:l.pos]
	typ := token.INT
	if isFloat {
		typ = token.FLOAT
	}
	return token.Token{Type: typ, Literal: lit, Pos: pos}
}

// scanString scans a single- or double-quoted string literal. Escape
// processing is minimal: backslash-quote and backslash-backslash only,
// consistent with the byte-oriented string model of spec.md §3 (full
// interpolation/escape-sequence handling is parser-collaborator territory
// and out of scope here).
func (l *Lexer) scanString(pos token.Position) token.Token {
	quote := l.ch
	l.readChar()
	var sb strings.Builder
	for l.ch != quote && l.ch != 0 {
		if l.ch == '\\' && (l.peekChar() == quote || l.peekChar() == '\\') {
			l.readChar()
			sb.WriteByte(l.ch)
			l.readChar()
			continue
		}
		sb.WriteByte(l.ch)
		l.readChar()
	}
	if l.ch == quote {
		l.readChar()
	}
	return token.Token{Type: token.STRING, Literal: sb.String(), Pos: pos}
}

func (l *Lexer) scanOperator(pos token.Position) token.Token {
	ch := l.ch
	peek := l.peekChar()

	three := func(c2, c3 byte, t token.Type, lit string) (token.Token, bool) {
		if peek == c2 && l.peekChar2() == c3 {
			l.readChar()
			l.readChar()
			return token.Token{Type: t, Literal: lit, Pos: pos}, true
		}
		return token.Token{}, false
	}

	switch ch {
	case '=':
		if tok, ok := three('=', '=', token.IDENTICAL, "==="); ok {
			return tok
		}
		if peek == '=' {
			l.readChar()
			return token.Token{Type: token.EQ, Literal: "==", Pos: pos}
		}
		if peek == '&' {
			l.readChar()
			return token.Token{Type: token.REF_ASSIGN, Literal: "=&", Pos: pos}
		}
		if peek == '>' {
			l.readChar()
			return token.Token{Type: token.FAT_ARROW, Literal: "=>", Pos: pos}
		}
		return token.Token{Type: token.ASSIGN, Literal: "=", Pos: pos}
	case '!':
		if tok, ok := three('=', '=', token.NOT_IDENTICAL, "!=="); ok {
			return tok
		}
		if peek == '=' {
			l.readChar()
			return token.Token{Type: token.NOT_EQ, Literal: "!=", Pos: pos}
		}
		return token.Token{Type: token.BANG, Literal: "!", Pos: pos}
	case '+':
		if peek == '=' {
			l.readChar()
			return token.Token{Type: token.PLUS_ASSIGN, Literal: "+=", Pos: pos}
		}
		return token.Token{Type: token.PLUS, Literal: "+", Pos: pos}
	case '-':
		if peek == '=' {
			l.readChar()
			return token.Token{Type: token.MINUS_ASSIGN, Literal: "-=", Pos: pos}
		}
		if peek == '>' {
			l.readChar()
			return token.Token{Type: token.ARROW, Literal: "->", Pos: pos}
		}
		return token.Token{Type: token.MINUS, Literal: "-", Pos: pos}
	case '*':
		if peek == '*' {
			if l.peekChar2() == '=' {
				l.readChar()
				l.readChar()
				return token.Token{Type: token.POW_ASSIGN, Literal: "**=", Pos: pos}
			}
			l.readChar()
			return token.Token{Type: token.POW, Literal: "**", Pos: pos}
		}
		if peek == '=' {
			l.readChar()
			return token.Token{Type: token.STAR_ASSIGN, Literal: "*=", Pos: pos}
		}
		return token.Token{Type: token.STAR, Literal: "*", Pos: pos}
	case '/':
		if peek == '=' {
			l.readChar()
			return token.Token{Type: token.SLASH_ASSIGN, Literal: "/=", Pos: pos}
		}
		return token.Token{Type: token.SLASH, Literal: "/", Pos: pos}
	case '%':
		if peek == '=' {
			l.readChar()
			return token.Token{Type: token.PERCENT_ASSIGN, Literal: "%=", Pos: pos}
		}
		return token.Token{Type: token.PERCENT, Literal: "%", Pos: pos}
	case '.':
		if peek == '=' {
			l.readChar()
			return token.Token{Type: token.DOT_ASSIGN, Literal: ".=", Pos: pos}
		}
		return token.Token{Type: token.DOT, Literal: ".", Pos: pos}
	case '<':
		if tok, ok := three('=', '>', token.SPACESHIP, "<=>"); ok {
			return tok
		}
		if peek == '=' {
			l.readChar()
			return token.Token{Type: token.LE, Literal: "<=", Pos: pos}
		}
		if peek == '<' {
			if l.peekChar2() == '=' {
				l.readChar()
				l.readChar()
				return token.Token{Type: token.SHL_ASSIGN, Literal: "<<=", Pos: pos}
			}
			l.readChar()
			return token.Token{Type: token.SHL, Literal: "<<", Pos: pos}
		}
		return token.Token{Type: token.LT, Literal: "<", Pos: pos}
	case '>':
		if peek == '=' {
			l.readChar()
			return token.Token{Type: token.GE, Literal: ">=", Pos: pos}
		}
		if peek == '>' {
			if l.peekChar2() == '=' {
				l.readChar()
				l.readChar()
				return token.Token{Type: token.SHR_ASSIGN, Literal: ">>=", Pos: pos}
			}
			l.readChar()
			return token.Token{Type: token.SHR, Literal: ">>", Pos: pos}
		}
		return token.Token{Type: token.GT, Literal: ">", Pos: pos}
	case '&':
		if peek == '&' {
			l.readChar()
			return token.Token{Type: token.AND_AND, Literal: "&&", Pos: pos}
		}
		if peek == '=' {
			l.readChar()
			return token.Token{Type: token.AND_ASSIGN, Literal: "&=", Pos: pos}
		}
		return token.Token{Type: token.AMP, Literal: "&", Pos: pos}
	case '|':
		if peek == '|' {
			l.readChar()
			return token.Token{Type: token.OR_OR, Literal: "||", Pos: pos}
		}
		if peek == '=' {
			l.readChar()
			return token.Token{Type: token.OR_ASSIGN, Literal: "|=", Pos: pos}
		}
		return token.Token{Type: token.PIPE, Literal: "|", Pos: pos}
	case '^':
		if peek == '=' {
			l.readChar()
			return token.Token{Type: token.XOR_ASSIGN, Literal: "^=", Pos: pos}
		}
		return token.Token{Type: token.CARET, Literal: "^", Pos: pos}
	case '~':
		return token.Token{Type: token.TILDE, Literal: "~", Pos: pos}
	case '?':
		if peek == '?' {
			if l.peekChar2() == '=' {
				l.readChar()
				l.readChar()
				return token.Token{Type: token.COALESCE_ASSIGN, Literal: "??=", Pos: pos}
			}
			l.readChar()
			return token.Token{Type: token.COALESCE, Literal: "??", Pos: pos}
		}
		return token.Token{Type: token.QUESTION, Literal: "?", Pos: pos}
	case ':':
		if peek == ':' {
			l.readChar()
			return token.Token{Type: token.DOUBLE_COLON, Literal: "::", Pos: pos}
		}
		return token.Token{Type: token.COLON, Literal: ":", Pos: pos}
	case ',':
		return token.Token{Type: token.COMMA, Literal: ",", Pos: pos}
	case ';':
		return token.Token{Type: token.SEMICOLON, Literal: ";", Pos: pos}
	case '(':
		return token.Token{Type: token.LPAREN, Literal: "(", Pos: pos}
	case ')':
		return token.Token{Type: token.RPAREN, Literal: ")", Pos: pos}
	case '{':
		return token.Token{Type: token.LBRACE, Literal: "{", Pos: pos}
	case '}':
		return token.Token{Type: token.RBRACE, Literal: "}", Pos: pos}
	case '[':
		return token.Token{Type: token.LBRACKET, Literal: "[", Pos: pos}
	case ']':
		return token.Token{Type: token.RBRACKET, Literal: "]", Pos: pos}
	case '@':
		return token.Token{Type: token.AT, Literal: "@", Pos: pos}
	}

	return token.Token{Type: token.ILLEGAL, Literal: string(ch), Pos: pos}
}

func isLetter(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch >= 0x80
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
