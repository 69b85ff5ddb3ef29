// Package parser implements a recursive-descent / Pratt expression parser
// producing the ast package's node types from a token.Token stream. It is
// the upstream collaborator spec.md treats as external (§1); its grammar
// coverage is scoped exactly to the statement/expression tables in
// SPEC_FULL.md §2.1.
package parser

import (
	"fmt"
	"strconv"

	"github.com/scriptlang/phpwalk/internal/ast"
	"github.com/scriptlang/phpwalk/internal/lexer"
	"github.com/scriptlang/phpwalk/internal/token"
)

// Operator precedence levels, lowest to highest.
const (
	_ int = iota
	lowest
	logicalOr
	logicalAnd
	coalescePrec
	bitOr
	bitXor
	bitAnd
	equality
	relational
	shift
	additive
	multiplicative
	instanceofPrec
	unary
	power
	callPrec
)

var precedences = map[token.Type]int{
	token.OR_OR:          logicalOr,
	token.AND_AND:        logicalAnd,
	token.COALESCE:       coalescePrec,
	token.PIPE:           bitOr,
	token.CARET:          bitXor,
	token.AMP:            bitAnd,
	token.EQ:             equality,
	token.NOT_EQ:         equality,
	token.IDENTICAL:      equality,
	token.NOT_IDENTICAL:  equality,
	token.SPACESHIP:      equality,
	token.LT:             relational,
	token.GT:             relational,
	token.LE:             relational,
	token.GE:             relational,
	token.SHL:            shift,
	token.SHR:            shift,
	token.PLUS:           additive,
	token.MINUS:          additive,
	token.DOT:            additive,
	token.STAR:           multiplicative,
	token.SLASH:          multiplicative,
	token.PERCENT:        multiplicative,
	token.INSTANCEOF:     instanceofPrec,
	token.POW:            power,
	token.ARROW:          callPrec,
	token.DOUBLE_COLON:   callPrec,
	token.LPAREN:         callPrec,
}

var compoundAssignOps = map[token.Type]bool{
	token.PLUS_ASSIGN: true, token.MINUS_ASSIGN: true, token.STAR_ASSIGN: true,
	token.SLASH_ASSIGN: true, token.PERCENT_ASSIGN: true, token.POW_ASSIGN: true,
	token.DOT_ASSIGN: true, token.AND_ASSIGN: true, token.OR_ASSIGN: true,
	token.XOR_ASSIGN: true, token.SHL_ASSIGN: true, token.SHR_ASSIGN: true,
	token.COALESCE_ASSIGN: true,
}

// Parser consumes a Lexer's token stream and builds an *ast.Program.
type Parser struct {
	l *lexer.Lexer

	cur  token.Token
	peek token.Token

	errs []string
}

// New creates a Parser reading from l and primes the two-token lookahead.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.next()
	p.next()
	return p
}

// Errors returns the accumulated parse errors, in encounter order.
func (p *Parser) Errors() []string { return p.errs }

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.errs = append(p.errs, fmt.Sprintf("line %d: %s", p.cur.Pos.Line, fmt.Sprintf(format, args...)))
}

func (p *Parser) expect(t token.Type) bool {
	if p.cur.Type == t {
		p.next()
		return true
	}
	p.errorf("expected %s, got %s (%q)", t, p.cur.Type, p.cur.Literal)
	return false
}

// ParseProgram parses the entire token stream into a Program.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for p.cur.Type != token.EOF {
		if stmt := p.parseStatement(); stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		} else {
			p.next()
		}
	}
	return prog
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Type {
	case token.INLINE_HTML:
		s := &ast.InlineHTMLStatement{Token: p.cur, Text: p.cur.Literal}
		p.next()
		return s
	case token.OPEN_TAG:
		p.next()
		return p.parseStatement()
	case token.CLOSE_TAG:
		p.next()
		return p.parseStatement()
	case token.ECHO:
		return p.parseEchoStatement()
	case token.FUNCTION:
		return p.parseFunctionDecl(nil)
	case token.CLASS:
		return p.parseClassDecl(ast.KindClass, false)
	case token.FINAL:
		p.next()
		return p.parseClassDecl(ast.KindClass, true)
	case token.ABSTRACT:
		p.next()
		if p.cur.Type == token.CLASS {
			return p.parseClassDecl(ast.KindAbstractClass, false)
		}
		p.errorf("expected 'class' after 'abstract', got %s", p.cur.Type)
		return nil
	case token.TRAIT:
		return p.parseClassDecl(ast.KindTrait, false)
	case token.SEMICOLON:
		p.next()
		return p.parseStatement()
	case token.EOF:
		return nil
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseEchoStatement() *ast.EchoStatement {
	tok := p.cur
	p.next()
	stmt := &ast.EchoStatement{Token: tok}
	stmt.Expressions = append(stmt.Expressions, p.parseExpression(lowest))
	for p.cur.Type == token.COMMA {
		p.next()
		stmt.Expressions = append(stmt.Expressions, p.parseExpression(lowest))
	}
	p.skipSemicolon()
	return stmt
}

func (p *Parser) parseExpressionStatement() *ast.ExpressionStatement {
	tok := p.cur
	expr := p.parseExpression(lowest)
	p.skipSemicolon()
	return &ast.ExpressionStatement{Token: tok, Expr: expr}
}

func (p *Parser) skipSemicolon() {
	if p.cur.Type == token.SEMICOLON {
		p.next()
	}
}

// --- declarations -----------------------------------------------------

func (p *Parser) parseModifiers() *ast.Modifiers {
	m := &ast.Modifiers{}
	found := false
	for {
		switch p.cur.Type {
		case token.PUBLIC:
			m.Public, found = true, true
		case token.PRIVATE:
			m.Private, found = true, true
		case token.PROTECTED:
			m.Protected, found = true, true
		case token.STATIC:
			m.Static, found = true, true
		case token.FINAL:
			m.Final, found = true, true
		case token.ABSTRACT:
			m.Abstract, found = true, true
		default:
			if !found {
				return nil
			}
			return m
		}
		p.next()
	}
}

func (p *Parser) parseTypeNode() *ast.TypeNode {
	nullable := false
	if p.cur.Type == token.QUESTION {
		nullable = true
		p.next()
	}
	first := p.parseTypeAtom()
	first.Nullable = nullable

	if p.cur.Type == token.PIPE {
		union := []*ast.TypeNode{first}
		for p.cur.Type == token.PIPE {
			p.next()
			union = append(union, p.parseTypeAtom())
		}
		return &ast.TypeNode{Union: union}
	}
	if p.cur.Type == token.AMP && isTypeStart(p.peek.Type) {
		inter := []*ast.TypeNode{first}
		for p.cur.Type == token.AMP {
			p.next()
			inter = append(inter, p.parseTypeAtom())
		}
		return &ast.TypeNode{Intersection: inter}
	}
	return first
}

func isTypeStart(t token.Type) bool {
	return t == token.IDENT || t == token.SELF || t == token.PARENT || t == token.STATIC || t == token.NULL
}

func (p *Parser) parseTypeAtom() *ast.TypeNode {
	name := p.cur.Literal
	if p.cur.Type == token.NULL {
		name = "null"
	}
	p.next()
	return &ast.TypeNode{Name: name}
}

func (p *Parser) parseParameterList() []*ast.Parameter {
	p.expect(token.LPAREN)
	var params []*ast.Parameter
	for p.cur.Type != token.RPAREN && p.cur.Type != token.EOF {
		params = append(params, p.parseParameter())
		if p.cur.Type == token.COMMA {
			p.next()
		} else if p.cur.Type != token.RPAREN {
			break
		}
	}
	p.expect(token.RPAREN)
	return params
}

func (p *Parser) parseParameter() *ast.Parameter {
	promoted := p.parseModifiers()

	param := &ast.Parameter{PromotedModif: promoted}

	if isTypeStart(p.cur.Type) || p.cur.Type == token.QUESTION {
		param.Type = p.parseTypeNode()
	}
	if p.cur.Type == token.AMP {
		param.ByReference = true
		p.next()
	}
	// Variadic parameters are not part of this grammar subset: the
	// argument-binding algorithm (spec.md §4.5) treats extra positional
	// arguments as ignored rather than collected, so there is no syntax
	// here that ever sets Parameter.Variadic.
	if p.cur.Type != token.VARIABLE {
		p.errorf("expected parameter variable, got %s", p.cur.Type)
		return param
	}
	param.Name = p.cur.Literal
	p.next()
	if p.cur.Type == token.ASSIGN {
		p.next()
		param.Default = p.parseExpression(lowest)
	}
	return param
}

func (p *Parser) parseFunctionDecl(mods *ast.Modifiers) *ast.FunctionDecl {
	tok := p.cur
	p.expect(token.FUNCTION)
	byRef := false
	if p.cur.Type == token.AMP {
		byRef = true
		p.next()
	}
	name := p.cur.Literal
	p.next()
	params := p.parseParameterList()

	var retType *ast.TypeNode
	if p.cur.Type == token.COLON {
		p.next()
		retType = p.parseTypeNode()
	}

	decl := &ast.FunctionDecl{
		Token: tok, Name: name, Parameters: params,
		ReturnType: retType, ReturnByReference: byRef, Modifiers: mods,
	}

	if mods != nil && mods.Abstract {
		decl.IsAbstract = true
		p.skipSemicolon()
		return decl
	}

	decl.Body = p.parseBlock()
	return decl
}

func (p *Parser) parseBlock() []Statement {
	p.expect(token.LBRACE)
	var stmts []Statement
	for p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
		if s := p.parseStatement(); s != nil {
			stmts = append(stmts, s)
		} else {
			p.next()
		}
	}
	p.expect(token.RBRACE)
	return stmts
}

// Statement is a local alias so parseBlock's return type matches ast.Statement
// without importing ast twice in signatures throughout this file.
type Statement = ast.Statement

func (p *Parser) parseClassDecl(kind ast.ClassKind, final bool) *ast.ClassDecl {
	tok := p.cur
	p.next() // consume 'class' / 'trait'
	decl := &ast.ClassDecl{Token: tok, Kind: kind, Final: final}
	decl.Name = p.cur.Literal
	p.next()

	if p.cur.Type == token.EXTENDS {
		p.next()
		decl.Parent = p.cur.Literal
		p.next()
	}
	if p.cur.Type == token.IMPLEMENTS {
		// Interfaces are not modelled; consume and discard the list.
		p.next()
		p.next()
		for p.cur.Type == token.COMMA {
			p.next()
			p.next()
		}
	}

	p.expect(token.LBRACE)
	for p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
		p.parseClassMember(decl)
	}
	p.expect(token.RBRACE)
	return decl
}

func (p *Parser) parseClassMember(decl *ast.ClassDecl) {
	if p.cur.Type == token.USE {
		decl.TraitUse = append(decl.TraitUse, p.parseTraitUse())
		return
	}

	mods := p.parseModifiers()

	switch p.cur.Type {
	case token.CONST:
		p.next()
		for {
			c := &ast.ConstDecl{Token: p.cur, Modifiers: mods}
			c.Name = p.cur.Literal
			p.next()
			p.expect(token.ASSIGN)
			c.Value = p.parseExpression(lowest)
			decl.Constants = append(decl.Constants, c)
			if p.cur.Type == token.COMMA {
				p.next()
				continue
			}
			break
		}
		p.skipSemicolon()
	case token.FUNCTION:
		fn := p.parseFunctionDecl(mods)
		if fn.Name == "__construct" {
			decl.Constructor = fn
		} else {
			decl.Methods = append(decl.Methods, fn)
		}
	default:
		// property declaration, optionally typed
		var typ *ast.TypeNode
		if isTypeStart(p.cur.Type) || p.cur.Type == token.QUESTION {
			typ = p.parseTypeNode()
		}
		for {
			prop := &ast.PropertyDecl{Token: p.cur, Type: typ, Modifiers: mods}
			if p.cur.Type != token.VARIABLE {
				p.errorf("expected property name, got %s", p.cur.Type)
				p.next()
				return
			}
			prop.Name = p.cur.Literal
			p.next()
			if p.cur.Type == token.ASSIGN {
				p.next()
				prop.Default = p.parseExpression(lowest)
			}
			decl.Properties = append(decl.Properties, prop)
			if p.cur.Type == token.COMMA {
				p.next()
				continue
			}
			break
		}
		p.skipSemicolon()
	}
}

func (p *Parser) parseTraitUse() *ast.TraitUseDecl {
	tok := p.cur
	p.next() // 'use'
	use := &ast.TraitUseDecl{Token: tok}
	use.Traits = append(use.Traits, p.cur.Literal)
	p.next()
	for p.cur.Type == token.COMMA {
		p.next()
		use.Traits = append(use.Traits, p.cur.Literal)
		p.next()
	}

	if p.cur.Type == token.LBRACE {
		p.next()
		for p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
			use.Adaptations = append(use.Adaptations, p.parseTraitAdaptation())
		}
		p.expect(token.RBRACE)
	} else {
		p.skipSemicolon()
	}
	return use
}

func (p *Parser) parseTraitAdaptation() *ast.TraitAdaptation {
	first := p.cur.Literal
	p.next()
	adapt := &ast.TraitAdaptation{}

	if p.cur.Type == token.DOUBLE_COLON {
		p.next()
		adapt.SourceTrait = first
		adapt.Method = p.cur.Literal
		p.next()
	} else {
		adapt.Method = first
	}

	switch p.cur.Type {
	case token.INSTEADOF:
		adapt.Kind = "precedence"
		p.next()
		adapt.InsteadOf = append(adapt.InsteadOf, p.cur.Literal)
		p.next()
		for p.cur.Type == token.COMMA {
			p.next()
			adapt.InsteadOf = append(adapt.InsteadOf, p.cur.Literal)
			p.next()
		}
	case token.AS:
		p.next()
		switch p.cur.Type {
		case token.PUBLIC, token.PRIVATE, token.PROTECTED:
			adapt.Kind = "visibility"
			adapt.NewVisibility = p.cur.Literal
			p.next()
			if p.cur.Type == token.IDENT {
				adapt.Kind = "alias"
				adapt.NewName = p.cur.Literal
				p.next()
			}
		default:
			adapt.Kind = "alias"
			adapt.NewName = p.cur.Literal
			p.next()
		}
	}
	p.skipSemicolon()
	return adapt
}

// --- expressions --------------------------------------------------------

func (p *Parser) parseExpression(minPrec int) ast.Expression {
	left := p.parsePrefix()
	if left == nil {
		return nil
	}

	for {
		if isAssignOp(p.cur.Type) && minPrec <= lowest {
			left = p.parseAssignLike(left)
			continue
		}
		pr, ok := precedences[p.cur.Type]
		if !ok || pr < minPrec {
			break
		}
		left = p.parseInfix(left, pr)
	}
	return left
}

func isAssignOp(t token.Type) bool {
	return t == token.ASSIGN || compoundAssignOps[t]
}

func (p *Parser) parseAssignLike(left ast.Expression) ast.Expression {
	op := p.cur.Type
	tok := p.cur
	p.next()
	if op == token.ASSIGN && p.cur.Type == token.AMP {
		p.next()
		value := p.parseExpression(lowest)
		return &ast.AssignExpr{BaseExpr: ast.NewBaseExpr(tok), Target: left, Value: value, ByRef: true}
	}
	value := p.parseExpression(lowest)
	if op == token.ASSIGN {
		return &ast.AssignExpr{BaseExpr: ast.NewBaseExpr(tok), Target: left, Value: value}
	}
	return &ast.CompoundAssignExpr{BaseExpr: ast.NewBaseExpr(tok), Op: op, Target: left, Value: value}
}

func (p *Parser) parsePrefix() ast.Expression {
	tok := p.cur
	switch tok.Type {
	case token.INT:
		p.next()
		v, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			p.errorf("invalid integer literal %q", tok.Literal)
		}
		return &ast.IntLiteral{BaseExpr: ast.NewBaseExpr(tok), Value: v}
	case token.FLOAT:
		p.next()
		v, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			p.errorf("invalid float literal %q", tok.Literal)
		}
		return &ast.FloatLiteral{BaseExpr: ast.NewBaseExpr(tok), Value: v}
	case token.STRING:
		p.next()
		return &ast.StringLiteral{BaseExpr: ast.NewBaseExpr(tok), Value: tok.Literal}
	case token.TRUE:
		p.next()
		return &ast.BoolLiteral{BaseExpr: ast.NewBaseExpr(tok), Value: true}
	case token.FALSE:
		p.next()
		return &ast.BoolLiteral{BaseExpr: ast.NewBaseExpr(tok), Value: false}
	case token.NULL:
		p.next()
		return &ast.NullLiteral{BaseExpr: ast.NewBaseExpr(tok)}
	case token.VARIABLE:
		p.next()
		return &ast.VariableExpr{BaseExpr: ast.NewBaseExpr(tok), Name: tok.Literal}
	case token.DOLLAR_LBRACE:
		p.next()
		inner := p.parseExpression(lowest)
		p.expect(token.RBRACE)
		return &ast.VarVarExpr{BaseExpr: ast.NewBaseExpr(tok), Inner: inner}
	case token.DOLLAR:
		p.next()
		inner := p.parseExpression(unary)
		return &ast.VarVarExpr{BaseExpr: ast.NewBaseExpr(tok), Inner: inner}
	case token.BANG, token.MINUS, token.PLUS, token.TILDE:
		p.next()
		right := p.parseExpression(unary)
		return &ast.UnaryExpr{BaseExpr: ast.NewBaseExpr(tok), Op: tok.Type, Right: right}
	case token.AT:
		p.next()
		inner := p.parseExpression(unary)
		return &ast.ErrorSuppressExpr{BaseExpr: ast.NewBaseExpr(tok), Inner: inner}
	case token.AMP:
		p.next()
		target := p.parseExpression(unary)
		return &ast.ReferenceExpr{BaseExpr: ast.NewBaseExpr(tok), Target: target}
	case token.LPAREN:
		p.next()
		inner := p.parseExpression(lowest)
		p.expect(token.RPAREN)
		return &ast.ParenExpr{BaseExpr: ast.NewBaseExpr(tok), Inner: inner}
	case token.EMPTY:
		p.next()
		p.expect(token.LPAREN)
		arg := p.parseExpression(lowest)
		p.expect(token.RPAREN)
		return &ast.EmptyExpr{BaseExpr: ast.NewBaseExpr(tok), Arg: arg}
	case token.ISSET:
		p.next()
		p.expect(token.LPAREN)
		args := []ast.Expression{p.parseExpression(lowest)}
		for p.cur.Type == token.COMMA {
			p.next()
			args = append(args, p.parseExpression(lowest))
		}
		p.expect(token.RPAREN)
		return &ast.IssetExpr{BaseExpr: ast.NewBaseExpr(tok), Args: args}
	case token.UNSET:
		p.next()
		p.expect(token.LPAREN)
		args := []ast.Expression{p.parseExpression(lowest)}
		for p.cur.Type == token.COMMA {
			p.next()
			args = append(args, p.parseExpression(lowest))
		}
		p.expect(token.RPAREN)
		return &ast.UnsetExpr{BaseExpr: ast.NewBaseExpr(tok), Args: args}
	case token.PRINT:
		p.next()
		hasParen := p.cur.Type == token.LPAREN
		if hasParen {
			p.next()
		}
		arg := p.parseExpression(lowest)
		if hasParen {
			p.expect(token.RPAREN)
		}
		return &ast.PrintExpr{BaseExpr: ast.NewBaseExpr(tok), Arg: arg}
	case token.DIE, token.EXIT:
		p.next()
		var arg ast.Expression
		if p.cur.Type == token.LPAREN {
			p.next()
			if p.cur.Type != token.RPAREN {
				arg = p.parseExpression(lowest)
			}
			p.expect(token.RPAREN)
		}
		return &ast.DieExpr{BaseExpr: ast.NewBaseExpr(tok), Arg: arg}
	case token.INCLUDE, token.INCLUDE_ONCE, token.REQUIRE, token.REQUIRE_ONCE:
		p.next()
		kind := map[token.Type]ast.IncludeKind{
			token.INCLUDE: ast.Include, token.INCLUDE_ONCE: ast.IncludeOnce,
			token.REQUIRE: ast.Require, token.REQUIRE_ONCE: ast.RequireOnce,
		}[tok.Type]
		path := p.parseExpression(lowest)
		return &ast.IncludeExpr{BaseExpr: ast.NewBaseExpr(tok), Kind: kind, Path: path}
	case token.NEW:
		return p.parseNewExpr()
	case token.SELF, token.PARENT, token.STATIC, token.IDENT:
		return p.parseIdentOrCall()
	}

	p.errorf("unexpected token %s (%q) in expression", tok.Type, tok.Literal)
	p.next()
	return nil
}

func (p *Parser) parseIdentOrCall() ast.Expression {
	tok := p.cur
	name := tok.Literal
	p.next()

	if p.cur.Type == token.DOUBLE_COLON {
		p.next()
		member := p.cur.Literal
		p.next()
		if p.cur.Type == token.LPAREN {
			args := p.parseArgs()
			return &ast.StaticAccessExpr{BaseExpr: ast.NewBaseExpr(tok), ClassName: name, Member: member, IsCall: true, Args: args}
		}
		return &ast.StaticAccessExpr{BaseExpr: ast.NewBaseExpr(tok), ClassName: name, Member: member}
	}

	if p.cur.Type == token.LPAREN {
		args := p.parseArgs()
		return &ast.CallExpr{BaseExpr: ast.NewBaseExpr(tok), Callee: &ast.IdentifierExpr{BaseExpr: ast.NewBaseExpr(tok), Name: name}, Args: args}
	}

	return &ast.IdentifierExpr{BaseExpr: ast.NewBaseExpr(tok), Name: name}
}

func (p *Parser) parseNewExpr() ast.Expression {
	tok := p.cur
	p.next()
	var classExpr ast.Expression
	if p.cur.Type == token.IDENT || p.cur.Type == token.STATIC || p.cur.Type == token.SELF || p.cur.Type == token.PARENT {
		classExpr = &ast.IdentifierExpr{BaseExpr: ast.NewBaseExpr(p.cur), Name: p.cur.Literal}
		p.next()
	} else if p.cur.Type == token.VARIABLE {
		classExpr = &ast.VariableExpr{BaseExpr: ast.NewBaseExpr(p.cur), Name: p.cur.Literal}
		p.next()
	} else {
		p.errorf("expected class name after 'new', got %s", p.cur.Type)
	}
	var args []ast.Argument
	if p.cur.Type == token.LPAREN {
		args = p.parseArgs()
	}
	return &ast.NewExpr{BaseExpr: ast.NewBaseExpr(tok), ClassExpr: classExpr, Args: args}
}

func (p *Parser) parseArgs() []ast.Argument {
	p.expect(token.LPAREN)
	var args []ast.Argument
	for p.cur.Type != token.RPAREN && p.cur.Type != token.EOF {
		args = append(args, p.parseArg())
		if p.cur.Type == token.COMMA {
			p.next()
		}
	}
	p.expect(token.RPAREN)
	return args
}

func (p *Parser) parseArg() ast.Argument {
	if p.cur.Type == token.IDENT && p.peek.Type == token.COLON {
		name := p.cur.Literal
		p.next()
		p.next()
		return ast.Argument{Name: name, Value: p.parseExpression(lowest)}
	}
	return ast.Argument{Value: p.parseExpression(lowest)}
}

func (p *Parser) parseInfix(left ast.Expression, prec int) ast.Expression {
	tok := p.cur

	switch tok.Type {
	case token.ARROW:
		p.next()
		name := p.cur.Literal
		p.next()
		if p.cur.Type == token.LPAREN {
			args := p.parseArgs()
			return &ast.MethodCallExpr{BaseExpr: ast.NewBaseExpr(tok), Object: left, Method: name, Args: args}
		}
		return &ast.PropertyAccessExpr{BaseExpr: ast.NewBaseExpr(tok), Object: left, Property: name}
	case token.INSTANCEOF:
		p.next()
		right := p.parseExpression(instanceofPrec + 1)
		return &ast.InstanceofExpr{BaseExpr: ast.NewBaseExpr(tok), Left: left, Right: right}
	case token.COALESCE:
		p.next()
		right := p.parseExpression(coalescePrec) // right-associative
		return &ast.CoalesceExpr{BaseExpr: ast.NewBaseExpr(tok), Left: left, Right: right}
	case token.POW:
		p.next()
		right := p.parseExpression(power) // right-associative
		return &ast.BinaryExpr{BaseExpr: ast.NewBaseExpr(tok), Op: tok.Type, Left: left, Right: right}
	default:
		p.next()
		right := p.parseExpression(prec + 1)
		return &ast.BinaryExpr{BaseExpr: ast.NewBaseExpr(tok), Op: tok.Type, Left: left, Right: right}
	}
}
