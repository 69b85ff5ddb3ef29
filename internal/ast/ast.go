// Package ast defines the statement and expression node types produced by
// the parser collaborator and walked by the evaluator. Per spec.md §1,
// the parser itself is an external collaborator; this package is the
// narrow contract between it and the runtime core.
package ast

import "github.com/scriptlang/phpwalk/internal/token"

// Node is the common interface for every AST node: it can report the
// source position it started at.
type Node interface {
	Pos() token.Position
}

// Statement is a top-level or body-level executable unit.
type Statement interface {
	Node
	statementNode()
}

// Expression is anything that evaluates to a Value.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root node: a flat sequence of statements, as produced by
// parsing an entire source file.
type Program struct {
	Statements []Statement
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) == 0 {
		return token.Position{}
	}
	return p.Statements[0].Pos()
}
