package ast

import "github.com/scriptlang/phpwalk/internal/token"

// InlineHTMLStatement is verbatim markup text sitting outside "<?php ?>"
// tags. Per spec.md §4.3 / §9 it is appended to the output unconditionally,
// mirroring the reference implementation's open/close-tag bug.
type InlineHTMLStatement struct {
	Token token.Token
	Text  string
}

func (s *InlineHTMLStatement) Pos() token.Position { return s.Token.Pos }
func (*InlineHTMLStatement) statementNode()        {}

// EchoStatement evaluates each expression and appends its printable form.
type EchoStatement struct {
	Token       token.Token
	Expressions []Expression
}

func (s *EchoStatement) Pos() token.Position { return s.Token.Pos }
func (*EchoStatement) statementNode()        {}

// ExpressionStatement wraps an expression evaluated purely for effect
// (assignments, calls, new, etc.).
type ExpressionStatement struct {
	Token token.Token
	Expr  Expression
}

func (s *ExpressionStatement) Pos() token.Position { return s.Token.Pos }
func (*ExpressionStatement) statementNode()        {}

// TypeNode is the AST-level (unresolved) spelling of a TypeSpec (spec.md
// §3). Named types are resolved against the Scope's object table by the
// object subsystem at declaration time.
type TypeNode struct {
	// Name covers primitive keywords ("int", "string", ... "mixed",
	// "iterable", "callable", "array", "object"), "self"/"parent"/"static",
	// and class/trait names.
	Name         string
	Nullable     bool
	Union        []*TypeNode
	Intersection []*TypeNode
}

// Parameter is a single formal parameter of a function, method, or
// constructor (spec.md §3 CallableDef.Parameter).
type Parameter struct {
	Name          string
	Type          *TypeNode
	Default       Expression
	Variadic      bool
	ByReference   bool
	PromotedModif *Modifiers // non-nil => constructor promoted property
}

// Modifiers bundles the visibility/structural modifiers that can appear on
// a member declaration.
type Modifiers struct {
	Public    bool
	Private   bool
	Protected bool
	Static    bool
	Final     bool
	Abstract  bool
}

// FunctionDecl declares a free function (spec.md §4.3 "function" handling)
// or, when embedded in a ClassMember, a method.
type FunctionDecl struct {
	Token             token.Token
	Name              string
	Parameters        []*Parameter
	ReturnType        *TypeNode
	ReturnByReference bool
	Body              []Statement
	Modifiers         *Modifiers // nil for free functions
	IsAbstract        bool       // true for abstract-class / interface-style method stubs
}

func (s *FunctionDecl) Pos() token.Position { return s.Token.Pos }
func (*FunctionDecl) statementNode()        {}

// PropertyDecl declares a class/trait property.
type PropertyDecl struct {
	Token     token.Token
	Name      string
	Type      *TypeNode
	Default   Expression
	Modifiers *Modifiers
}

func (s *PropertyDecl) Pos() token.Position { return s.Token.Pos }

// ConstDecl declares a class constant.
type ConstDecl struct {
	Token     token.Token
	Name      string
	Value     Expression
	Modifiers *Modifiers
}

func (s *ConstDecl) Pos() token.Position { return s.Token.Pos }

// TraitAdaptation is one "use T[, U...] { ... }" adaptation clause.
type TraitAdaptation struct {
	// Kind is "alias", "visibility", or "precedence".
	Kind string

	SourceTrait string // T in "T::m" (may be empty if unambiguous)
	Method      string // m

	// Alias / visibility adaptation:
	NewName       string
	NewVisibility string // "public"/"private"/"protected", or "" if unchanged

	// Precedence adaptation ("insteadof"):
	InsteadOf []string
}

// TraitUseDecl is a single "use T1, T2 { adaptations }" clause inside a
// class or trait body.
type TraitUseDecl struct {
	Token       token.Token
	Traits      []string
	Adaptations []*TraitAdaptation
}

func (s *TraitUseDecl) Pos() token.Position { return s.Token.Pos }

// ClassKind distinguishes the three ObjectDef variants of spec.md §3.
type ClassKind int

const (
	KindClass ClassKind = iota
	KindAbstractClass
	KindTrait
)

// ClassDecl declares a class, abstract class, or trait.
type ClassDecl struct {
	Token    token.Token
	Kind     ClassKind
	Name     string
	Parent   string // extends target, "" if none
	Final    bool
	TraitUse []*TraitUseDecl

	Properties  []*PropertyDecl
	Constants   []*ConstDecl
	Methods     []*FunctionDecl // concrete and abstract methods (see FunctionDecl.IsAbstract)
	Constructor *FunctionDecl   // nil if none declared
}

func (s *ClassDecl) Pos() token.Position { return s.Token.Pos }
func (*ClassDecl) statementNode()        {}
