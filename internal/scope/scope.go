// Package scope implements the Scope component of spec.md §3/§4.2: the
// per-activation container of variable cells, declared identifiers
// (constants/functions), and declared objects (classes/traits). Grounded
// on the reference implementation's evaluator/src/scope.rs Scope struct
// (vars/identifiers/objects maps) and on the teacher's dependency-inversion
// idiom (internal/interp/runtime/refcount.go's RefCountManager /
// DestructorCallback): scope defines marker interfaces that the object
// package implements, so scope never imports object and no import cycle
// forms between scope, object, and evaluator.
package scope

import (
	"github.com/scriptlang/phpwalk/internal/diag"
	"github.com/scriptlang/phpwalk/internal/token"
	"github.com/scriptlang/phpwalk/internal/value"
)

// Callable is the marker the object package's function/method definitions
// satisfy so Scope can hold them as identifiers without importing object.
type Callable interface {
	CallableName() string
}

// ObjectDef is the marker the object package's class/trait definitions
// satisfy so Scope can hold them in its object table without importing
// object.
type ObjectDef interface {
	DefName() string
	DefKind() string // "class", "abstract class", or "trait"
}

// Identifier is a declared constant or function binding (spec.md §3
// Scope.identifiers). Exactly one of Const/Fn is set.
type Identifier struct {
	IsConst bool
	Const   value.Value
	Fn      Callable
}

// Scope is one activation record: spec.md §4.2's vars/identifiers/objects
// triple, plus the object-context fields (This/DefiningClass/StaticClass)
// that the evaluator threads through method and constructor calls. These
// context fields are supplemental to the reference implementation (which
// has no $this at all in this subset's grammar) and are set by the
// evaluator immediately after installing a fresh Scope, the same way the
// reference implementation populates bound parameters right after
// swapping in Scope::new() (see internal/object's constructor/method
// dispatch) — they are not part of the reset vars/identifiers/objects
// maps and therefore survive being "fresh" in the sense those maps are.
type Scope struct {
	vars        map[string]*value.Cell
	identifiers map[string]Identifier
	objects     map[string]ObjectDef

	// This is the receiver of the method/constructor currently executing,
	// nil in free-function or top-level scope.
	This value.Object
	// DefiningClass is the class that declared the currently-executing
	// method body (the "self" target), which may differ from This's own
	// class when the method was inherited.
	DefiningClass ObjectDef
	// StaticClass is the "static::" target: This's actual runtime class.
	StaticClass ObjectDef
}

// New returns a completely empty Scope: no vars, no identifiers, no
// objects, no object context. This is the shape installed for every
// function/method/constructor activation (mirrors Scope::new() in
// evaluator/src/expressions/function_call.rs).
func New() *Scope {
	return &Scope{
		vars:        make(map[string]*value.Cell),
		identifiers: make(map[string]Identifier),
		objects:     make(map[string]ObjectDef),
	}
}

// canonicalVarName ensures a leading '$': a VariableExpr.Name arrives with
// the sigil the lexer attached, while a name computed for a variable
// variable ("$$x") arrives without it.
func canonicalVarName(name string) string {
	if len(name) > 0 && name[0] == '$' {
		return name
	}
	return "$" + name
}

// GetVar returns the cell bound to name, or nil if undeclared.
func (s *Scope) GetVar(name string) *value.Cell {
	return s.vars[canonicalVarName(name)]
}

// SetVar writes v into name's existing cell, or allocates a fresh unshared
// cell if name is not yet bound (spec.md §4.1 "Owned" assignment).
func (s *Scope) SetVar(name string, v value.Value) {
	key := canonicalVarName(name)
	if c, ok := s.vars[key]; ok {
		c.Set(v)
		return
	}
	s.vars[key] = value.NewCell(v)
}

// BindCell binds name directly to an existing cell, replacing whatever
// cell (if any) it previously pointed at. Used to bind by-reference and
// promoted-property parameters to an existing cell; "$a = &$b" goes
// through MakeReference instead.
func (s *Scope) BindCell(name string, c *value.Cell) {
	s.vars[canonicalVarName(name)] = c
}

// MakeReference aliases name to other's cell in place: after this call
// both names share one *Cell, so mutating either is observed by both
// (spec.md §3 Reference semantics). If other is not yet declared, it is
// first given a fresh owned cell so the alias has something to share.
func (s *Scope) MakeReference(name, other string) {
	okey := canonicalVarName(other)
	oc, ok := s.vars[okey]
	if !ok {
		oc = value.NewCell(value.Null())
		s.vars[okey] = oc
	}
	s.vars[canonicalVarName(name)] = oc
}

// DeleteVar implements `unset($name)`.
func (s *Scope) DeleteVar(name string) {
	delete(s.vars, canonicalVarName(name))
}

// DefineIdentifier declares a constant or function binding. Redeclaring an
// existing identifier is a fatal error (spec.md §7), mirroring the
// reference implementation's new_ident.
func (s *Scope) DefineIdentifier(path string, pos token.Position, name string, id Identifier) *diag.Diagnostic {
	if _, exists := s.identifiers[name]; exists {
		kind := "function"
		if id.IsConst {
			kind = "constant"
		}
		return diag.NewFatal(path, pos, diag.ErrMsgNameAlreadyInUse, kind, name)
	}
	s.identifiers[name] = id
	return nil
}

// GetIdentifier looks up a constant or function binding by name.
func (s *Scope) GetIdentifier(name string) (Identifier, bool) {
	id, ok := s.identifiers[name]
	return id, ok
}

// DefineObject declares a class/trait. Redeclaring an existing name is
// fatal (spec.md §7), mirroring the reference implementation's new_object.
func (s *Scope) DefineObject(path string, pos token.Position, name string, def ObjectDef) *diag.Diagnostic {
	if _, exists := s.objects[name]; exists {
		return diag.NewFatal(path, pos, diag.ErrMsgCannotRedeclareClass, name)
	}
	s.objects[name] = def
	return nil
}

// GetObject looks up a declared class/trait by name.
func (s *Scope) GetObject(name string) (ObjectDef, bool) {
	def, ok := s.objects[name]
	return def, ok
}
