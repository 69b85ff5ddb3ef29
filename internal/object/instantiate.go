package object

import (
	"github.com/scriptlang/phpwalk/internal/ast"
	"github.com/scriptlang/phpwalk/internal/diag"
	"github.com/scriptlang/phpwalk/internal/scope"
	"github.com/scriptlang/phpwalk/internal/token"
)

// Instantiate implements spec.md §4.4 "new": rejects abstract classes and
// traits, materializes property storage, and — if a constructor exists —
// binds arguments and runs its body with This/DefiningClass/StaticClass
// set on the fresh scope and promoted-property parameters aliased directly
// to the instance's property cells so constructor-body mutation persists.
func Instantiate(path string, pos token.Position, c *ClassDef, args []BoundArg, run StmtRunner, wireByRef func(fresh *scope.Scope, paramName string, expr ast.Expression)) (*Instance, *diag.Diagnostic) {
	if c.Kind == ast.KindAbstractClass {
		return nil, diag.NewFatal(path, pos, diag.ErrMsgInstantiateAbstract, c.Name)
	}
	if c.Kind == ast.KindTrait {
		return nil, diag.NewFatal(path, pos, diag.ErrMsgInstantiateTrait, c.Name)
	}

	inst := NewInstance(c)

	ctor, owner := c.LookupConstructor()
	if ctor == nil {
		if len(args) > 0 {
			// Calling a no-constructor class with arguments is silently
			// accepted in this subset: there is nothing to bind them to.
			return inst, nil
		}
		return inst, nil
	}

	ctxSetup := func(fresh *scope.Scope) {
		fresh.This = inst
		fresh.DefiningClass = owner
		fresh.StaticClass = c
	}

	promotedWire := func(fresh *scope.Scope, paramName string, expr ast.Expression) {
		if wireByRef != nil {
			wireByRef(fresh, paramName, expr)
		}
	}

	bound, d := BindArguments(path, c.Name+"::__construct", pos, ctor.Params, args)
	if d != nil {
		return nil, d
	}

	fresh := scope.New()
	ctxSetup(fresh)
	for _, b := range bound {
		if b.Param.Promoted != nil {
			if cell, ok := inst.Properties[b.Param.Name]; ok {
				cell.Set(b.Val)
				fresh.BindCell(b.Param.Name, cell)
				continue
			}
		}
		if b.Param.ByReference && b.Expr != nil {
			promotedWire(fresh, b.Param.Name, b.Expr)
			continue
		}
		fresh.SetVar(b.Param.Name, b.Val)
	}

	if d := run(ctor.Body, fresh); d != nil {
		return nil, d
	}
	return inst, nil
}
