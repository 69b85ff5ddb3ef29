package object

import (
	"github.com/scriptlang/phpwalk/internal/ast"
	"github.com/scriptlang/phpwalk/internal/diag"
	"github.com/scriptlang/phpwalk/internal/scope"
)

// traitPool is the working copy of a trait's methods while adaptations are
// applied; composition mutates this instead of the trait's own ClassDef so
// re-using the same trait in two classes never observes the other's
// adaptations.
type traitPool struct {
	def     *traitBody
	methods map[string]*CallableDef
}

// pendingTraitUse carries one `use` clause's resolved trait pools from
// prepareTraitUse through to foldTraitMethods, once the host class's own
// concrete methods have been registered.
type pendingTraitUse struct {
	use   *ast.TraitUseDecl
	pools map[string]*traitPool
	order []string
}

// prepareTraitUse implements the first phase of spec.md §4.4 trait
// composition for a single `use T1, T2 { adaptations }` clause: load each
// trait, apply adaptations in source order, fold surviving properties/
// constants into def immediately, and return the resolved pools so the
// caller can fold methods only after the host class's own methods are
// known (a host concrete method silently wins over a trait collision
// regardless of declaration order; see foldTraitMethods).
func prepareTraitUse(path string, def *ClassDef, use *ast.TraitUseDecl, sc *scope.Scope) (*pendingTraitUse, *diag.Diagnostic) {
	pools := make(map[string]*traitPool, len(use.Traits))
	order := make([]string, 0, len(use.Traits))

	for _, tname := range use.Traits {
		obj, ok := sc.GetObject(tname)
		if !ok {
			return nil, diag.NewFatal(path, use.Pos(), diag.ErrMsgUndefinedClass, tname)
		}
		trait, ok := obj.(*ClassDef)
		if !ok || trait.Kind != ast.KindTrait {
			return nil, diag.NewFatal(path, use.Pos(), "%s is not a trait", tname)
		}
		methods := make(map[string]*CallableDef, len(trait.Methods))
		for name, m := range trait.Methods {
			methods[name] = m
		}
		pools[tname] = &traitPool{def: trait, methods: methods}
		order = append(order, tname)
	}

	for _, adapt := range use.Adaptations {
		switch adapt.Kind {
		case "precedence":
			src := adapt.SourceTrait
			if src == "" {
				return nil, diag.NewFatal(path, use.Pos(), "Trait precedence adaptation requires an explicit source trait")
			}
			if _, ok := pools[src]; !ok {
				return nil, diag.NewFatal(path, use.Pos(), "%s is not used by %s", src, def.Name)
			}
			for _, other := range adapt.InsteadOf {
				if other == src {
					return nil, diag.NewFatal(path, use.Pos(), "%s cannot be used in insteadof list for its own method", src)
				}
				if pool, ok := pools[other]; ok {
					delete(pool.methods, adapt.Method)
				}
			}

		case "alias":
			src := adapt.SourceTrait
			var m *CallableDef
			count := 0
			if src != "" {
				if pool, ok := pools[src]; ok {
					m = pool.methods[adapt.Method]
					if m == nil {
						// An earlier insteadof may have dropped the method
						// from this pool; the alias still names the trait's
						// own definition.
						m = pool.def.Methods[adapt.Method]
					}
				}
			} else {
				for _, pool := range pools {
					if cand, ok := pool.methods[adapt.Method]; ok {
						m = cand
						count++
					}
				}
				if count > 1 {
					return nil, diag.NewFatal(path, use.Pos(), "An alias was defined for method %s, which exists in more than one used trait", adapt.Method)
				}
			}
			if m == nil {
				return nil, diag.NewFatal(path, use.Pos(), diag.ErrMsgTraitMethodNotFound, adapt.Method)
			}
			newName := adapt.NewName
			if newName == "" {
				newName = adapt.Method
			}
			if _, exists := def.Methods[newName]; exists {
				return nil, diag.NewFatal(path, use.Pos(), "%s already has a method named %s", def.Name, newName)
			}
			aliased := *m
			aliased.Name = newName
			if adapt.NewVisibility != "" {
				aliased.Modifiers = withVisibility(m.Modifiers, adapt.NewVisibility)
			}
			def.Methods[newName] = &aliased
			def.MethodOrder = append(def.MethodOrder, newName)

		case "visibility":
			src := adapt.SourceTrait
			if pool, ok := pools[src]; ok {
				if m, ok := pool.methods[adapt.Method]; ok {
					updated := *m
					updated.Modifiers = withVisibility(m.Modifiers, adapt.NewVisibility)
					pool.methods[adapt.Method] = &updated
				}
			}
		}
	}

	// Fold properties/constants from every composed trait.
	for _, tname := range order {
		trait := pools[tname].def
		for _, pname := range trait.PropertyOrder {
			if _, exists := def.Properties[pname]; !exists {
				p := *trait.Properties[pname]
				def.Properties[pname] = &p
				def.PropertyOrder = append(def.PropertyOrder, pname)
			}
		}
		for cname, c := range trait.Constants {
			if _, exists := def.Constants[cname]; !exists {
				def.Constants[cname] = c
			}
		}
	}

	return &pendingTraitUse{use: use, pools: pools, order: order}, nil
}

// foldTraitMethods resolves the method side of a `use` clause (spec.md
// §4.4), detecting collisions: a method name appearing on more than one
// composed trait that wasn't resolved by an adaptation is fatal, unless
// the host class itself already declares a concrete method with the same
// name, which silently wins. Called only after the host class's own
// concrete methods are registered in def.Methods, so declaration order
// between `use` and the conflicting method never matters.
func foldTraitMethods(path string, def *ClassDef, pending *pendingTraitUse) *diag.Diagnostic {
	providers := make(map[string][]string)
	for _, tname := range pending.order {
		for name := range pending.pools[tname].methods {
			providers[name] = append(providers[name], tname)
		}
	}
	for name, from := range providers {
		if _, exists := def.Methods[name]; exists {
			continue // host class method silently wins
		}
		if len(from) > 1 {
			return diag.NewFatal(path, pending.use.Pos(), diag.ErrMsgTraitCollision, name, def.Name, from[0], from[1])
		}
		m := *pending.pools[from[0]].methods[name]
		def.Methods[name] = &m
		def.MethodOrder = append(def.MethodOrder, name)
	}
	return nil
}

func withVisibility(mods *ast.Modifiers, vis string) *ast.Modifiers {
	out := ast.Modifiers{}
	if mods != nil {
		out = *mods
	}
	out.Public, out.Private, out.Protected = false, false, false
	switch vis {
	case "private":
		out.Private = true
	case "protected":
		out.Protected = true
	default:
		out.Public = true
	}
	return &out
}
