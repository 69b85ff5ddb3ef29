package object

import (
	"github.com/scriptlang/phpwalk/internal/ast"
	"github.com/scriptlang/phpwalk/internal/value"
)

// Constant is a declared class/trait constant (spec.md §4.4).
type Constant struct {
	Name      string
	Value     value.Value
	Modifiers *ast.Modifiers
}

// Property is a declared class/trait property. Default is a fresh reference
// cell allocated at declaration time so promoted properties and
// constructors can alias it (spec.md §4.4).
type Property struct {
	Name      string
	Type      *ast.TypeNode
	Default   *value.Cell
	Modifiers *ast.Modifiers
}

// ClassDef is a declared class, abstract class, or trait (spec.md §3
// ObjectDef). It satisfies scope.ObjectDef.
type ClassDef struct {
	Name   string
	Kind   ast.ClassKind
	Final  bool
	Parent *ClassDef

	Constants       map[string]*Constant
	Properties      map[string]*Property
	Methods         map[string]*CallableDef
	AbstractMethods map[string]*CallableDef
	Constructor     *CallableDef

	// PropertyOrder/MethodOrder preserve declaration order for
	// deterministic instantiation and for error messages that enumerate
	// members.
	PropertyOrder []string
	MethodOrder   []string
}

// DefName implements scope.ObjectDef.
func (c *ClassDef) DefName() string { return c.Name }

// DefKind implements scope.ObjectDef.
func (c *ClassDef) DefKind() string {
	switch c.Kind {
	case ast.KindAbstractClass:
		return "abstract class"
	case ast.KindTrait:
		return "trait"
	default:
		return "class"
	}
}

// IsAbstract reports whether c cannot be instantiated directly.
func (c *ClassDef) IsAbstract() bool { return c.Kind == ast.KindAbstractClass }

// InstanceOf implements spec.md §4.4's instance-of relation: true iff
// c.Name == target.Name or recursively c.Parent instanceof target.
func (c *ClassDef) InstanceOf(target *ClassDef) bool {
	for cur := c; cur != nil; cur = cur.Parent {
		if cur.Name == target.Name {
			return true
		}
	}
	return false
}

// LookupMethod searches c then its ancestors for a concrete method.
func (c *ClassDef) LookupMethod(name string) (*CallableDef, *ClassDef) {
	for cur := c; cur != nil; cur = cur.Parent {
		if m, ok := cur.Methods[name]; ok {
			return m, cur
		}
	}
	return nil, nil
}

// LookupProperty searches c then its ancestors for a property definition.
func (c *ClassDef) LookupProperty(name string) (*Property, *ClassDef) {
	for cur := c; cur != nil; cur = cur.Parent {
		if p, ok := cur.Properties[name]; ok {
			return p, cur
		}
	}
	return nil, nil
}

// LookupConstant searches c then its ancestors for a constant.
func (c *ClassDef) LookupConstant(name string) (*Constant, *ClassDef) {
	for cur := c; cur != nil; cur = cur.Parent {
		if k, ok := cur.Constants[name]; ok {
			return k, cur
		}
	}
	return nil, nil
}

// LookupConstructor finds the nearest ancestor (including c itself) that
// declares a constructor, the way a subclass without its own
// "__construct" falls back to its parent's (spec.md §4.4). Used both by
// Instantiate and by "parent::__construct(...)" constructor chaining
// (SPEC_FULL.md §4).
func (c *ClassDef) LookupConstructor() (*CallableDef, *ClassDef) {
	for cur := c; cur != nil; cur = cur.Parent {
		if cur.Constructor != nil {
			return cur.Constructor, cur
		}
	}
	return nil, nil
}

// Instance is a live object (spec.md §3). It satisfies value.Object.
type Instance struct {
	Class      *ClassDef
	Properties map[string]*value.Cell
}

// ClassName implements value.Object.
func (o *Instance) ClassName() string { return o.Class.Name }

// NewInstance materializes storage for every property in c's inheritance
// chain, each behind its own fresh *value.Cell so later mutation through
// one name doesn't alias a sibling instance (spec.md §4.4).
func NewInstance(c *ClassDef) *Instance {
	inst := &Instance{Class: c, Properties: make(map[string]*value.Cell)}
	chain := classChain(c)
	for i := len(chain) - 1; i >= 0; i-- {
		for _, name := range chain[i].PropertyOrder {
			p := chain[i].Properties[name]
			inst.Properties[name] = value.NewCell(p.Default.Get())
		}
	}
	return inst
}

func classChain(c *ClassDef) []*ClassDef {
	var chain []*ClassDef
	for cur := c; cur != nil; cur = cur.Parent {
		chain = append(chain, cur)
	}
	return chain
}

// Visibility reports the effective modifier group (public by default) for
// a member's Modifiers, for access-check callers.
func Visibility(mods *ast.Modifiers) string {
	switch {
	case mods == nil:
		return "public"
	case mods.Private:
		return "private"
	case mods.Protected:
		return "protected"
	default:
		return "public"
	}
}
