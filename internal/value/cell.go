package value

// Cell is the shared mutable storage a Scope variable, object property, or
// captured reference lives behind. Every slot is a *Cell; "Owned" versus
// "Reference" (spec.md §3) is not a separate Value shape here — it falls
// out of how many names point at the same *Cell. A slot nobody else
// aliases behaves exactly like an inline owned value because mutation
// always happens through the one shared pointer. Assigning "a = &b"
// simply binds the name "a" to b's existing *Cell instead of allocating a
// new one (see internal/scope).
type Cell struct {
	V Value
}

// NewCell allocates a fresh, unshared cell holding v.
func NewCell(v Value) *Cell { return &Cell{V: v} }

// Get dereferences the cell.
func (c *Cell) Get() Value { return c.V }

// Set overwrites the cell's contents in place, so every name sharing this
// cell observes the mutation (spec.md §4.1 reference semantics).
func (c *Cell) Set(v Value) { c.V = v }
