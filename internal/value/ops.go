package value

import "fmt"

// OpError is the value-model-level failure spec.md §4.1 calls
// `RuntimeError { kind, message, line }`, minus the line: operations here
// are pure and position-free; the evaluator attaches the operator's span
// when it turns an OpError into a diag.Diagnostic.
type OpError struct {
	Kind    string
	Message string
}

func (e *OpError) Error() string { return e.Message }

func unsupported(op string, a, b Value) *OpError {
	return &OpError{Kind: "UnsupportedOperation", Message: fmt.Sprintf("Unsupported operand types: %s %s %s", a.TypeName(), op, b.TypeName())}
}

func divByZero() *OpError {
	return &OpError{Kind: "DivisionByZero", Message: "Division by zero"}
}

func moduloByZero() *OpError {
	return &OpError{Kind: "DivisionByZero", Message: "Modulo by zero"}
}

// numericResult returns an Int when both operands and the mathematical
// result are integral, a Float otherwise — mirroring the reference
// language's int-preserving arithmetic.
func numericResult(a, b Value, fi func(x, y int64) (int64, bool), ff func(x, y float64) float64) Value {
	if a.kind == KindInt && b.kind == KindInt {
		if r, ok := fi(a.i, b.i); ok {
			return Int(r)
		}
	}
	return Float(ff(a.asFloat64(), b.asFloat64()))
}

// Add implements "+" for numeric operands.
func Add(a, b Value) (Value, *OpError) {
	if !a.isNumeric() || !b.isNumeric() {
		return Value{}, unsupported("+", a, b)
	}
	return numericResult(a, b,
		func(x, y int64) (int64, bool) { return x + y, true },
		func(x, y float64) float64 { return x + y },
	), nil
}

// Sub implements "-".
func Sub(a, b Value) (Value, *OpError) {
	if !a.isNumeric() || !b.isNumeric() {
		return Value{}, unsupported("-", a, b)
	}
	return numericResult(a, b,
		func(x, y int64) (int64, bool) { return x - y, true },
		func(x, y float64) float64 { return x - y },
	), nil
}

// Mul implements "*".
func Mul(a, b Value) (Value, *OpError) {
	if !a.isNumeric() || !b.isNumeric() {
		return Value{}, unsupported("*", a, b)
	}
	return numericResult(a, b,
		func(x, y int64) (int64, bool) { return x * y, true },
		func(x, y float64) float64 { return x * y },
	), nil
}

// Div implements "/"; division by zero is a DivisionByZero OpError
// regardless of operand kind (spec.md end-to-end scenario 6).
func Div(a, b Value) (Value, *OpError) {
	if !a.isNumeric() || !b.isNumeric() {
		return Value{}, unsupported("/", a, b)
	}
	if b.asFloat64() == 0 {
		return Value{}, divByZero()
	}
	if a.kind == KindInt && b.kind == KindInt && a.i%b.i == 0 {
		return Int(a.i / b.i), nil
	}
	return Float(a.asFloat64() / b.asFloat64()), nil
}

// intCoerce truncates a numeric value to int64 (floats coerced by
// truncation, per spec.md §4.1 mod/shl/shr/and/or/xor row).
func intCoerce(v Value) int64 {
	if v.kind == KindInt {
		return v.i
	}
	return int64(v.f)
}

// Mod implements "%".
func Mod(a, b Value) (Value, *OpError) {
	if !a.isNumeric() || !b.isNumeric() {
		return Value{}, unsupported("%", a, b)
	}
	y := intCoerce(b)
	if y == 0 {
		return Value{}, moduloByZero()
	}
	return Int(intCoerce(a) % y), nil
}

// Pow implements "**": an Int when both operands are ints, the exponent is
// non-negative and the result is integral; a Float otherwise.
func Pow(a, b Value) (Value, *OpError) {
	if !a.isNumeric() || !b.isNumeric() {
		return Value{}, unsupported("**", a, b)
	}
	result := powFloat(a.asFloat64(), b.asFloat64())
	if a.kind == KindInt && b.kind == KindInt && b.i >= 0 && result == float64(int64(result)) {
		return Int(int64(result)), nil
	}
	return Float(result), nil
}

func powFloat(base, exp float64) float64 {
	result := 1.0
	if exp == 0 {
		return 1
	}
	neg := exp < 0
	if neg {
		exp = -exp
	}
	for i := 0; i < int(exp); i++ {
		result *= base
	}
	if neg {
		return 1 / result
	}
	return result
}

func bitwise(a, b Value, op string, fn func(x, y int64) int64) (Value, *OpError) {
	if !a.isNumeric() || !b.isNumeric() {
		return Value{}, unsupported(op, a, b)
	}
	return Int(fn(intCoerce(a), intCoerce(b))), nil
}

// BitAnd implements "&".
func BitAnd(a, b Value) (Value, *OpError) { return bitwise(a, b, "&", func(x, y int64) int64 { return x & y }) }

// BitOr implements "|".
func BitOr(a, b Value) (Value, *OpError) { return bitwise(a, b, "|", func(x, y int64) int64 { return x | y }) }

// BitXor implements "^".
func BitXor(a, b Value) (Value, *OpError) { return bitwise(a, b, "^", func(x, y int64) int64 { return x ^ y }) }

// Shl implements "<<".
func Shl(a, b Value) (Value, *OpError) { return bitwise(a, b, "<<", func(x, y int64) int64 { return x << uint64(y) }) }

// Shr implements ">>".
func Shr(a, b Value) (Value, *OpError) { return bitwise(a, b, ">>", func(x, y int64) int64 { return x >> uint64(y) }) }

// Concat implements "." (string concatenation): both operands must be
// printable (spec.md §4.1).
func Concat(a, b Value) (Value, *OpError) {
	as, ok := Printable(a)
	if !ok {
		return Value{}, unsupported(".", a, b)
	}
	bs, ok := Printable(b)
	if !ok {
		return Value{}, unsupported(".", a, b)
	}
	return Str(as + bs), nil
}

// Cmp compares a and b by the "size" relation (spec.md §4.1): negative if
// a<b, 0 if equal, positive if a>b.
func Cmp(a, b Value) int {
	sa, sb := Size(a), Size(b)
	switch {
	case sa < sb:
		return -1
	case sa > sb:
		return 1
	default:
		return 0
	}
}

// Eq implements "==": true iff sizes match under the size relation.
func Eq(a, b Value) bool { return Cmp(a, b) == 0 }

// Identical implements "===": types must match, and then two objects must be
// the same instance while values of any other kind must satisfy Eq.
func Identical(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	if a.kind == KindObject {
		return a.obj == b.obj
	}
	return Eq(a, b)
}

// Not implements logical "!".
func Not(v Value) Value { return Bool(!Truthy(v)) }
