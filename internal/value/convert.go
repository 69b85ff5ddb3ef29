package value

import "strconv"

// Truthy implements the truthiness table of spec.md §4.1: null→false, bool
// as-is, 0/0.0/""→false, non-empty string→true, non-empty array→true,
// object/callable/resource→true.
func Truthy(v Value) bool {
	switch v.kind {
	case KindNull:
		return false
	case KindBool:
		return v.b
	case KindInt:
		return v.i != 0
	case KindFloat:
		return v.f != 0
	case KindString:
		return v.s != "" && v.s != "0"
	case KindArray:
		return v.array != nil && len(v.array.Elements) > 0
	default:
		return true
	}
}

// Printable renders a value's textual form (spec.md §4.1 invariant P1:
// printable iff the variant is one of null/bool/int/float/string/
// resource). ok is false for array/object/callable, which are not
// printable and instead warrant a caller-emitted warning.
func Printable(v Value) (s string, ok bool) {
	switch v.kind {
	case KindNull:
		return "", true
	case KindBool:
		if v.b {
			return "1", true
		}
		return "", true
	case KindInt:
		return strconv.FormatInt(v.i, 10), true
	case KindFloat:
		return formatFloat(v.f), true
	case KindString:
		return v.s, true
	case KindResource:
		return "Resource id#0", true
	default:
		return "", false
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Size implements the "size" relation spec.md §4.1 uses for comparisons
// and equality: null=0, bool→0|1, int→itself, float→truncated, string→
// byte length, array→element count, callable/resource/object→1 (a fixed
// nonzero projection, since no ordering is meaningful between them; "=="
// therefore treats any two such values as equal, and only Identical
// compares objects by identity).
func Size(v Value) float64 {
	switch v.kind {
	case KindNull:
		return 0
	case KindBool:
		if v.b {
			return 1
		}
		return 0
	case KindInt:
		return float64(v.i)
	case KindFloat:
		return float64(int64(v.f))
	case KindString:
		return float64(len(v.s))
	case KindArray:
		if v.array == nil {
			return 0
		}
		return float64(len(v.array.Elements))
	default:
		return 1
	}
}
