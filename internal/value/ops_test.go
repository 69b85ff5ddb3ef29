package value

import "testing"

func TestArithmeticIntPreserving(t *testing.T) {
	r, err := Add(Int(2), Int(3))
	if err != nil || r.Kind() != KindInt || r.AsInt() != 5 {
		t.Fatalf("Add(2,3) = %#v, %v", r, err)
	}
	r, err = Add(Int(2), Float(0.5))
	if err != nil || r.Kind() != KindFloat || r.AsFloat() != 2.5 {
		t.Fatalf("Add(2,0.5) = %#v, %v", r, err)
	}
}

func TestDivByZero(t *testing.T) {
	_, err := Div(Int(1), Int(0))
	if err == nil || err.Kind != "DivisionByZero" {
		t.Fatalf("Div(1,0) err = %v, want DivisionByZero", err)
	}
}

func TestDivExactYieldsInt(t *testing.T) {
	r, err := Div(Int(10), Int(2))
	if err != nil || r.Kind() != KindInt || r.AsInt() != 5 {
		t.Fatalf("Div(10,2) = %#v, %v", r, err)
	}
	r, err = Div(Int(10), Int(3))
	if err != nil || r.Kind() != KindFloat {
		t.Fatalf("Div(10,3) = %#v, want float", r)
	}
}

func TestModuloByZero(t *testing.T) {
	_, err := Mod(Int(5), Int(0))
	if err == nil || err.Kind != "DivisionByZero" {
		t.Fatalf("Mod(5,0) err = %v", err)
	}
}

func TestUnsupportedOperand(t *testing.T) {
	_, err := Add(Str("a"), Int(1))
	if err == nil || err.Kind != "UnsupportedOperation" {
		t.Fatalf("Add(str,int) err = %v, want UnsupportedOperation", err)
	}
}

func TestConcat(t *testing.T) {
	r, err := Concat(Str("foo"), Int(1))
	if err != nil || r.AsString() != "foo1" {
		t.Fatalf("Concat = %#v, %v", r, err)
	}
	if _, err := Concat(NewArray(&Array{}), Str("x")); err == nil {
		t.Fatal("Concat with array operand should fail")
	}
}

func TestCmpEqIdentical(t *testing.T) {
	if Cmp(Int(1), Int(2)) >= 0 {
		t.Error("Cmp(1,2) should be negative")
	}
	if !Eq(Int(1), Float(1.0)) {
		t.Error("Eq(1, 1.0) should be true (size-based)")
	}
	if Identical(Int(1), Float(1.0)) {
		t.Error("Identical(1, 1.0) should be false (type mismatch)")
	}
	if !Identical(Int(1), Int(1)) {
		t.Error("Identical(1,1) should be true")
	}
}

func TestNot(t *testing.T) {
	if Not(Bool(true)).AsBool() {
		t.Error("Not(true) should be false")
	}
	if !Not(Null()).AsBool() {
		t.Error("Not(null) should be true")
	}
}

func TestBitwiseAndShifts(t *testing.T) {
	if r, _ := BitAnd(Int(6), Int(3)); r.AsInt() != 2 {
		t.Errorf("BitAnd(6,3) = %d, want 2", r.AsInt())
	}
	if r, _ := Shl(Int(1), Int(3)); r.AsInt() != 8 {
		t.Errorf("Shl(1,3) = %d, want 8", r.AsInt())
	}
}

func TestPow(t *testing.T) {
	r, err := Pow(Int(2), Int(10))
	if err != nil || r.Kind() != KindInt || r.AsInt() != 1024 {
		t.Fatalf("Pow(2,10) = %#v, %v", r, err)
	}
}
