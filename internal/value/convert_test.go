package value

import "testing"

func TestTruthy(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{Null(), false},
		{Bool(false), false},
		{Bool(true), true},
		{Int(0), false},
		{Int(1), true},
		{Float(0), false},
		{Str(""), false},
		{Str("0"), false},
		{Str("0.0"), true},
		{Str("hi"), true},
		{NewArray(&Array{}), false},
		{NewArray(&Array{Elements: []Value{Int(1)}}), true},
	}
	for _, c := range cases {
		if got := Truthy(c.v); got != c.want {
			t.Errorf("Truthy(%#v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestPrintable(t *testing.T) {
	cases := []struct {
		v      Value
		want   string
		wantOk bool
	}{
		{Null(), "", true},
		{Bool(true), "1", true},
		{Bool(false), "", true},
		{Int(42), "42", true},
		{Float(1.5), "1.5", true},
		{Str("abc"), "abc", true},
		{NewArray(&Array{}), "", false},
	}
	for _, c := range cases {
		got, ok := Printable(c.v)
		if got != c.want || ok != c.wantOk {
			t.Errorf("Printable(%#v) = (%q, %v), want (%q, %v)", c.v, got, ok, c.want, c.wantOk)
		}
	}
}

func TestSize(t *testing.T) {
	if Size(Int(5)) != 5 {
		t.Error("Size(Int(5)) != 5")
	}
	if Size(Str("abcd")) != 4 {
		t.Error("Size(Str(\"abcd\")) != 4")
	}
	if Size(NewArray(&Array{Elements: []Value{Int(1), Int(2)}})) != 2 {
		t.Error("Size of 2-element array != 2")
	}
}
