package value

import "testing"

func TestKindString(t *testing.T) {
	cases := []struct {
		k    Kind
		want string
	}{
		{KindNull, "null"},
		{KindBool, "bool"},
		{KindInt, "int"},
		{KindFloat, "float"},
		{KindString, "string"},
		{KindArray, "array"},
		{KindObject, "object"},
		{KindCallable, "callable"},
		{KindResource, "resource"},
		{Kind(99), "unknown"},
	}
	for _, c := range cases {
		if got := c.k.String(); got != c.want {
			t.Errorf("Kind(%d).String() = %q, want %q", c.k, got, c.want)
		}
	}
}

type fakeObject struct{ name string }

func (f fakeObject) ClassName() string { return f.name }

func TestTypeName(t *testing.T) {
	if got := Int(1).TypeName(); got != "int" {
		t.Errorf("Int.TypeName() = %q, want int", got)
	}
	o := NewObject(fakeObject{name: "Foo"})
	if got := o.TypeName(); got != "Foo" {
		t.Errorf("Object.TypeName() = %q, want Foo", got)
	}
}

func TestAccessors(t *testing.T) {
	if !Bool(true).AsBool() {
		t.Error("Bool(true).AsBool() = false")
	}
	if Int(42).AsInt() != 42 {
		t.Error("Int(42).AsInt() != 42")
	}
	if Float(3.5).AsFloat() != 3.5 {
		t.Error("Float(3.5).AsFloat() != 3.5")
	}
	if Str("hi").AsString() != "hi" {
		t.Error("Str(\"hi\").AsString() != hi")
	}
	if !Null().IsNull() {
		t.Error("Null().IsNull() = false")
	}
}
