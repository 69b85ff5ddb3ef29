package evaluator

import "testing"

func TestClassInstantiationAndPropertyAccess(t *testing.T) {
	ev := run(t, `<?php
class Point {
    public int $x;
    public int $y;
    public function __construct(int $x, int $y) {
        $this->x = $x;
        $this->y = $y;
    }
}
$p = new Point(3, 4);
echo $p->x, ",", $p->y;
`)
	if got := ev.Output(); got != "3,4" {
		t.Fatalf("Output() = %q, want 3,4", got)
	}
}

func TestPromotedConstructorProperty(t *testing.T) {
	ev := run(t, `<?php
class Point {
    public function __construct(public int $x, public int $y) {}
}
$p = new Point(5, 6);
echo $p->x, ",", $p->y;
`)
	if got := ev.Output(); got != "5,6" {
		t.Fatalf("Output() = %q, want 5,6", got)
	}
}

func TestMethodDispatchAndThis(t *testing.T) {
	ev := run(t, `<?php
class Counter {
    public int $n = 0;
    public function inc() { $this->n = $this->n + 1; }
}
$c = new Counter();
$c->inc();
$c->inc();
echo $c->n;
`)
	if got := ev.Output(); got != "2" {
		t.Fatalf("Output() = %q, want 2", got)
	}
}

func TestInheritanceAndParentConstructorChaining(t *testing.T) {
	ev := run(t, `<?php
class Shape {
    public string $label;
    public function __construct(string $label) { $this->label = $label; }
}
class Circle extends Shape {
    public int $radius;
    public function __construct(string $label, int $radius) {
        parent::__construct($label);
        $this->radius = $radius;
    }
}
$c = new Circle("circle", 7);
echo $c->label, ",", $c->radius;
`)
	if got := ev.Output(); got != "circle,7" {
		t.Fatalf("Output() = %q, want circle,7", got)
	}
}

func TestAbstractClassCannotBeInstantiated(t *testing.T) {
	src := `<?php
abstract class Shape {
    abstract public function area(): float;
}
$s = new Shape();
`
	p := parserProgram(t, src)
	ev := New(Config{Path: "test.php"})
	fatal := ev.Run(p)
	if fatal == nil {
		t.Fatal("expected a fatal diagnostic when instantiating an abstract class")
	}
}

func TestInstanceofOperator(t *testing.T) {
	ev := run(t, `<?php
class Animal {}
class Dog extends Animal {}
$d = new Dog();
echo $d instanceof Animal;
echo $d instanceof Dog;
`)
	if got := ev.Output(); got != "11" {
		t.Fatalf("Output() = %q, want 11", got)
	}
}

func TestTraitComposition(t *testing.T) {
	ev := run(t, `<?php
trait Greets {
    public function hello() { echo "hi"; }
}
class Greeter {
    use Greets;
}
$g = new Greeter();
$g->hello();
`)
	if got := ev.Output(); got != "hi" {
		t.Fatalf("Output() = %q, want hi", got)
	}
}

// A class's own method overriding a same-named trait method must win
// regardless of whether the `use` clause appears before the override in
// source order, and must not be treated as an unresolved collision even
// when two used traits both provide the overridden name.
func TestHostMethodOverridesTraitMethod(t *testing.T) {
	ev := run(t, `<?php
trait A {
    public function speak() { echo "a"; }
}
trait B {
    public function speak() { echo "b"; }
}
class C {
    use A, B;
    public function speak() { echo "c"; }
}
$o = new C();
$o->speak();
`)
	if got := ev.Output(); got != "c" {
		t.Fatalf("Output() = %q, want c (host method wins over trait collision)", got)
	}
}

func TestPrivatePropertyAccessOutsideClassIsFatal(t *testing.T) {
	src := `<?php
class Box {
    private int $secret = 1;
}
$b = new Box();
echo $b->secret;
`
	p := parserProgram(t, src)
	ev := New(Config{Path: "test.php"})
	fatal := ev.Run(p)
	if fatal == nil {
		t.Fatal("expected a fatal diagnostic reading a private property from outside its class")
	}
}

func TestStaticAccessConstant(t *testing.T) {
	ev := run(t, `<?php
class Config {
    const VERSION = 1;
}
echo Config::VERSION;
`)
	if got := ev.Output(); got != "1" {
		t.Fatalf("Output() = %q, want 1", got)
	}
}
