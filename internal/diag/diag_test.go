package diag

import (
	"testing"

	"github.com/scriptlang/phpwalk/internal/token"
)

func TestLevelString(t *testing.T) {
	cases := []struct {
		level Level
		want  string
	}{
		{Fatal, "Fatal error"},
		{Warning, "Warning"},
		{ParseError, "Parse error"},
		{Raw, ""},
	}
	for _, c := range cases {
		if got := c.level.String(); got != c.want {
			t.Errorf("Level(%d).String() = %q, want %q", c.level, got, c.want)
		}
	}
}

func TestFormatFatal(t *testing.T) {
	d := NewFatal("test.php", token.Position{Line: 3}, "undefined method %s", "foo")
	want := "PHP Fatal error: undefined method foo in test.php on line 3"
	if got := d.Format(); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestFormatWarning(t *testing.T) {
	d := NewWarning("test.php", token.Position{Line: 7}, "undefined variable $%s", "x")
	want := "PHP Warning: undefined variable $x in test.php on line 7"
	if got := d.Format(); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestFormatRawIsVerbatim(t *testing.T) {
	d := NewRaw("already formatted by a child evaluator")
	if got := d.Format(); got != "already formatted by a child evaluator" {
		t.Errorf("Format() = %q, want the raw message unchanged", got)
	}
}

func TestErrorImplementsErrorInterface(t *testing.T) {
	var err error = NewFatal("test.php", token.Position{Line: 1}, "boom")
	want := "PHP Fatal error: boom in test.php on line 1"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
