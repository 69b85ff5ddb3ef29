// Package diag holds the evaluator's diagnostic catalog and the
// "PHP <LEVEL>: <message> in <path> on line <N>" formatter (spec.md §6).
// Grounded on the teacher's internal/interp/errors package: a Level +
// message + position carrier instead of a Go error chain, since the
// evaluator never needs Unwrap/errors.Is semantics for this subset.
package diag

import (
	"fmt"

	"github.com/scriptlang/phpwalk/internal/token"
)

// Level is the diagnostic severity (spec.md §6/§7).
type Level int

const (
	// Raw formats with no "PHP <LEVEL>:" prefix, used when a child
	// evaluator (e.g. an included file) already formatted its own message
	// and the caller must not double-wrap it.
	Raw Level = iota
	Fatal
	Warning
	ParseError
)

func (l Level) String() string {
	switch l {
	case Fatal:
		return "Fatal error"
	case Warning:
		return "Warning"
	case ParseError:
		return "Parse error"
	default:
		return ""
	}
}

// Diagnostic is one reported condition: a level, a message, and the
// source position it was raised at.
type Diagnostic struct {
	Level   Level
	Message string
	Pos     token.Position
	Path    string
}

// NewFatal builds a Fatal diagnostic at pos with a formatted message.
func NewFatal(path string, pos token.Position, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{Level: Fatal, Message: fmt.Sprintf(format, args...), Pos: pos, Path: path}
}

// NewWarning builds a Warning diagnostic at pos with a formatted message.
func NewWarning(path string, pos token.Position, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{Level: Warning, Message: fmt.Sprintf(format, args...), Pos: pos, Path: path}
}

// NewParseError builds a ParseError diagnostic at pos.
func NewParseError(path string, pos token.Position, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{Level: ParseError, Message: fmt.Sprintf(format, args...), Pos: pos, Path: path}
}

// NewRaw builds a Raw diagnostic: msg is used verbatim, already formatted
// by whoever raised it (e.g. a nested include's own Format output).
func NewRaw(msg string) *Diagnostic {
	return &Diagnostic{Level: Raw, Message: msg}
}

// Format renders the diagnostic per spec.md §6:
//
//	PHP <LEVEL>: <message> in <path> on line <N>
//
// A Raw diagnostic is returned as-is, since it was already formatted by
// its origin.
func (d *Diagnostic) Format() string {
	if d.Level == Raw {
		return d.Message
	}
	return fmt.Sprintf("PHP %s: %s in %s on line %d", d.Level, d.Message, d.Path, d.Pos.Line)
}

// Error implements error so a Diagnostic can be returned and propagated
// through ordinary Go error plumbing when convenient (e.g. Includer
// failures), without forcing every caller through the evaluator's own
// diagnostics list.
func (d *Diagnostic) Error() string { return d.Format() }
