// Package include implements the file-resolution half of spec.md §4.6:
// canonicalizing include/require paths and reading their contents. The
// evaluator owns parsing and evaluating what comes back; this package only
// knows about the filesystem, mirroring the teacher's convention of
// keeping I/O collaborators narrow and swappable via an interface.
package include

import (
	"os"
	"path/filepath"
)

// Includer canonicalizes a path and reads its contents. The default
// implementation uses the OS filesystem; a caller may supply another.
type Includer interface {
	// Canonicalize resolves path to an absolute, comparable form used as
	// the *_once dedup key; it does not require the file to exist.
	Canonicalize(path string) string
	// Read loads the file at path, returning an error if it cannot be
	// opened (spec.md §4.6's "on failure" branch).
	Read(path string) (string, error)
}

// osIncluder is the default filesystem-backed Includer.
type osIncluder struct{}

// NewOSIncluder returns the default Includer backed by the real
// filesystem.
func NewOSIncluder() Includer { return osIncluder{} }

func (osIncluder) Canonicalize(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return filepath.Clean(abs)
}

func (osIncluder) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
