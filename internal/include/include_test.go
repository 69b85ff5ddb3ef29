package include

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOSIncluderReadsFileContents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.php")
	if err := os.WriteFile(path, []byte("<?php echo 1;"), 0o644); err != nil {
		t.Fatal(err)
	}

	inc := NewOSIncluder()
	got, err := inc.Read(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "<?php echo 1;" {
		t.Errorf("Read() = %q, want file contents", got)
	}
}

func TestOSIncluderReadMissingFileErrors(t *testing.T) {
	inc := NewOSIncluder()
	if _, err := inc.Read(filepath.Join(t.TempDir(), "missing.php")); err == nil {
		t.Fatal("expected an error reading a nonexistent file")
	}
}

func TestOSIncluderCanonicalizeIsAbsoluteAndStable(t *testing.T) {
	inc := NewOSIncluder()
	a := inc.Canonicalize("./lib.php")
	b := inc.Canonicalize("lib.php")
	if !filepath.IsAbs(a) {
		t.Errorf("Canonicalize(%q) = %q, want an absolute path", "./lib.php", a)
	}
	if a != b {
		t.Errorf("Canonicalize(%q) = %q, Canonicalize(%q) = %q, want the same dedup key", "./lib.php", a, "lib.php", b)
	}
}
