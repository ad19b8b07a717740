package arch_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxFilesPerPackage = 20
	maxLinesPerFile    = 400
)

// TestPackageSize caps the number of non-test files per package and the
// line count of every file, tests included.
func TestPackageSize(t *testing.T) {
	t.Parallel()

	for _, p := range loadPackages(t) {
		if n := len(p.files); n > maxFilesPerPackage {
			t.Errorf("internal/%s has %d non-test files (limit %d); split it", p.name, n, maxFilesPerPackage)
		}
		for _, f := range p.files {
			if n := p.fset.File(f.Pos()).LineCount(); n > maxLinesPerFile {
				t.Errorf("%s: %d lines (limit %d)", p.pos(f.Pos()), n, maxLinesPerFile)
			}
		}
		for _, path := range p.tests {
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if n := bytes.Count(data, []byte("\n")); n > maxLinesPerFile {
				t.Errorf("internal/%s/%s: %d lines (limit %d)", p.name, filepath.Base(path), n, maxLinesPerFile)
			}
		}
	}
}
