package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfield/pkg/form"
	"github.com/goliatone/go-formfield/pkg/schema"
)

// LoadDefinitions reads a definition fixture. Testing helpers fail the test
// on error to keep callers concise.
func LoadDefinitions(t *testing.T, path string) schema.Document {
	t.Helper()

	doc, err := schema.LoadFile(path)
	if err != nil {
		t.Fatalf("load definitions: %v", err)
	}
	return doc
}

// MustBuildForm loads path and builds the form with the given id.
func MustBuildForm(t *testing.T, path, id string) *form.Form {
	t.Helper()

	def, ok := LoadDefinitions(t, path).Form(id)
	if !ok {
		t.Fatalf("form %q not found in %s", id, path)
	}
	f, err := def.Build()
	if err != nil {
		t.Fatalf("build form %q: %v", id, err)
	}
	return f
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}
