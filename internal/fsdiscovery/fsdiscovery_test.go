package fsdiscovery

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/go-logr/logr"
)

func writeFile(t *testing.T, dir, relPath string) {
	t.Helper()
	full := filepath.Join(dir, relPath)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(full, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestAllFilesSkipsExcludedDirsAndCaches(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/Main.java")
	writeFile(t, dir, "target/generated/Skip.java")
	writeFile(t, dir, ".git/objects/abc")

	w := NewWalker(logr.Discard())
	files := w.AllFiles(context.Background(), dir)
	if len(files) != 1 {
		t.Fatalf("expected 1 file after excluding target/.git, got %d: %v", len(files), files)
	}

	writeFile(t, dir, "src/Another.java")
	cached := w.AllFiles(context.Background(), dir)
	if len(cached) != 1 {
		t.Fatalf("expected cached walk to still report 1 file, got %d", len(cached))
	}
}

func TestByNameAndByExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "application.yaml")
	writeFile(t, dir, "application.properties")
	writeFile(t, dir, "src/Main.java")
	writeFile(t, dir, "src/Other.txt")

	w := NewWalker(logr.Discard())
	byName := w.ByName(context.Background(), dir, "application.yaml", "application.properties")
	sort.Strings(byName)
	if len(byName) != 2 {
		t.Fatalf("expected 2 config files, got %d: %v", len(byName), byName)
	}

	byExt := w.ByExtension(context.Background(), dir, ".java")
	if len(byExt) != 1 {
		t.Fatalf("expected 1 .java file, got %d: %v", len(byExt), byExt)
	}
}

func TestLooksLikeXMLBeanContext(t *testing.T) {
	cases := map[string]bool{
		"applicationContext.xml": true,
		"foo-context.xml":        true,
		"beans.xml":              true,
		"pom.xml":                false,
		"applicationContext.yml": false,
	}
	for name, want := range cases {
		if got := LooksLikeXMLBeanContext(name); got != want {
			t.Errorf("LooksLikeXMLBeanContext(%q) = %v, want %v", name, got, want)
		}
	}
}
