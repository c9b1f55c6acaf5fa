package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TempBook creates a temporary mdbook layout for testing: book.toml, a
// chapter directory and an annotated source tree.
type TempBook struct {
	Path string
	T    *testing.T
}

const bookToml = `[book]
title = "Test Book"
src = "src"

[preprocessor.codetags]
src-root = "code"
`

// NewTempBook creates a new temporary book directory.
func NewTempBook(t *testing.T) *TempBook {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "codetags-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	for _, dir := range []string{"src", "code"} {
		if err := os.MkdirAll(filepath.Join(tmpDir, dir), 0755); err != nil {
			os.RemoveAll(tmpDir)
			t.Fatalf("failed to create %s dir: %v", dir, err)
		}
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "book.toml"), []byte(bookToml), 0644); err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("failed to write book.toml: %v", err)
	}

	return &TempBook{Path: tmpDir, T: t}
}

// Cleanup removes the temporary book.
func (b *TempBook) Cleanup() {
	os.RemoveAll(b.Path)
}

// SourceDir returns the annotated source tree root.
func (b *TempBook) SourceDir() string {
	return filepath.Join(b.Path, "code")
}

// CreateChapter writes a chapter markdown file under src/.
func (b *TempBook) CreateChapter(name, content string) {
	b.T.Helper()
	b.writeFile(filepath.Join("src", name), content)
}

// CreateSource writes an annotated source file under the source tree.
func (b *TempBook) CreateSource(rel, content string) {
	b.T.Helper()
	b.writeFile(filepath.Join("code", rel), content)
}

func (b *TempBook) writeFile(rel, content string) {
	b.T.Helper()
	path := filepath.Join(b.Path, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		b.T.Fatalf("failed to create dir for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		b.T.Fatalf("failed to write %s: %v", rel, err)
	}
}
