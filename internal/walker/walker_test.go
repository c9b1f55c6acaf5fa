package walker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the source walker:
// - only files with the requested extension are returned, sorted
// - results are relative to the walked root
// - dot files, dot directories and build directories are skipped
// - a root .gitignore filters matching files
// - walking a missing root fails

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Main.java", "")
	writeFile(t, root, "lox/Scanner.java", "")
	writeFile(t, root, "notes.txt", "")
	writeFile(t, root, ".hidden.java", "")
	writeFile(t, root, ".cache/Cached.java", "")
	writeFile(t, root, "node_modules/dep/Dep.java", "")
	writeFile(t, root, "build/Gen.java", "")

	files, err := Files(root, "java")
	require.NoError(t, err)
	assert.Equal(t, []string{"Main.java", filepath.Join("lox", "Scanner.java")}, files)
}

func TestFilesHonorsGitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitignore", "ignored.java\ngen/\n")
	writeFile(t, root, "Main.java", "")
	writeFile(t, root, "ignored.java", "")
	writeFile(t, root, "gen/Gen.java", "")

	files, err := Files(root, "java")
	require.NoError(t, err)
	assert.Equal(t, []string{"Main.java"}, files)
}

func TestFilesMissingRoot(t *testing.T) {
	_, err := Files(filepath.Join(t.TempDir(), "nope"), "java")
	require.Error(t, err)
}
