package fs_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/weld/internal/adapters/fs"
)

func TestWalkFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.scala.html"), "@()")
	writeFile(t, filepath.Join(dir, "views", "b.scala.html"), "@()")
	writeFile(t, filepath.Join(dir, ".git", "HEAD"), "ref: refs/heads/main")
	writeFile(t, filepath.Join(dir, "node_modules", "pkg", "index.js"), "")

	w := fs.NewWalker()

	var all []string
	for path := range w.WalkFiles(dir, nil) {
		rel, err := filepath.Rel(dir, path)
		require.NoError(t, err)
		all = append(all, rel)
	}
	slices.Sort(all)
	assert.Equal(t, []string{
		"a.scala.html",
		filepath.Join("node_modules", "pkg", "index.js"),
		filepath.Join("views", "b.scala.html"),
	}, all)

	var filtered []string
	for path := range w.WalkFiles(dir, []string{"node_modules"}) {
		rel, err := filepath.Rel(dir, path)
		require.NoError(t, err)
		filtered = append(filtered, rel)
	}
	slices.Sort(filtered)
	assert.Equal(t, []string{
		"a.scala.html",
		filepath.Join("views", "b.scala.html"),
	}, filtered)
}

func TestWalkFiles_EarlyStop(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a", "b", "c"} {
		writeFile(t, filepath.Join(dir, name), "x")
	}

	w := fs.NewWalker()

	count := 0
	for range w.WalkFiles(dir, nil) {
		count++
		break
	}
	assert.Equal(t, 1, count)

	// The tree is untouched by the walk.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}
