package fs_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/weld/internal/adapters/fs"
	"go.trai.ch/weld/internal/core/domain"
)

func newFingerprinter() *fs.Fingerprinter {
	return fs.NewFingerprinter(fs.NewWalker())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFingerprint_OrderIndependent(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.scala.html")
	b := filepath.Join(dir, "b.scala.js")
	writeFile(t, a, "@(x: Int)")
	writeFile(t, b, "@(y: Int)")

	f := newFingerprinter()

	fp1, err := f.Fingerprint([]string{a, b})
	require.NoError(t, err)
	fp2, err := f.Fingerprint([]string{b, a})
	require.NoError(t, err)

	assert.Equal(t, fp1, fp2)
	assert.False(t, fp1.IsZero())
}

func TestFingerprint_ChangesWithMtime(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.scala.html")
	writeFile(t, a, "@(x: Int)")

	f := newFingerprinter()

	fp1, err := f.Fingerprint([]string{a})
	require.NoError(t, err)

	newTime := time.Now().Add(5 * time.Second)
	require.NoError(t, os.Chtimes(a, newTime, newTime))

	fp2, err := f.Fingerprint([]string{a})
	require.NoError(t, err)

	assert.NotEqual(t, fp1, fp2)
}

func TestFingerprint_ChangesWithSetMembership(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.scala.html")
	b := filepath.Join(dir, "b.scala.js")
	writeFile(t, a, "@(x: Int)")
	writeFile(t, b, "@(y: Int)")

	f := newFingerprinter()

	fp1, err := f.Fingerprint([]string{a})
	require.NoError(t, err)
	fp2, err := f.Fingerprint([]string{a, b})
	require.NoError(t, err)

	assert.NotEqual(t, fp1, fp2)
}

func TestFingerprint_MissingInput(t *testing.T) {
	dir := t.TempDir()

	f := newFingerprinter()

	_, err := f.Fingerprint([]string{filepath.Join(dir, "does-not-exist")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInputNotFound))
}

func TestFingerprint_Directory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "views", "index.scala.html"), "@()")
	writeFile(t, filepath.Join(dir, "views", "admin", "users.scala.html"), "@()")

	f := newFingerprinter()

	fp1, err := f.Fingerprint([]string{dir})
	require.NoError(t, err)

	// Adding a file beneath the directory changes the fingerprint.
	writeFile(t, filepath.Join(dir, "views", "new.scala.html"), "@()")
	fp2, err := f.Fingerprint([]string{dir})
	require.NoError(t, err)

	assert.NotEqual(t, fp1, fp2)
}

func TestFingerprint_Glob(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.scala.html"), "@()")
	writeFile(t, filepath.Join(dir, "b.scala.html"), "@()")
	writeFile(t, filepath.Join(dir, "readme.md"), "docs")

	f := newFingerprinter()

	pattern := filepath.Join(dir, "*.scala.html")
	fp1, err := f.Fingerprint([]string{pattern})
	require.NoError(t, err)

	explicit, err := f.Fingerprint([]string{
		filepath.Join(dir, "a.scala.html"),
		filepath.Join(dir, "b.scala.html"),
	})
	require.NoError(t, err)
	assert.Equal(t, explicit, fp1)

	// A pattern with zero matches is a missing input.
	_, err = f.Fingerprint([]string{filepath.Join(dir, "*.coffee")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInputNotFound))
}
