package fs

import (
	"encoding/binary"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/weld/internal/core/domain"
	"go.trai.ch/weld/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Fingerprinter = (*Fingerprinter)(nil)

// Fingerprinter computes order-independent fingerprints over sets of input
// paths from filesystem metadata. Only existence and modification time are
// read; file contents are never opened, which keeps acquisition cheap enough
// to run on every call.
type Fingerprinter struct {
	walker *Walker
}

// NewFingerprinter creates a new Fingerprinter.
func NewFingerprinter(walker *Walker) *Fingerprinter {
	return &Fingerprinter{walker: walker}
}

// Fingerprint combines per-path digests by unsigned addition. Addition is
// commutative and associative, so the result is independent of the order the
// paths are listed in; changing any mtime or the set membership changes the
// sum with high probability. Collisions are a correctness-on-change concern
// here, not a security one.
func (f *Fingerprinter) Fingerprint(paths []string) (domain.Fingerprint, error) {
	var sum uint64
	for _, path := range paths {
		h, err := f.fingerprintPath(path)
		if err != nil {
			return 0, err
		}
		sum += h
	}
	return domain.Fingerprint(sum), nil
}

// fingerprintPath resolves one declared path: an existing file or directory
// is hashed directly, otherwise it is treated as a glob pattern. A pattern
// with zero matches means the input is missing.
func (f *Fingerprinter) fingerprintPath(path string) (uint64, error) {
	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return f.fingerprintDir(path)
		}
		return entryDigest(path, info.ModTime().UnixNano()), nil
	}

	matches, globErr := filepath.Glob(path)
	if globErr != nil || len(matches) == 0 {
		return 0, zerr.With(domain.ErrInputNotFound, "path", path)
	}

	var sum uint64
	for _, match := range matches {
		h, err := f.fingerprintPath(match)
		if err != nil {
			return 0, err
		}
		sum += h
	}
	return sum, nil
}

// fingerprintDir sums the digests of every regular file beneath dir.
func (f *Fingerprinter) fingerprintDir(dir string) (uint64, error) {
	var sum uint64
	for path := range f.walker.WalkFiles(dir, nil) {
		info, err := os.Stat(path)
		if err != nil {
			return 0, zerr.With(zerr.Wrap(err, "failed to stat input"), "path", path)
		}
		sum += entryDigest(path, info.ModTime().UnixNano())
	}
	return sum, nil
}

// entryDigest hashes one (path, mtime) pair into a 64-bit digest.
func entryDigest(path string, mtimeNanos int64) uint64 {
	hasher := xxhash.New()
	_, _ = hasher.WriteString(path)
	_, _ = hasher.Write([]byte{0}) // Separator
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(mtimeNanos))
	_, _ = hasher.Write(buf[:])
	return hasher.Sum64()
}
