package domain

import "fmt"

// Fingerprint is an order-independent summary of a set of input paths and
// their modification times. Two fingerprints compare equal exactly when the
// underlying (path, mtime) sets are equal.
//
// A fingerprint is recomputed on every session acquisition and never
// persisted; the cas store records a fingerprint only as an informational
// snapshot of the last completed generation.
type Fingerprint uint64

// String returns the fingerprint as a fixed-width hex string.
func (f Fingerprint) String() string {
	return fmt.Sprintf("%016x", uint64(f))
}

// IsZero reports whether the fingerprint is the zero value.
// The zero fingerprint is reserved to mean "never computed".
func (f Fingerprint) IsZero() bool {
	return f == 0
}
