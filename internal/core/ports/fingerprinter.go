// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/weld/internal/core/domain"

// Fingerprinter computes order-independent fingerprints over sets of paths.
//
//go:generate go run go.uber.org/mock/mockgen -source=fingerprinter.go -destination=mocks/mock_fingerprinter.go -package=mocks
type Fingerprinter interface {
	// Fingerprint stats every path (resolving globs and walking directories)
	// and combines (path, mtime) pairs into a single fingerprint.
	// A missing path yields domain.ErrInputNotFound with path metadata.
	Fingerprint(paths []string) (domain.Fingerprint, error)
}
