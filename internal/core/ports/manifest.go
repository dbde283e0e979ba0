package ports

import "go.trai.ch/weld/internal/core/domain"

// ManifestWriter serializes an aggregate result into a manifest file consumed
// by the external tool. The manifest schema is owned by the tool side; the
// writer only guarantees deterministic output for identical results.
//
//go:generate go run go.uber.org/mock/mockgen -source=manifest.go -destination=mocks/mock_manifest.go -package=mocks
type ManifestWriter interface {
	// Write emits the manifest into destDir, creating the directory if
	// absent, and returns the path of the written file.
	Write(result *domain.AggregateResult, destDir string) (string, error)
}
