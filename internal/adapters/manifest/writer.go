// Package manifest implements the JSON manifest writer consumed by the
// external tool side.
package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go.trai.ch/weld/internal/core/domain"
	"go.trai.ch/weld/internal/core/ports"
	"go.trai.ch/zerr"
)

// Filename is the manifest file name written into the destination directory.
const Filename = "manifest.json"

var _ ports.ManifestWriter = (*Writer)(nil)

// Writer serializes an AggregateResult into a package-manifest shaped JSON
// document. Output is deterministic for identical results: maps serialize
// with sorted keys, so two runs over the same facts produce byte-identical
// files.
type Writer struct{}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// document is the serialized manifest shape. Dependency facts are
// append-only in the aggregate; collapsing them into maps here means the
// last declaration of a name within a kind wins serialization, which matches
// the aggregate's upstream-before-local merge order.
type document struct {
	Dependencies    map[string]string `json:"dependencies,omitempty"`
	DevDependencies map[string]string `json:"devDependencies,omitempty"`
	Generated       map[string]string `json:"generated,omitempty"`
}

// Write emits the manifest into destDir and returns the written path.
// The destination directory is created if absent; nothing else in it is
// touched.
func (w *Writer) Write(result *domain.AggregateResult, destDir string) (string, error) {
	doc := document{
		Dependencies:    make(map[string]string),
		DevDependencies: make(map[string]string),
		Generated:       make(map[string]string),
	}

	for _, dep := range result.Dependencies {
		switch dep.Kind {
		case domain.KindDev:
			doc.DevDependencies[dep.Name] = dep.Version
		default:
			doc.Dependencies[dep.Name] = dep.Version
		}
	}

	for _, frag := range result.Fragments() {
		doc.Generated[frag.ID] = frag.Content
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", zerr.Wrap(err, "failed to marshal manifest")
	}
	data = append(data, '\n')

	if err := os.MkdirAll(destDir, 0o750); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to create manifest directory"), "dest", destDir)
	}

	path := filepath.Join(destDir, Filename)
	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to write manifest"), "path", path)
	}

	return path, nil
}
