package ports

import "go.trai.ch/weld/internal/core/domain"

// GenerationInfoStore defines the interface for persisting per-module
// generation records across builds.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type GenerationInfoStore interface {
	// Get retrieves the generation info for a given module name.
	// Returns nil, nil if not found.
	Get(module string) (*domain.GenerationInfo, error)

	// Put stores the generation info.
	Put(info domain.GenerationInfo) error
}
