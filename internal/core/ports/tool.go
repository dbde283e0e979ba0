package ports

import (
	"context"

	"go.trai.ch/weld/internal/core/domain"
)

// ToolHandle is a live binding to an external tool: expensive to construct,
// cheap to reuse. It exposes exactly one operation, replacing reflective
// dispatch with a fixed signature implemented by an adapter per tool.
//
//go:generate go run go.uber.org/mock/mockgen -source=tool.go -destination=mocks/mock_tool.go -package=mocks
type ToolHandle interface {
	// Invoke runs the tool once for a single source file.
	// Failures are reported as domain.ErrInvocation wraps.
	Invoke(ctx context.Context, inv domain.Invocation) error

	// ConcurrentSafe reports whether Invoke may be called from multiple
	// goroutines at once. Handles backed by a stateful process must
	// return false; the generation step then serializes invocations.
	ConcurrentSafe() bool

	// Close releases the underlying resource (process, library, connection).
	Close() error
}

// ToolFactory constructs tool handles. Construction is assumed expensive and
// not reentrant-safe; the session serializes calls per instance.
type ToolFactory interface {
	// New constructs a handle for the given input fingerprint.
	// Failures are reported as domain.ErrSessionInit wraps.
	New(ctx context.Context, fp domain.Fingerprint) (ToolHandle, error)
}
