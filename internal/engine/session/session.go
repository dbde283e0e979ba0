// Package session implements the fingerprint-keyed cache for external tool
// handles. A session owns at most one live handle at a time and rebuilds it
// only when the fingerprint of its construction inputs changes.
package session

import (
	"context"
	"errors"
	"sync"

	"go.trai.ch/weld/internal/core/domain"
	"go.trai.ch/weld/internal/core/ports"
	"go.trai.ch/zerr"
)

// Session caches one expensive-to-construct tool handle keyed by the
// fingerprint of its input paths. Sessions are explicit objects: callers
// construct one per logical tool binding and thread it through, there is no
// process-wide shared instance.
//
// At any instant the session holds 0 or 1 handles. A handle is replaced,
// never mutated, when the fingerprint changes; the session owns the handle
// and closes it on replacement and on Close.
type Session struct {
	factory       ports.ToolFactory
	fingerprinter ports.Fingerprinter
	logger        ports.Logger

	mu     sync.RWMutex
	fp     domain.Fingerprint
	handle ports.ToolHandle
	closed bool
}

// New creates an empty Session bound to the given factory.
func New(factory ports.ToolFactory, fingerprinter ports.Fingerprinter, logger ports.Logger) *Session {
	return &Session{
		factory:       factory,
		fingerprinter: fingerprinter,
		logger:        logger,
	}
}

// Acquire returns a live tool handle for the given input paths.
//
// The fingerprint over paths is recomputed on every call. If it matches the
// cached handle's fingerprint the existing handle is returned unchanged; this
// fast path takes only a read lock, so matching acquisitions may proceed
// concurrently. On a mismatch (or an empty session) a new handle is
// constructed under the session mutex, guaranteeing at most one construction
// in flight per session.
//
// Construction failure leaves the session in its prior state: a previously
// cached handle stays live and is not closed, so a failed rebuild never
// corrupts a working session. The previous handle is closed only once its
// replacement exists.
func (s *Session) Acquire(ctx context.Context, paths []string) (ports.ToolHandle, error) {
	fp, err := s.fingerprinter.Fingerprint(paths)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return nil, domain.ErrSessionClosed
	}
	if s.handle != nil && s.fp == fp {
		handle := s.handle
		s.mu.RUnlock()
		return handle, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, domain.ErrSessionClosed
	}

	// Re-check under the write lock: another goroutine may have rebuilt the
	// handle for the same fingerprint while we waited.
	if s.handle != nil && s.fp == fp {
		return s.handle, nil
	}

	handle, err := s.factory.New(ctx, fp)
	if err != nil {
		// Every construction failure carries the session init class, even
		// from factories that return bare errors.
		if !errors.Is(err, domain.ErrSessionInit) {
			err = errors.Join(domain.ErrSessionInit, err)
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to construct tool handle"), "fingerprint", fp.String())
	}

	if s.handle != nil {
		if closeErr := s.handle.Close(); closeErr != nil {
			s.logger.Warn("failed to close replaced tool handle: " + closeErr.Error())
		}
	}

	s.fp = fp
	s.handle = handle
	return handle, nil
}

// Fingerprint returns the fingerprint of the currently cached handle, or the
// zero fingerprint if the session is empty.
func (s *Session) Fingerprint() domain.Fingerprint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fp
}

// Close releases the cached handle, if any. Subsequent Acquire calls fail
// with domain.ErrSessionClosed. Close is idempotent.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if s.handle == nil {
		return nil
	}

	handle := s.handle
	s.handle = nil
	s.fp = 0

	if err := handle.Close(); err != nil {
		return zerr.Wrap(err, "failed to close tool handle")
	}
	return nil
}
