package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/weld/internal/core/domain"
	"go.trai.ch/weld/internal/core/ports/mocks"
	"go.trai.ch/weld/internal/engine/session"
	"go.uber.org/mock/gomock"
)

type discardLogger struct{}

func (discardLogger) Info(string) {}
func (discardLogger) Warn(string) {}
func (discardLogger) Error(error) {}

func TestSession_AcquireCachesHandle(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()
	paths := []string{"views/a.scala.html"}

	handle := mocks.NewMockToolHandle(ctrl)
	factory := mocks.NewMockToolFactory(ctrl)
	fingerprinter := mocks.NewMockFingerprinter(ctrl)

	fingerprinter.EXPECT().Fingerprint(paths).Return(domain.Fingerprint(42), nil).Times(2)
	// Construction runs exactly once; the second Acquire hits the cache.
	factory.EXPECT().New(ctx, domain.Fingerprint(42)).Return(handle, nil).Times(1)

	s := session.New(factory, fingerprinter, discardLogger{})

	h1, err := s.Acquire(ctx, paths)
	require.NoError(t, err)
	h2, err := s.Acquire(ctx, paths)
	require.NoError(t, err)

	assert.Same(t, h1, h2)
	assert.Equal(t, domain.Fingerprint(42), s.Fingerprint())
}

func TestSession_FingerprintChangeRebuilds(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()
	paths := []string{"views/a.scala.html"}

	oldHandle := mocks.NewMockToolHandle(ctrl)
	newHandle := mocks.NewMockToolHandle(ctrl)
	factory := mocks.NewMockToolFactory(ctrl)
	fingerprinter := mocks.NewMockFingerprinter(ctrl)

	gomock.InOrder(
		fingerprinter.EXPECT().Fingerprint(paths).Return(domain.Fingerprint(1), nil),
		fingerprinter.EXPECT().Fingerprint(paths).Return(domain.Fingerprint(2), nil),
	)
	factory.EXPECT().New(ctx, domain.Fingerprint(1)).Return(oldHandle, nil)
	factory.EXPECT().New(ctx, domain.Fingerprint(2)).Return(newHandle, nil)
	// The replaced handle is closed once its successor exists.
	oldHandle.EXPECT().Close().Return(nil)

	s := session.New(factory, fingerprinter, discardLogger{})

	h1, err := s.Acquire(ctx, paths)
	require.NoError(t, err)
	assert.Same(t, oldHandle, h1)

	h2, err := s.Acquire(ctx, paths)
	require.NoError(t, err)
	assert.Same(t, newHandle, h2)
	assert.Equal(t, domain.Fingerprint(2), s.Fingerprint())
}

func TestSession_FailedRebuildPreservesHandle(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()
	paths := []string{"views/a.scala.html"}

	handle := mocks.NewMockToolHandle(ctrl)
	factory := mocks.NewMockToolFactory(ctrl)
	fingerprinter := mocks.NewMockFingerprinter(ctrl)

	gomock.InOrder(
		fingerprinter.EXPECT().Fingerprint(paths).Return(domain.Fingerprint(1), nil),
		fingerprinter.EXPECT().Fingerprint(paths).Return(domain.Fingerprint(2), nil),
		fingerprinter.EXPECT().Fingerprint(paths).Return(domain.Fingerprint(1), nil),
	)
	factory.EXPECT().New(ctx, domain.Fingerprint(1)).Return(handle, nil)
	factory.EXPECT().New(ctx, domain.Fingerprint(2)).Return(nil, errors.New("compiler exploded"))
	// The cached handle must not be closed by the failed rebuild.

	s := session.New(factory, fingerprinter, discardLogger{})

	h1, err := s.Acquire(ctx, paths)
	require.NoError(t, err)

	_, err = s.Acquire(ctx, paths)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSessionInit))
	assert.Contains(t, err.Error(), "failed to construct tool handle")

	// The prior fingerprint and handle survive the failure.
	assert.Equal(t, domain.Fingerprint(1), s.Fingerprint())
	h3, err := s.Acquire(ctx, paths)
	require.NoError(t, err)
	assert.Same(t, h1, h3)
}

func TestSession_ConcurrentAcquireConstructsOnce(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ctx := context.Background()
		paths := []string{"views/a.scala.html"}

		handle := mocks.NewMockToolHandle(ctrl)
		factory := mocks.NewMockToolFactory(ctrl)
		fingerprinter := mocks.NewMockFingerprinter(ctrl)

		fingerprinter.EXPECT().Fingerprint(paths).Return(domain.Fingerprint(7), nil).AnyTimes()
		factory.EXPECT().New(ctx, domain.Fingerprint(7)).Return(handle, nil).Times(1)

		s := session.New(factory, fingerprinter, discardLogger{})

		const workers = 16
		handles := make([]any, workers)
		var wg sync.WaitGroup
		wg.Add(workers)
		for i := range workers {
			go func() {
				defer wg.Done()
				h, err := s.Acquire(ctx, paths)
				if err != nil {
					t.Errorf("unexpected error: %v", err)
					return
				}
				handles[i] = h
			}()
		}
		wg.Wait()

		for i := range workers {
			assert.Same(t, handle, handles[i])
		}
	})
}

func TestSession_Close(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()
	paths := []string{"views/a.scala.html"}

	handle := mocks.NewMockToolHandle(ctrl)
	factory := mocks.NewMockToolFactory(ctrl)
	fingerprinter := mocks.NewMockFingerprinter(ctrl)

	fingerprinter.EXPECT().Fingerprint(paths).Return(domain.Fingerprint(3), nil).AnyTimes()
	factory.EXPECT().New(ctx, domain.Fingerprint(3)).Return(handle, nil)
	handle.EXPECT().Close().Return(nil).Times(1)

	s := session.New(factory, fingerprinter, discardLogger{})

	_, err := s.Acquire(ctx, paths)
	require.NoError(t, err)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close()) // Idempotent.

	_, err = s.Acquire(ctx, paths)
	assert.True(t, errors.Is(err, domain.ErrSessionClosed))
}

func TestSession_FingerprinterErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	factory := mocks.NewMockToolFactory(ctrl)
	fingerprinter := mocks.NewMockFingerprinter(ctrl)

	fingerprinter.EXPECT().
		Fingerprint(gomock.Any()).
		Return(domain.Fingerprint(0), domain.ErrInputNotFound)

	s := session.New(factory, fingerprinter, discardLogger{})

	_, err := s.Acquire(ctx, []string{"missing"})
	assert.True(t, errors.Is(err, domain.ErrInputNotFound))
}
