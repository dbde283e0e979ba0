// Package generate implements the generation step: routing each input file
// through a cached external tool handle into a destination directory.
package generate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"go.trai.ch/weld/internal/core/domain"
	"go.trai.ch/weld/internal/core/ports"
	"go.trai.ch/zerr"
)

// HandleSource yields a live tool handle for a set of session input paths.
// It is implemented by session.Session.
type HandleSource interface {
	Acquire(ctx context.Context, paths []string) (ports.ToolHandle, error)
}

// Generator runs generation steps. It is stateless across runs; all per-run
// state lives in the Run call.
type Generator struct {
	logger    ports.Logger
	telemetry ports.Telemetry
}

// NewGenerator creates a new Generator.
func NewGenerator(logger ports.Logger, telemetry ports.Telemetry) *Generator {
	return &Generator{
		logger:    logger,
		telemetry: telemetry,
	}
}

// Run acquires a tool handle for sessionInputs and invokes it once per input
// file, writing outputs under destDir.
//
// The step is additive: destDir is created if absent and pre-existing files
// are never deleted, the surrounding build system owns destination lifecycle.
// A missing input or a failed handle construction aborts the whole step
// before any invocation. Per-file failures follow opts.FailFast: by default
// the remaining files still run and all failures are reported together in
// the returned error, each carrying the offending source path.
//
// Files are invoked concurrently (bounded by opts.Parallelism) only when the
// handle reports ConcurrentSafe; otherwise invocations are serialized.
func (g *Generator) Run(
	ctx context.Context,
	source HandleSource,
	sessionInputs []string,
	inputs []string,
	sourceRoot string,
	destDir string,
	opts domain.GenerateOptions,
) (domain.GenerationResult, error) {
	res := domain.GenerationResult{OutputDir: destDir}

	// Fail on missing inputs before constructing anything: the step is only
	// worth starting when every declared source exists.
	for _, input := range inputs {
		if _, err := os.Stat(filepath.Join(sourceRoot, input)); err != nil {
			return res, zerr.With(domain.ErrInputNotFound, "path", filepath.Join(sourceRoot, input))
		}
	}

	handle, err := source.Acquire(ctx, sessionInputs)
	if err != nil {
		return res, err
	}

	if err := os.MkdirAll(destDir, 0o750); err != nil {
		return res, zerr.With(zerr.Wrap(err, "failed to create destination directory"), "dest", destDir)
	}

	limit := opts.Parallelism
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	if !handle.ConcurrentSafe() {
		limit = 1
	}

	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(limit)

	var mu sync.Mutex
	var invocationErrs error

	for _, input := range inputs {
		grp.Go(func() error {
			fileRes := g.invokeOne(grpCtx, handle, input, sourceRoot, destDir, opts.Options)

			mu.Lock()
			res.Files = append(res.Files, fileRes)
			if fileRes.Err != nil {
				res.Failed++
				invocationErrs = errors.Join(invocationErrs, fileRes.Err)
			}
			mu.Unlock()

			if fileRes.Err != nil && opts.FailFast {
				// Returning the error cancels grpCtx and stops the remaining
				// invocations.
				return fileRes.Err
			}
			return nil
		})
	}

	if err := grp.Wait(); err != nil && opts.FailFast {
		return res, err
	}

	return res, invocationErrs
}

// invokeOne runs the tool for a single input and records the outcome as a
// vertex.
func (g *Generator) invokeOne(
	ctx context.Context,
	handle ports.ToolHandle,
	input string,
	sourceRoot string,
	destDir string,
	options []string,
) domain.FileResult {
	format := domain.ResolveFormat(input)
	if !domain.KnownFormat(input) {
		// Unmatched suffixes still generate, as text. Log it so a misnamed
		// template shows up somewhere.
		g.logger.Warn("unrecognized suffix for " + input + ", using " + string(format))
	}

	_, vertex := g.telemetry.Record(ctx, "generate "+input)

	start := time.Now()
	err := handle.Invoke(ctx, domain.Invocation{
		Source:     input,
		SourceRoot: sourceRoot,
		DestRoot:   destDir,
		Format:     format,
		Options:    options,
	})
	if err != nil {
		if !errors.Is(err, domain.ErrInvocation) {
			err = errors.Join(domain.ErrInvocation, err)
		}
		err = zerr.With(zerr.With(zerr.Wrap(err, "generation failed"), "source", input), "dest", destDir)
	}
	vertex.Complete(err)

	return domain.FileResult{
		Source:   input,
		Format:   format,
		Duration: time.Since(start),
		Err:      err,
	}
}
