package domain

import "time"

// Invocation describes one call on an external tool handle: compile, format
// or bundle a single source file into the destination tree.
type Invocation struct {
	// Source is the input file path, relative to SourceRoot.
	Source string
	// SourceRoot is the directory the source paths are resolved against.
	SourceRoot string
	// DestRoot is the directory the tool writes its output into.
	DestRoot string
	// Format is the resolved output format tag for this source.
	Format Format
	// Options are extra tool-specific flags, passed through verbatim.
	Options []string
}

// GenerateOptions configures a single generation step run.
type GenerateOptions struct {
	// FailFast aborts the step on the first invocation failure. The default
	// (false) is best-effort: remaining files still run and all failures are
	// reported together, which surfaces every problem in one pass.
	FailFast bool
	// Parallelism bounds concurrent invocations when the tool handle is safe
	// for concurrent use. Zero means runtime.NumCPU(). Handles that report
	// ConcurrentSafe() == false are always invoked serially.
	Parallelism int
	// Options are extra tool flags applied to every invocation.
	Options []string
}

// FileResult records the outcome of one invocation within a generation step.
type FileResult struct {
	Source   string
	Format   Format
	Duration time.Duration
	Err      error
}

// GenerationResult is the outcome of a generation step over a set of inputs.
type GenerationResult struct {
	// OutputDir is the destination directory outputs were written to.
	OutputDir string
	// Files holds one entry per input, in completion order.
	Files []FileResult
	// Failed counts the entries whose Err is non-nil.
	Failed int
}

// GenerationInfo is the persisted record of the last completed generation for
// a module. It is informational: session reuse is decided by live
// fingerprints, the store only lets the app skip regeneration and report
// "unchanged" across processes.
type GenerationInfo struct {
	Module      string    `json:"module,omitzero"`
	Fingerprint string    `json:"fingerprint,omitzero"`
	OutputDir   string    `json:"output_dir,omitzero"`
	Generated   int       `json:"generated,omitzero"`
	Timestamp   time.Time `json:"timestamp,omitzero"`
}
