// Package shell provides the subprocess-backed tool adapter: an external
// binary invoked once per source file.
package shell

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/weld/internal/core/domain"
	"go.trai.ch/weld/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.ToolFactory = (*Factory)(nil)
	_ ports.ToolHandle  = (*Handle)(nil)
)

// Factory constructs subprocess tool handles for one tool binding.
// Construction resolves the binary and probes it, so a broken installation
// surfaces at session initialization instead of on the first input file.
type Factory struct {
	spec   domain.ToolSpec
	logger ports.Logger
}

// NewFactory creates a Factory for the given tool binding.
func NewFactory(spec domain.ToolSpec, logger ports.Logger) *Factory {
	return &Factory{
		spec:   spec,
		logger: logger,
	}
}

// New resolves the configured binary within the merged environment and probes
// it with --version. Any failure is a session initialization error carrying
// the offending command.
func (f *Factory) New(ctx context.Context, fp domain.Fingerprint) (ports.ToolHandle, error) {
	env := resolveEnvironment(os.Environ(), f.spec.Environment)

	executable := f.spec.Command
	if !filepath.IsAbs(executable) {
		resolved, err := lookPath(executable, env)
		if err != nil {
			initErr := zerr.With(zerr.Wrap(domain.ErrSessionInit, "tool not found"), "command", f.spec.Command)
			return nil, zerr.With(initErr, "cause", err.Error())
		}
		executable = resolved
	}

	probe := exec.CommandContext(ctx, executable, "--version") //nolint:gosec // user provided command
	probe.Env = env
	out, err := probe.CombinedOutput()
	if err != nil {
		initErr := zerr.With(zerr.Wrap(domain.ErrSessionInit, "version probe failed"), "command", f.spec.Command)
		return nil, zerr.With(initErr, "cause", err.Error())
	}
	f.logger.Info(f.spec.Command + " " + strings.TrimSpace(string(out)))

	return &Handle{
		executable:  executable,
		name:        f.spec.Command,
		args:        f.spec.Args,
		env:         env,
		logger:      f.logger,
		fingerprint: fp,
	}, nil
}

// Handle is a live subprocess binding. Each Invoke spawns a fresh process, so
// invocations are independent and the handle is safe for concurrent use.
type Handle struct {
	executable  string
	name        string
	args        []string
	env         []string
	logger      ports.Logger
	fingerprint domain.Fingerprint
}

// Invoke runs the tool once for a single source file:
//
//	<command> <args...> --format <tag> --out <destRoot> <source>
//
// with the working directory set to the source root and any per-run options
// appended. Stdout and stderr are streamed line-wise to the logger.
func (h *Handle) Invoke(ctx context.Context, inv domain.Invocation) error {
	args := make([]string, 0, len(h.args)+len(inv.Options)+5)
	args = append(args, h.args...)
	args = append(args, "--format", string(inv.Format))
	args = append(args, "--out", inv.DestRoot)
	args = append(args, inv.Options...)
	args = append(args, inv.Source)

	cmd := exec.CommandContext(ctx, h.executable, args...) //nolint:gosec // user provided command

	// Preserve the command name as configured in Args[0].
	if len(cmd.Args) > 0 {
		cmd.Args[0] = h.name
	}

	cmd.Dir = inv.SourceRoot
	cmd.Env = h.env
	cmd.Stdout = &logWriter{logger: h.logger, level: "info"}
	cmd.Stderr = &logWriter{logger: h.logger, level: "error"}

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		invErr := zerr.With(domain.ErrInvocation, "source", inv.Source)
		invErr = zerr.With(invErr, "exit_code", exitCode)
		return zerr.With(invErr, "cause", err.Error())
	}

	return nil
}

// ConcurrentSafe reports true: every invocation is an isolated process.
func (h *Handle) ConcurrentSafe() bool {
	return true
}

// Close releases nothing for subprocess handles; processes end with Invoke.
func (h *Handle) Close() error {
	return nil
}

type logWriter struct {
	logger ports.Logger
	level  string
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	lines := strings.Split(strings.TrimSuffix(string(p), "\n"), "\n")
	for _, line := range lines {
		if w.level == "info" {
			w.logger.Info(line)
		} else {
			w.logger.Error(zerr.New(line))
		}
	}
	return len(p), nil
}

// resolveEnvironment merges the system environment with the tool binding's
// overrides. PATH entries from the binding are prepended to the system PATH.
func resolveEnvironment(sysEnv []string, toolEnv map[string]string) []string {
	envMap := make(map[string]string)
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if ok {
			envMap[k] = v
		}
	}

	for k, v := range toolEnv {
		if k == "PATH" {
			if sysPath, exists := envMap["PATH"]; exists && sysPath != "" {
				envMap[k] = v + string(os.PathListSeparator) + sysPath
				continue
			}
		}
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}

// lookPath searches for an executable in the directories named by the PATH
// entry of the given environment.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
