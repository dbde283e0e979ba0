// Package app implements the application layer for weld.
package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/weld/internal/adapters/shell"
	"go.trai.ch/weld/internal/core/domain"
	"go.trai.ch/weld/internal/core/ports"
	"go.trai.ch/weld/internal/engine/aggregate"
	"go.trai.ch/weld/internal/engine/generate"
	"go.trai.ch/weld/internal/engine/session"
	"go.trai.ch/zerr"
)

// App represents the main application logic: it loads the module graph,
// maintains one cached session per tool binding, and drives generation,
// aggregation and manifest emission.
type App struct {
	configLoader  ports.ConfigLoader
	fingerprinter ports.Fingerprinter
	factoryMaker  shell.FactoryMaker
	generator     *generate.Generator
	manifest      ports.ManifestWriter
	store         ports.GenerationInfoStore
	telemetry     ports.Telemetry
	logger        ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	fingerprinter ports.Fingerprinter,
	factoryMaker shell.FactoryMaker,
	generator *generate.Generator,
	manifest ports.ManifestWriter,
	store ports.GenerationInfoStore,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *App {
	return &App{
		configLoader:  loader,
		fingerprinter: fingerprinter,
		factoryMaker:  factoryMaker,
		generator:     generator,
		manifest:      manifest,
		store:         store,
		telemetry:     telemetry,
		logger:        logger,
	}
}

// SetConfigFile points the configuration loader at a non-default file path.
// Loaders that do not support repointing ignore the call.
func (a *App) SetConfigFile(path string) {
	if l, ok := a.configLoader.(interface{ SetFilename(string) }); ok {
		l.SetFilename(path)
	}
}

// Generate runs the generation step for the given target modules and their
// transitive dependencies, dependencies first, then writes a manifest of the
// aggregated facts into each target module's output directory.
func (a *App) Generate(ctx context.Context, targets []string, outDir string, opts domain.GenerateOptions) error {
	if len(targets) == 0 {
		return domain.ErrNoModulesSpecified
	}

	graph, err := a.configLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	reachable, err := reachableSet(graph, targets)
	if err != nil {
		return err
	}

	// One cached session per logical tool binding: modules sharing the same
	// binding share the session, so the expensive handle construction
	// happens once per binding per build, not once per module.
	sessions := make(map[string]*session.Session)
	defer func() {
		for _, sess := range sessions {
			if closeErr := sess.Close(); closeErr != nil {
				a.logger.Warn("failed to close session: " + closeErr.Error())
			}
		}
	}()

	for module := range graph.Walk() {
		if !reachable[module.Name] {
			continue
		}
		if err := a.generateModule(ctx, module, outDir, opts, sessions); err != nil {
			return zerr.With(zerr.Wrap(err, "generation failed"), "module", module.Name)
		}
	}

	aggregator := aggregate.New(graph, a.logger)
	for _, target := range targets {
		result, err := aggregator.Aggregate(target)
		if err != nil {
			return err
		}
		path, err := a.manifest.Write(result, filepath.Join(outDir, target))
		if err != nil {
			return err
		}
		a.logger.Info("wrote " + path)
	}

	return nil
}

// Manifest aggregates facts for one module and writes its manifest.
func (a *App) Manifest(_ context.Context, target string, outDir string) (string, error) {
	graph, err := a.configLoader.Load(".")
	if err != nil {
		return "", zerr.Wrap(err, "failed to load configuration")
	}

	aggregator := aggregate.New(graph, a.logger)
	result, err := aggregator.Aggregate(target)
	if err != nil {
		return "", err
	}

	return a.manifest.Write(result, filepath.Join(outDir, target))
}

// generateModule runs one module's generation step, consulting the store to
// skip modules whose inputs are unchanged since the last completed build.
func (a *App) generateModule(
	ctx context.Context,
	module domain.Module,
	outDir string,
	opts domain.GenerateOptions,
	sessions map[string]*session.Session,
) error {
	if module.Tool.Command == "" || len(module.Inputs) == 0 {
		// Facts-only module: nothing to generate.
		return nil
	}

	destDir := filepath.Join(outDir, module.Name)
	_, vertex := a.telemetry.Record(ctx, "module "+module.Name)

	inputs, err := a.resolveInputs(module.Inputs)
	if err != nil {
		vertex.Complete(err)
		return err
	}

	stateFp, err := a.fingerprinter.Fingerprint(append(append([]string{}, module.Tool.Sources...), inputs...))
	if err != nil {
		vertex.Complete(err)
		return err
	}

	if a.unchanged(module.Name, stateFp, destDir) {
		a.logger.Info("module " + module.Name + " unchanged, skipping generation")
		vertex.Cached()
		return nil
	}

	sess := a.sessionFor(sessions, module.Tool)
	result, err := a.generator.Run(ctx, sess, module.Tool.Sources, inputs, ".", destDir, opts)
	if err != nil {
		vertex.Complete(err)
		return err
	}
	vertex.Complete(nil)

	return a.store.Put(domain.GenerationInfo{
		Module:      module.Name,
		Fingerprint: stateFp.String(),
		OutputDir:   result.OutputDir,
		Generated:   len(result.Files) - result.Failed,
		Timestamp:   time.Now(),
	})
}

// unchanged reports whether the module's last recorded generation matches the
// current fingerprint and its output directory still exists.
func (a *App) unchanged(module string, fp domain.Fingerprint, destDir string) bool {
	info, err := a.store.Get(module)
	if err != nil || info == nil || info.Fingerprint != fp.String() {
		return false
	}
	if _, statErr := os.Stat(destDir); statErr != nil {
		return false
	}
	return true
}

// sessionFor returns the session for the given tool binding, creating it on
// first use. Bindings are keyed by command, arguments and source set.
func (a *App) sessionFor(sessions map[string]*session.Session, spec domain.ToolSpec) *session.Session {
	key := spec.Command + "\x00" + strings.Join(spec.Args, "\x00") + "\x00" + strings.Join(spec.Sources, "\x00")
	if sess, ok := sessions[key]; ok {
		return sess
	}
	sess := session.New(a.factoryMaker(spec), a.fingerprinter, a.logger)
	sessions[key] = sess
	return sess
}

// resolveInputs expands glob patterns into concrete files. A pattern with no
// matches, or a plain path that does not exist, is a missing input.
func (a *App) resolveInputs(patterns []string) ([]string, error) {
	var inputs []string
	for _, pattern := range patterns {
		if _, err := os.Stat(pattern); err == nil {
			inputs = append(inputs, pattern)
			continue
		}
		matches, err := filepath.Glob(pattern)
		if err != nil || len(matches) == 0 {
			return nil, zerr.With(domain.ErrInputNotFound, "path", pattern)
		}
		inputs = append(inputs, matches...)
	}
	return inputs, nil
}

// reachableSet collects the targets and all their transitive dependencies.
func reachableSet(graph *domain.ModuleGraph, targets []string) (map[string]bool, error) {
	reachable := make(map[string]bool)

	var visit func(name string) error
	visit = func(name string) error {
		if reachable[name] {
			return nil
		}
		module, err := graph.Module(name)
		if err != nil {
			return err
		}
		reachable[name] = true
		for _, dep := range module.DependsOn {
			if err := visit(dep); err != nil {
				return err
			}
		}
		return nil
	}

	for _, target := range targets {
		if err := visit(target); err != nil {
			return nil, err
		}
	}
	return reachable, nil
}
