// Package config provides the configuration loader for weld.
package config

import (
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/weld/internal/core/domain"
	"go.trai.ch/weld/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*FileConfigLoader)(nil)

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct {
	Filename string
}

// Load reads the configuration from the given working directory. An absolute
// Filename is used as is; a relative one resolves against cwd.
func (l *FileConfigLoader) Load(cwd string) (*domain.ModuleGraph, error) {
	path := l.Filename
	if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}
	return Load(path)
}

// SetFilename points the loader at a different configuration file.
func (l *FileConfigLoader) SetFilename(name string) {
	l.Filename = name
}

// Load reads a configuration file from the given path and returns a
// validated domain.ModuleGraph.
func Load(path string) (*domain.ModuleGraph, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read config file")
	}

	var weldfile Weldfile
	if err := yaml.Unmarshal(data, &weldfile); err != nil {
		return nil, zerr.Wrap(err, "failed to parse config file")
	}

	g := domain.NewModuleGraph()
	moduleNames := make(map[string]bool)

	// First pass: collect all module names to verify dependencies later.
	for name := range weldfile.Modules {
		moduleNames[name] = true
	}

	// Second pass: create modules and add to the graph.
	for name, dto := range weldfile.Modules {
		if name == "all" {
			return nil, zerr.With(zerr.New("module name 'all' is reserved"), "module", name)
		}

		for _, dep := range dto.DependsOn {
			if !moduleNames[dep] {
				return nil, zerr.With(domain.ErrModuleNotFound, "missing_dependency", dep)
			}
		}

		deps, err := convertDependencies(name, dto.Deps)
		if err != nil {
			return nil, err
		}

		module := &domain.Module{
			Name:         name,
			DependsOn:    dto.DependsOn,
			Inputs:       canonicalizeStrings(dto.Inputs),
			Dependencies: deps,
			Fragments:    convertFragments(dto.Fragments),
			Tool: domain.ToolSpec{
				Command:     dto.Tool.Command,
				Args:        dto.Tool.Args,
				Sources:     dto.Tool.Sources,
				Environment: dto.Tool.Environment,
			},
		}

		if err := g.AddModule(module); err != nil {
			return nil, err
		}
	}

	// Reject cycles at load time; they are a configuration error.
	if err := g.Validate(); err != nil {
		return nil, err
	}

	return g, nil
}

func convertDependencies(module string, dtos []DependencyDTO) ([]domain.Dependency, error) {
	deps := make([]domain.Dependency, 0, len(dtos))
	for _, dto := range dtos {
		kind := domain.DependencyKind(dto.Kind)
		switch kind {
		case "":
			kind = domain.KindRuntime
		case domain.KindRuntime, domain.KindDev:
		default:
			err := zerr.With(zerr.New("invalid dependency kind"), "module", module)
			err = zerr.With(err, "dependency", dto.Name)
			return nil, zerr.With(err, "kind", dto.Kind)
		}
		deps = append(deps, domain.Dependency{
			Name:    dto.Name,
			Version: dto.Version,
			Kind:    kind,
		})
	}
	return deps, nil
}

// convertFragments returns fragments in sorted ID order so that repeated
// loads of the same file declare facts deterministically.
func convertFragments(m map[string]string) []domain.Fragment {
	if len(m) == 0 {
		return nil
	}
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	frags := make([]domain.Fragment, 0, len(ids))
	for _, id := range ids {
		frags = append(frags, domain.Fragment{ID: id, Content: m[id]})
	}
	return frags
}

func canonicalizeStrings(strs []string) []string {
	if len(strs) == 0 {
		return nil
	}

	sorted := make([]string, len(strs))
	copy(sorted, strs)
	slices.Sort(sorted)

	return slices.Compact(sorted)
}
