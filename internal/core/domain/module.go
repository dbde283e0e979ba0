package domain

import (
	"iter"
	"slices"

	"go.trai.ch/zerr"
)

// ToolSpec describes the external tool binding for a module: the binary to
// invoke, its fixed arguments, and the source set whose fingerprint decides
// when a cached tool handle must be rebuilt (typically the tool's own
// configuration and plugin files).
type ToolSpec struct {
	Command     string
	Args        []string
	Sources     []string
	Environment map[string]string
}

// Module is a single build module: its local facts, its declared direct
// dependencies, the inputs fed to the generation step, and the tool binding.
type Module struct {
	Name         string
	DependsOn    []string
	Inputs       []string
	Dependencies []Dependency
	Fragments    []Fragment
	Tool         ToolSpec
}

// LocalFacts returns the module's own declarations as an AggregateResult.
func (m *Module) LocalFacts() *AggregateResult {
	res := NewAggregateResult()
	for _, d := range m.Dependencies {
		res.AddDependency(d)
	}
	for _, f := range m.Fragments {
		res.PutFragment(f, nil)
	}
	return res
}

// ModuleGraph is a directed acyclic graph of build modules.
// Cycles are a configuration error and are rejected by Validate.
type ModuleGraph struct {
	modules        map[string]Module
	executionOrder []string
}

// NewModuleGraph creates a new empty ModuleGraph.
func NewModuleGraph() *ModuleGraph {
	return &ModuleGraph{
		modules: make(map[string]Module),
	}
}

// AddModule adds a module to the graph.
// It returns an error if a module with the same name already exists.
func (g *ModuleGraph) AddModule(m *Module) error {
	if _, exists := g.modules[m.Name]; exists {
		return zerr.With(ErrModuleAlreadyExists, "module", m.Name)
	}
	g.modules[m.Name] = *m
	return nil
}

// Module returns the module with the given name.
func (g *ModuleGraph) Module(name string) (Module, error) {
	m, exists := g.modules[name]
	if !exists {
		return Module{}, zerr.With(ErrModuleNotFound, "module", name)
	}
	return m, nil
}

// Names returns all module names in sorted order.
func (g *ModuleGraph) Names() []string {
	names := make([]string, 0, len(g.modules))
	for name := range g.modules {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of modules in the graph.
func (g *ModuleGraph) Len() int {
	return len(g.modules)
}

// Validate checks that every declared dependency exists and that the graph is
// acyclic, using a depth-first topological sort. It populates the execution
// order on success. Roots are visited in sorted name order so the resulting
// order is deterministic.
func (g *ModuleGraph) Validate() error {
	g.executionOrder = make([]string, 0, len(g.modules))
	visited := make(map[string]int) // 0: unvisited, 1: visiting, 2: visited
	var path []string

	var visit func(name string) error
	visit = func(name string) error {
		visited[name] = 1
		path = append(path, name)

		module, exists := g.modules[name]
		if !exists {
			return zerr.With(ErrModuleNotFound, "module", name)
		}

		for _, dep := range module.DependsOn {
			if visited[dep] == 1 {
				return g.buildCycleError(path, dep)
			}
			if visited[dep] == 0 {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[name] = 2
		path = path[:len(path)-1]
		g.executionOrder = append(g.executionOrder, name)
		return nil
	}

	for _, name := range g.Names() {
		if visited[name] == 0 {
			if err := visit(name); err != nil {
				return err
			}
		}
	}

	return nil
}

// buildCycleError constructs an error carrying the cycle path metadata.
func (g *ModuleGraph) buildCycleError(path []string, dep string) error {
	cyclePath := ""
	startIdx := 0
	for i, node := range path {
		if node == dep {
			startIdx = i
			break
		}
	}
	for i := startIdx; i < len(path); i++ {
		cyclePath += path[i] + " -> "
	}
	cyclePath += dep
	return zerr.With(ErrCyclicDependency, "cycle", cyclePath)
}

// Walk returns an iterator that yields modules in execution order
// (dependencies before dependents). It assumes Validate() has been called
// and returned nil.
func (g *ModuleGraph) Walk() iter.Seq[Module] {
	return func(yield func(Module) bool) {
		for _, name := range g.executionOrder {
			if !yield(g.modules[name]) {
				return
			}
		}
	}
}
