// Package aggregate implements transitive fact aggregation over the module
// graph: dependency declarations and generated-source fragments from all
// reachable modules, merged into one consolidated result.
package aggregate

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"go.trai.ch/weld/internal/core/domain"
	"go.trai.ch/weld/internal/core/ports"
	"go.trai.ch/zerr"
)

// Aggregator computes per-module aggregate results with memoization. Each
// module's result is computed at most once per Aggregator regardless of
// fan-in, which keeps diamond-shaped graphs linear instead of exponential.
//
// Traversal order is deterministic and documented: direct dependencies are
// merged in their declared order, and a module's local facts are merged last,
// so local fragment declarations win identifier collisions against transitive
// ones. Collisions are logged as warnings, never fatal.
//
// The memoization cache is safe for concurrent use; a per-module
// single-flight guard prevents duplicate computation when independent
// modules are aggregated in parallel and share upstream modules.
type Aggregator struct {
	graph  *domain.ModuleGraph
	logger ports.Logger

	mu    sync.RWMutex
	cache map[string]*domain.AggregateResult
	group singleflight.Group
}

// New creates an Aggregator over the given module graph.
func New(graph *domain.ModuleGraph, logger ports.Logger) *Aggregator {
	return &Aggregator{
		graph:  graph,
		logger: logger,
		cache:  make(map[string]*domain.AggregateResult),
	}
}

// Aggregate returns the consolidated facts for the named module and its
// transitive dependencies. A cycle anywhere in the reachable subgraph fails
// fast with domain.ErrCyclicDependency naming the cycle. The returned result
// is the caller's to mutate; the memoized value stays private.
func (a *Aggregator) Aggregate(moduleName string) (*domain.AggregateResult, error) {
	// Cycle detection runs up front on the reachable subgraph. The memoized
	// recursion below must only ever see an acyclic graph: recursing into a
	// cycle would self-deadlock on the single-flight key.
	if err := a.checkCycles(moduleName); err != nil {
		return nil, err
	}

	res, err := a.resultFor(moduleName)
	if err != nil {
		return nil, err
	}
	return res.Clone(), nil
}

// checkCycles walks the subgraph reachable from name with a three-state
// visited set and reports the first cycle found.
func (a *Aggregator) checkCycles(name string) error {
	visited := make(map[string]int) // 0: unvisited, 1: visiting, 2: visited
	var path []string

	var visit func(u string) error
	visit = func(u string) error {
		visited[u] = 1
		path = append(path, u)

		module, err := a.graph.Module(u)
		if err != nil {
			return err
		}

		for _, dep := range module.DependsOn {
			if visited[dep] == 1 {
				return cycleError(path, dep)
			}
			if visited[dep] == 0 {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		return nil
	}

	return visit(name)
}

func cycleError(path []string, dep string) error {
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
	return zerr.With(domain.ErrCyclicDependency, "cycle", cyclePath)
}

// resultFor returns the memoized aggregate for one module, computing it at
// most once.
func (a *Aggregator) resultFor(name string) (*domain.AggregateResult, error) {
	a.mu.RLock()
	if res, ok := a.cache[name]; ok {
		a.mu.RUnlock()
		return res, nil
	}
	a.mu.RUnlock()

	v, err, _ := a.group.Do(name, func() (any, error) {
		// Another flight may have populated the cache while we queued.
		a.mu.RLock()
		if res, ok := a.cache[name]; ok {
			a.mu.RUnlock()
			return res, nil
		}
		a.mu.RUnlock()

		res, err := a.compute(name)
		if err != nil {
			return nil, err
		}

		a.mu.Lock()
		a.cache[name] = res
		a.mu.Unlock()
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.AggregateResult), nil
}

// compute builds one module's aggregate: upstream results in declared order,
// then the module's own facts.
func (a *Aggregator) compute(name string) (*domain.AggregateResult, error) {
	module, err := a.graph.Module(name)
	if err != nil {
		return nil, err
	}

	a.logger.Info("aggregating module " + name)

	res := domain.NewAggregateResult()
	onCollision := a.collisionWarning(name)

	for _, dep := range module.DependsOn {
		depRes, err := a.resultFor(dep)
		if err != nil {
			return nil, err
		}
		res.Merge(depRes, onCollision)
	}

	// Local facts last so they win fragment ID collisions.
	res.Merge(module.LocalFacts(), onCollision)
	return res, nil
}

// collisionWarning returns a CollisionFunc that logs overwritten fragment IDs.
func (a *Aggregator) collisionWarning(module string) domain.CollisionFunc {
	return func(id, old, new string) {
		a.logger.Warn(fmt.Sprintf(
			"module %q: fragment %q redeclared, later content wins (%d -> %d bytes)",
			module, id, len(old), len(new),
		))
	}
}
