package aggregate_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/weld/internal/core/domain"
	"go.trai.ch/weld/internal/engine/aggregate"
)

// recordingLogger captures log lines so tests can count computations and
// collision warnings.
type recordingLogger struct {
	mu    sync.Mutex
	infos []string
	warns []string
}

func (l *recordingLogger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, msg)
}

func (l *recordingLogger) Warn(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}

func (l *recordingLogger) Error(error) {}

func (l *recordingLogger) computations(module string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, msg := range l.infos {
		if msg == "aggregating module "+module {
			n++
		}
	}
	return n
}

func buildGraph(t *testing.T, modules ...domain.Module) *domain.ModuleGraph {
	t.Helper()
	g := domain.NewModuleGraph()
	for _, m := range modules {
		require.NoError(t, g.AddModule(&m))
	}
	return g
}

func TestAggregate_DiamondComputesSharedModuleOnce(t *testing.T) {
	// a depends on b and c, both of which depend on d.
	g := buildGraph(t,
		domain.Module{Name: "a", DependsOn: []string{"b", "c"}},
		domain.Module{Name: "b", DependsOn: []string{"d"}, Dependencies: []domain.Dependency{{Name: "from-b", Version: "1"}}},
		domain.Module{Name: "c", DependsOn: []string{"d"}, Dependencies: []domain.Dependency{{Name: "from-c", Version: "1"}}},
		domain.Module{Name: "d", Dependencies: []domain.Dependency{{Name: "from-d", Version: "1"}}},
	)

	logger := &recordingLogger{}
	agg := aggregate.New(g, logger)

	res, err := agg.Aggregate("a")
	require.NoError(t, err)

	assert.Equal(t, 1, logger.computations("d"))

	// d's declaration reaches the root through both branches; results are
	// append-only, so it appears twice.
	names := make([]string, 0, len(res.Dependencies))
	for _, d := range res.Dependencies {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"from-d", "from-b", "from-d", "from-c"}, names)
}

func TestAggregate_MemoizedAcrossCalls(t *testing.T) {
	g := buildGraph(t,
		domain.Module{Name: "a", DependsOn: []string{"shared"}},
		domain.Module{Name: "b", DependsOn: []string{"shared"}},
		domain.Module{Name: "shared"},
	)

	logger := &recordingLogger{}
	agg := aggregate.New(g, logger)

	_, err := agg.Aggregate("a")
	require.NoError(t, err)
	_, err = agg.Aggregate("b")
	require.NoError(t, err)

	assert.Equal(t, 1, logger.computations("shared"))
}

func TestAggregate_LocalFragmentWins(t *testing.T) {
	g := buildGraph(t,
		domain.Module{
			Name:      "web",
			DependsOn: []string{"core"},
			Fragments: []domain.Fragment{{ID: "routes", Content: "local"}},
		},
		domain.Module{
			Name:      "core",
			Fragments: []domain.Fragment{{ID: "routes", Content: "upstream"}},
		},
	)

	logger := &recordingLogger{}
	agg := aggregate.New(g, logger)

	res, err := agg.Aggregate("web")
	require.NoError(t, err)

	content, ok := res.Fragment("routes")
	require.True(t, ok)
	assert.Equal(t, "local", content)

	// The overwrite is surfaced as a warning, never an error.
	require.Len(t, logger.warns, 1)
	assert.Contains(t, logger.warns[0], `fragment "routes"`)
}

func TestAggregate_CycleFailsFast(t *testing.T) {
	g := domain.NewModuleGraph()
	a := domain.Module{Name: "a", DependsOn: []string{"b"}}
	b := domain.Module{Name: "b", DependsOn: []string{"a"}}
	require.NoError(t, g.AddModule(&a))
	require.NoError(t, g.AddModule(&b))

	logger := &recordingLogger{}
	agg := aggregate.New(g, logger)

	_, err := agg.Aggregate("a")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCyclicDependency))
	assert.True(t, strings.Contains(err.Error(), "a") && strings.Contains(err.Error(), "b"))

	// Nothing was computed.
	assert.Equal(t, 0, logger.computations("a"))
}

func TestAggregate_UnknownModule(t *testing.T) {
	g := buildGraph(t, domain.Module{Name: "a"})

	agg := aggregate.New(g, &recordingLogger{})

	_, err := agg.Aggregate("nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrModuleNotFound))
}

func TestAggregate_ConcurrentSharedUpstreamComputedOnce(t *testing.T) {
	g := buildGraph(t,
		domain.Module{Name: "a", DependsOn: []string{"shared"}},
		domain.Module{Name: "b", DependsOn: []string{"shared"}},
		domain.Module{Name: "shared", Dependencies: []domain.Dependency{{Name: "dep", Version: "1"}}},
	)

	logger := &recordingLogger{}
	agg := aggregate.New(g, logger)

	var wg sync.WaitGroup
	for _, name := range []string{"a", "b"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := agg.Aggregate(name); err != nil {
				t.Errorf("unexpected error aggregating %s: %v", name, err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, logger.computations("shared"))
}

func TestAggregate_ReturnedResultIsACopy(t *testing.T) {
	g := buildGraph(t,
		domain.Module{Name: "a", Fragments: []domain.Fragment{{ID: "x", Content: "orig"}}},
	)

	agg := aggregate.New(g, &recordingLogger{})

	res1, err := agg.Aggregate("a")
	require.NoError(t, err)
	res1.PutFragment(domain.Fragment{ID: "x", Content: "mutated"}, nil)

	res2, err := agg.Aggregate("a")
	require.NoError(t, err)
	content, _ := res2.Fragment("x")
	assert.Equal(t, "orig", content)
}
