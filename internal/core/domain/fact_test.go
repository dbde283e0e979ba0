package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/weld/internal/core/domain"
)

func TestAggregateResult_DependenciesAppendOnly(t *testing.T) {
	r := domain.NewAggregateResult()
	r.AddDependency(domain.Dependency{Name: "react", Version: "18.2.0", Kind: domain.KindRuntime})
	r.AddDependency(domain.Dependency{Name: "react", Version: "17.0.0", Kind: domain.KindRuntime})

	// Duplicates are permitted; later declarations never overwrite earlier ones.
	require.Len(t, r.Dependencies, 2)
	assert.Equal(t, "18.2.0", r.Dependencies[0].Version)
	assert.Equal(t, "17.0.0", r.Dependencies[1].Version)
}

func TestAggregateResult_FragmentLastWriterWins(t *testing.T) {
	var collisions []string
	onCollision := func(id, old, new string) {
		collisions = append(collisions, id)
	}

	r := domain.NewAggregateResult()
	r.PutFragment(domain.Fragment{ID: "x", Content: "a"}, onCollision)
	r.PutFragment(domain.Fragment{ID: "x", Content: "b"}, onCollision)

	content, ok := r.Fragment("x")
	require.True(t, ok)
	assert.Equal(t, "b", content)
	assert.Equal(t, []string{"x"}, collisions)

	// Re-putting identical content is not a collision.
	r.PutFragment(domain.Fragment{ID: "x", Content: "b"}, onCollision)
	assert.Len(t, collisions, 1)
}

func TestAggregateResult_MergeOrderSensitive(t *testing.T) {
	upstream := domain.NewAggregateResult()
	upstream.PutFragment(domain.Fragment{ID: "x", Content: "a"}, nil)
	upstream.AddDependency(domain.Dependency{Name: "lodash", Version: "4.17.21", Kind: domain.KindRuntime})

	local := domain.NewAggregateResult()
	local.PutFragment(domain.Fragment{ID: "x", Content: "b"}, nil)

	merged := domain.NewAggregateResult()
	merged.Merge(upstream, nil)
	merged.Merge(local, nil)

	// Local facts merged last win the identifier collision.
	content, ok := merged.Fragment("x")
	require.True(t, ok)
	assert.Equal(t, "b", content)
	require.Len(t, merged.Dependencies, 1)
}

func TestAggregateResult_FragmentsPreserveFirstSeenOrder(t *testing.T) {
	r := domain.NewAggregateResult()
	r.PutFragment(domain.Fragment{ID: "b", Content: "1"}, nil)
	r.PutFragment(domain.Fragment{ID: "a", Content: "2"}, nil)
	r.PutFragment(domain.Fragment{ID: "b", Content: "3"}, nil)

	frags := r.Fragments()
	require.Len(t, frags, 2)
	assert.Equal(t, "b", frags[0].ID)
	assert.Equal(t, "3", frags[0].Content)
	assert.Equal(t, "a", frags[1].ID)
}

func TestAggregateResult_CloneIsIndependent(t *testing.T) {
	r := domain.NewAggregateResult()
	r.PutFragment(domain.Fragment{ID: "x", Content: "a"}, nil)

	c := r.Clone()
	c.PutFragment(domain.Fragment{ID: "x", Content: "mutated"}, nil)
	c.AddDependency(domain.Dependency{Name: "extra"})

	content, _ := r.Fragment("x")
	assert.Equal(t, "a", content)
	assert.Empty(t, r.Dependencies)
}
