// Package domain contains the core domain models for cached tool sessions,
// the module graph and dependency aggregation.
package domain

// DependencyKind classifies a declared dependency.
type DependencyKind string

const (
	// KindRuntime marks a dependency required at runtime.
	KindRuntime DependencyKind = "runtime"
	// KindDev marks a dependency required only during development or build.
	KindDev DependencyKind = "dev"
)

// Dependency is a single declared dependency fact.
// It is immutable once produced.
type Dependency struct {
	Name    string
	Version string
	Kind    DependencyKind
}

// Fragment is a named generated-source fragment fact.
// It is immutable once produced.
type Fragment struct {
	ID      string
	Content string
}

// CollisionFunc is invoked when merging overwrites a fragment ID that already
// holds different content. It is informational; merging continues regardless.
type CollisionFunc func(id, old, new string)

// AggregateResult is the consolidated outcome of aggregating facts over a
// module and its transitive dependencies.
//
// Dependencies are append-only: duplicates are permitted and later
// declarations never overwrite earlier ones. Fragments are last-writer-wins
// on ID collision, which makes merge order observable; callers must merge
// upstream results before local facts so that local declarations win.
type AggregateResult struct {
	// Dependencies in traversal order, duplicates preserved.
	Dependencies []Dependency

	// fragments maps fragment ID to content; fragmentOrder preserves
	// first-seen order for deterministic serialization.
	fragments     map[string]string
	fragmentOrder []string
}

// NewAggregateResult creates an empty AggregateResult.
func NewAggregateResult() *AggregateResult {
	return &AggregateResult{
		fragments: make(map[string]string),
	}
}

// AddDependency appends a dependency fact.
func (r *AggregateResult) AddDependency(d Dependency) {
	r.Dependencies = append(r.Dependencies, d)
}

// PutFragment stores a fragment, overwriting any previous content for the
// same ID. If onCollision is non-nil it is called when existing content is
// replaced by different content.
func (r *AggregateResult) PutFragment(f Fragment, onCollision CollisionFunc) {
	old, exists := r.fragments[f.ID]
	if !exists {
		r.fragmentOrder = append(r.fragmentOrder, f.ID)
	} else if old != f.Content && onCollision != nil {
		onCollision(f.ID, old, f.Content)
	}
	r.fragments[f.ID] = f.Content
}

// Fragment returns the content for the given fragment ID.
func (r *AggregateResult) Fragment(id string) (string, bool) {
	content, ok := r.fragments[id]
	return content, ok
}

// Fragments returns all fragments in first-seen order.
func (r *AggregateResult) Fragments() []Fragment {
	res := make([]Fragment, 0, len(r.fragmentOrder))
	for _, id := range r.fragmentOrder {
		res = append(res, Fragment{ID: id, Content: r.fragments[id]})
	}
	return res
}

// Merge appends all facts from other into r. Dependency merging is
// associative and commutative up to ordering; fragment merging is
// last-writer-wins, so other's fragments win collisions against r's.
func (r *AggregateResult) Merge(other *AggregateResult, onCollision CollisionFunc) {
	if other == nil {
		return
	}
	r.Dependencies = append(r.Dependencies, other.Dependencies...)
	for _, id := range other.fragmentOrder {
		r.PutFragment(Fragment{ID: id, Content: other.fragments[id]}, onCollision)
	}
}

// Clone returns a deep copy of r. Aggregation memoizes per-module results;
// callers merge into clones so the memoized value stays immutable.
func (r *AggregateResult) Clone() *AggregateResult {
	c := NewAggregateResult()
	c.Dependencies = append(c.Dependencies, r.Dependencies...)
	for _, id := range r.fragmentOrder {
		c.fragmentOrder = append(c.fragmentOrder, id)
		c.fragments[id] = r.fragments[id]
	}
	return c
}
