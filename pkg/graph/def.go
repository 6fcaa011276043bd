package graph

// View provides read access to a reactive root's properties.
// Derivation functions receive a View instead of closing over the root
// directly so that the analyzer can substitute a recording view.
type View interface {
	// Get returns the current value of a top-level property or another
	// derivation's cached result.
	Get(name string) any
}

// MapView adapts a plain map to the View interface. Used for analysis
// probes and tests.
type MapView map[string]any

// Get returns the value for name, or nil.
func (m MapView) Get(name string) any { return m[name] }

// Fn computes a derivation's value from a view of the root.
type Fn func(View) any

// Def describes one derivation: its name, its function, and optional
// analysis hints. Defs are consumed once at root assembly and are
// immutable thereafter; dependencies are not re-analyzed after setup.
type Def struct {
	// Name is the derivation's property name on the root.
	Name string

	// Fn computes the value. A nil Fn is a configuration error: the
	// derivation degrades to a one-time-computed, never-invalidated
	// value.
	Fn Fn

	// Deps optionally declares the dependency set explicitly. When
	// non-empty, DeclaredAnalyzer uses it verbatim (intersected with
	// the known property set) and no trace probe runs.
	Deps []string

	// AlwaysNotify forwards a change downstream even when the freshly
	// computed value is deeply equal to the cached one. Set for
	// derivations a consumer iterates as a collection, where
	// reference-stable mutation must still trigger an update.
	AlwaysNotify bool
}
