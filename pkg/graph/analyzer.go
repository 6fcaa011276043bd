package graph

import (
	"github.com/statebind/statebind/internal/errors"
)

// Analyzer discovers which of the known property names a derivation
// reads. Implementations are approximations: the result is a syntactic
// or observed read set, not a proof. The derivation's own name is never
// part of its result.
type Analyzer interface {
	// Analyze returns the subset of known that def depends on, in a
	// stable order. A nil def.Fn yields an empty set and a non-fatal
	// configuration error; the caller degrades the derivation rather
	// than aborting setup.
	Analyze(def Def, known []string) ([]string, error)
}

// DeclaredAnalyzer resolves dependencies from the explicit Deps list on
// the definition. The precise, opt-in mechanism: what is declared is
// depended on unconditionally, conditional reads included.
type DeclaredAnalyzer struct{}

// Analyze intersects def.Deps with known, preserving declaration order.
func (DeclaredAnalyzer) Analyze(def Def, known []string) ([]string, error) {
	if def.Fn == nil {
		return nil, errors.New("B001").WithDetail("derivation " + def.Name + " has no function")
	}
	knownSet := make(map[string]bool, len(known))
	for _, k := range known {
		knownSet[k] = true
	}
	var deps []string
	seen := make(map[string]bool, len(def.Deps))
	for _, d := range def.Deps {
		if d == def.Name || !knownSet[d] || seen[d] {
			continue
		}
		seen[d] = true
		deps = append(deps, d)
	}
	return deps, nil
}

// TraceAnalyzer discovers dependencies by invoking the derivation once
// against a recording view backed by a snapshot of the root's initial
// data. Reads through the view are recorded and intersected with the
// known property set.
//
// The trace under-approximates conditional reads: a branch not taken
// during the probe is not recorded. Derivations with data-dependent
// read sets should declare Deps explicitly.
type TraceAnalyzer struct {
	// Base resolves property values during the probe. Typically a
	// MapView over the root's initial data.
	Base View
}

// Analyze runs the probe. A panic inside the derivation is recovered;
// the dependencies recorded up to that point are returned together with
// a non-fatal analysis warning.
func (a TraceAnalyzer) Analyze(def Def, known []string) (deps []string, err error) {
	if def.Fn == nil {
		return nil, errors.New("B001").WithDetail("derivation " + def.Name + " has no function")
	}

	rec := &recordingView{
		base:  a.Base,
		known: make(map[string]bool, len(known)),
		seen:  make(map[string]bool),
	}
	for _, k := range known {
		rec.known[k] = true
	}

	defer func() {
		if r := recover(); r != nil {
			deps = rec.withoutSelf(def.Name)
			err = errors.Newf(errors.CategoryConfig,
				"dependency probe for %q panicked: %v", def.Name, r).WithSuggestion(
				"declare dependencies explicitly with Deps")
		}
	}()

	def.Fn(rec)
	return rec.withoutSelf(def.Name), nil
}

// recordingView records property reads during an analysis probe.
type recordingView struct {
	base  View
	known map[string]bool
	seen  map[string]bool
	order []string
}

func (r *recordingView) Get(name string) any {
	if r.known[name] && !r.seen[name] {
		r.seen[name] = true
		r.order = append(r.order, name)
	}
	if r.base == nil {
		return nil
	}
	return r.base.Get(name)
}

func (r *recordingView) withoutSelf(self string) []string {
	deps := make([]string, 0, len(r.order))
	for _, d := range r.order {
		if d != self {
			deps = append(deps, d)
		}
	}
	return deps
}
