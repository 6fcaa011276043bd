package graph

import (
	"strings"
	"sync"

	"github.com/statebind/statebind/internal/errors"
)

// DepGraph holds the forward map (derivation -> depended-on properties)
// and the reverse index (property -> dependent derivations). A key in
// the reverse index may be a base property or another derivation's
// name, which is what makes multi-level cascades work.
//
// The graph is built once at assembly and only grows; it is cleared
// wholesale on teardown.
type DepGraph struct {
	mu sync.RWMutex

	// forward maps derivation name -> its dependencies.
	forward map[string][]string

	// reverse maps property name -> derivations depending on it,
	// in registration order.
	reverse map[string][]string

	// derivations is the set of registered derivation names.
	derivations map[string]bool
}

// New creates an empty dependency graph.
func New() *DepGraph {
	return &DepGraph{
		forward:     make(map[string][]string),
		reverse:     make(map[string][]string),
		derivations: make(map[string]bool),
	}
}

// AddDerivation registers a derivation with its resolved dependency
// set. The derivation's own name is excluded from its dependencies so a
// derivation is never treated as depending on itself.
func (g *DepGraph) AddDerivation(name string, deps []string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.derivations[name] = true
	for _, dep := range deps {
		if dep == name {
			continue
		}
		g.forward[name] = appendUnique(g.forward[name], dep)
		g.reverse[dep] = appendUnique(g.reverse[dep], name)
	}
}

// DependentsOf returns the derivations that depend on prop, in
// registration order. The returned slice is a copy.
func (g *DepGraph) DependentsOf(prop string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	deps, ok := g.reverse[prop]
	if !ok {
		return nil
	}
	out := make([]string, len(deps))
	copy(out, deps)
	return out
}

// DependenciesOf returns the resolved dependency set of a derivation.
func (g *DepGraph) DependenciesOf(name string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	deps, ok := g.forward[name]
	if !ok {
		return nil
	}
	out := make([]string, len(deps))
	copy(out, deps)
	return out
}

// IsDerivation reports whether name is a registered derivation.
func (g *DepGraph) IsDerivation(name string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.derivations[name]
}

// Derivations returns the registered derivation names in no particular
// order.
func (g *DepGraph) Derivations() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	names := make([]string, 0, len(g.derivations))
	for name := range g.derivations {
		names = append(names, name)
	}
	return names
}

// ValidateDAG verifies that derivation-to-derivation edges form a DAG.
// Invalidation recurses along these edges without cycle detection, so a
// cycle is rejected once, here, with a configuration error naming the
// cycle.
func (g *DepGraph) ValidateDAG() error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	const (
		unvisited = 0
		visiting  = 1
		visited   = 2
	)
	state := make(map[string]int, len(g.derivations))

	var stack []string
	var walk func(name string) error
	walk = func(name string) error {
		state[name] = visiting
		stack = append(stack, name)
		for _, dep := range g.forward[name] {
			if !g.derivations[dep] {
				continue
			}
			switch state[dep] {
			case visiting:
				cycle := append(stack[cycleStart(stack, dep):], dep)
				return errors.New("B003").WithDetail(
					"cycle: " + strings.Join(cycle, " -> "))
			case unvisited:
				if err := walk(dep); err != nil {
					return err
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[name] = visited
		return nil
	}

	for name := range g.derivations {
		if state[name] == unvisited {
			if err := walk(name); err != nil {
				return err
			}
		}
	}
	return nil
}

// Clear drops all entries. Used on teardown.
func (g *DepGraph) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.forward = make(map[string][]string)
	g.reverse = make(map[string][]string)
	g.derivations = make(map[string]bool)
}

func cycleStart(stack []string, name string) int {
	for i, s := range stack {
		if s == name {
			return i
		}
	}
	return 0
}

func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}
