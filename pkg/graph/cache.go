package graph

import (
	"log/slog"
	"sync"

	"github.com/statebind/statebind/pkg/observe"
)

// Cache memoizes derivation values and drives cascading invalidation
// through the reverse dependency index.
//
// Reads and invalidation are reentrant: a derivation computing may read
// other derivations through the view, which calls back into Get. The
// cache therefore never holds its lock while a derivation function
// runs. The engine's single-writer discipline makes this safe.
type Cache struct {
	graph *DepGraph

	// mu protects the maps below, never held across a computation.
	mu      sync.Mutex
	compute map[string]Fn
	values  map[string]any
	cached  map[string]bool
	always  map[string]bool
	static  map[string]bool

	view      View
	onDerived func(name string, value any)
	logger    *slog.Logger
}

// NewCache creates a cache over the given graph. Derivation functions
// read the root through view.
func NewCache(g *DepGraph, view View, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		graph:   g,
		compute: make(map[string]Fn),
		values:  make(map[string]any),
		cached:  make(map[string]bool),
		always:  make(map[string]bool),
		static:  make(map[string]bool),
		view:    view,
		logger:  logger,
	}
}

// Register stores a derivation's compute function. A nil function marks
// the derivation static: computed once (to nil) and never invalidated.
func (c *Cache) Register(def Def) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.compute[def.Name] = def.Fn
	if def.Fn == nil {
		c.static[def.Name] = true
	}
	if def.AlwaysNotify {
		c.always[def.Name] = true
	}
}

// OnDerived sets the callback invoked when an invalidated derivation's
// value changed. The callback typically forwards to the update
// scheduler.
func (c *Cache) OnDerived(fn func(name string, value any)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onDerived = fn
}

// Has reports whether name is a registered derivation.
func (c *Cache) Has(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.compute[name]
	return ok
}

// Get returns the cached value for name, computing and caching it on
// first read. A failed computation yields nil for this read.
func (c *Cache) Get(name string) any {
	c.mu.Lock()
	if c.cached[name] {
		v := c.values[name]
		c.mu.Unlock()
		return v
	}
	c.mu.Unlock()

	v := c.computeOne(name)

	c.mu.Lock()
	c.values[name] = v
	c.cached[name] = true
	c.mu.Unlock()
	return v
}

// InvalidateFrom recomputes every derivation that depends on changed,
// immediately, in registration order. A dependent whose fresh value
// differs from the cached one (or that is marked AlwaysNotify) is
// re-cached, forwarded through OnDerived, and used as the changed
// property for a recursive cascade.
//
// Cycles are not detected here; ValidateDAG rejects them at assembly.
func (c *Cache) InvalidateFrom(changed string) {
	for _, name := range c.graph.DependentsOf(changed) {
		c.mu.Lock()
		if c.static[name] {
			c.mu.Unlock()
			continue
		}
		old := c.values[name]
		wasCached := c.cached[name]
		forceNotify := c.always[name]
		c.mu.Unlock()

		fresh := c.computeOne(name)

		if wasCached && !forceNotify && observe.DeepEqual(old, fresh) {
			continue
		}

		c.mu.Lock()
		c.values[name] = fresh
		c.cached[name] = true
		notify := c.onDerived
		c.mu.Unlock()

		if notify != nil {
			notify(name, fresh)
		}
		c.InvalidateFrom(name)
	}
}

// Clear drops all cached values. Used on teardown.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = make(map[string]any)
	c.cached = make(map[string]bool)
}

// computeOne runs a derivation function, converting a panic into a
// logged derivation error and a nil result.
func (c *Cache) computeOne(name string) (v any) {
	c.mu.Lock()
	fn := c.compute[name]
	c.mu.Unlock()
	if fn == nil {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("derivation computation failed",
				"code", "B050",
				"derivation", name,
				"panic", r)
			v = nil
		}
	}()
	return fn(c.view)
}
