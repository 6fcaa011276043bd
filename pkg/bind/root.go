package bind

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/statebind/statebind/internal/errors"
	"github.com/statebind/statebind/pkg/graph"
	"github.com/statebind/statebind/pkg/observe"
	"github.com/statebind/statebind/pkg/schedule"
)

// Method is a function-valued property bound to the reactive root.
// References to the root's own properties inside the method observe the
// reactive values.
type Method func(r *Root, args ...any) any

// Root is one assembled reactive object: observed raw properties,
// cached derivations, and a scheduler coalescing change notifications.
// A Root exclusively owns its dependency graph, computed cache, and
// pending update set.
type Root struct {
	cfg    config
	logger *slog.Logger

	props   *observe.Object
	methods map[string]Method

	deps  *graph.DepGraph
	cache *graph.Cache
	sched *schedule.Scheduler

	// mu protects timers.
	mu     sync.Mutex
	timers map[commitKey]*time.Timer

	closed atomic.Bool
}

// Build assembles data and derivs into a live reactive root.
//
// Non-function properties of data become observed values; entries of
// type Method become bound methods. Each derivation is analyzed for
// dependencies, registered in the reverse index, and exposed as a
// lazily-computed cached accessor. Assembly fails only on a derivation
// dependency cycle; other configuration problems degrade with a logged
// warning.
func Build(data map[string]any, derivs []graph.Def, opts ...Option) (*Root, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "bind")

	r := &Root{
		cfg:     cfg,
		logger:  logger,
		methods: make(map[string]Method),
		timers:  make(map[commitKey]*time.Timer),
		deps:    graph.New(),
	}

	// Partition raw data: methods stay out of the observed set.
	fields := make(map[string]any, len(data))
	for name, v := range data {
		if m, ok := v.(Method); ok {
			r.methods[name] = m
			continue
		}
		fields[name] = v
	}

	strategy := cfg.strategy
	if strategy == nil {
		strategy = observe.Default
	}
	if !cfg.deepReactivity {
		strategy = observe.Shallow
	}
	r.props = observe.NewObject(fields, r.handleChange, "", strategy)

	baseProps := make([]string, 0, len(fields))
	for name := range fields {
		baseProps = append(baseProps, name)
	}
	sort.Strings(baseProps)

	derivNames := make([]string, 0, len(derivs))
	for _, def := range derivs {
		derivNames = append(derivNames, def.Name)
	}

	analyzer := cfg.analyzer
	if analyzer == nil {
		analyzer = graph.TraceAnalyzer{Base: graph.MapView(observe.Snapshot(fields).(map[string]any))}
	}

	r.cache = graph.NewCache(r.deps, rootView{r}, logger)

	known := append(append([]string{}, baseProps...), derivNames...)
	for _, def := range derivs {
		if _, isProp := fields[def.Name]; isProp {
			logger.Warn("derivation name collides with a data property",
				"code", "B004", "derivation", def.Name)
		}

		resolved, err := analyzer.Analyze(def, known)
		if err != nil {
			// Non-fatal: with no resolved dependencies the derivation
			// degrades to computed-once, never invalidated.
			logger.Warn("dependency analysis degraded",
				"derivation", def.Name, "error", err)
		}
		r.deps.AddDerivation(def.Name, resolved)
		r.cache.Register(def)
	}

	if err := r.deps.ValidateDAG(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDerivationCycle, err)
	}

	r.cache.OnDerived(func(name string, value any) {
		cfg.recorder.DerivedForwarded(name)
		r.sched.Schedule(name, value)
	})

	r.sched = schedule.New(cfg.trigger, r.deliverFlush, logger)
	return r, nil
}

// Get returns the current value of a raw property or a derivation.
// Reading a derivation before its first computation computes and caches
// it.
func (r *Root) Get(name string) any {
	if r.cache.Has(name) {
		return r.cache.Get(name)
	}
	return r.props.Get(name)
}

// Set writes a top-level property through the root's write path:
// equality-gated wrap at the property's path, then scheduler
// notification, then computed-cache invalidation.
func (r *Root) Set(name string, value any) {
	if r.closed.Load() {
		return
	}
	r.props.Set(name, value)
}

// Delete removes a top-level property. Always observed.
func (r *Root) Delete(name string) {
	if r.closed.Load() {
		return
	}
	r.props.Delete(name)
}

// Object returns the property's value as an observable object, or nil.
func (r *Root) Object(name string) *observe.Object {
	o, _ := r.props.Get(name).(*observe.Object)
	return o
}

// List returns the property's value as an observable list, or nil.
func (r *Root) List(name string) *observe.List {
	l, _ := r.props.Get(name).(*observe.List)
	return l
}

// Collection returns the property's current value as a plain slice,
// for consumers that iterate it. An absent property yields an empty
// result; a present non-collection value yields a shape error, and the
// consumer should clear its presentation and treat the collection as
// empty.
func (r *Root) Collection(name string) ([]any, error) {
	v := observe.Snapshot(r.Get(name))
	if v == nil {
		return nil, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, errors.New("B100").WithDetail(
			fmt.Sprintf("property %q holds %T, not a collection", name, v))
	}
	return items, nil
}

// Call invokes a bound method with the root as receiver.
func (r *Root) Call(name string, args ...any) (any, error) {
	if r.closed.Load() {
		return nil, ErrRootClosed
	}
	m, ok := r.methods[name]
	if !ok {
		return nil, ErrUnknownMethod
	}
	return m(r, args...), nil
}

// Snapshot returns a plain, unwrapped copy of the raw properties.
func (r *Root) Snapshot() map[string]any {
	return r.props.Snapshot()
}

// Flush forces a synchronous delivery of the pending update set.
func (r *Root) Flush() {
	r.sched.Flush()
}

// Closed reports whether the root has been torn down.
func (r *Root) Closed() bool {
	return r.closed.Load()
}

// Close tears down the root: every outstanding delayed commit is
// cancelled synchronously, the pending update set is dropped, and any
// already-armed flush becomes a safe no-op.
func (r *Root) Close() {
	if r.closed.Swap(true) {
		return
	}

	r.mu.Lock()
	for key, t := range r.timers {
		t.Stop()
		delete(r.timers, key)
	}
	r.mu.Unlock()

	r.sched.Close()
	r.cache.Clear()
	r.deps.Clear()
}

// handleChange is the root's change handler: every elementary mutation
// anywhere in the observed graph arrives here. It forwards the
// per-mutation notification, schedules the affected top-level property,
// and cascades computed invalidation, in that order.
func (r *Root) handleChange(ev observe.ChangeEvent) {
	if r.closed.Load() {
		return
	}
	r.cfg.recorder.ChangeObserved(string(ev.Type))

	top := ev.TopLevel()
	if hook := r.cfg.onChange; hook != nil {
		r.safely(func() {
			hook(top, ev.Path, ev.Value, ev.Type, ev.Meta)
		})
	}

	r.sched.Schedule(top, r.props.Get(top))
	r.cache.InvalidateFrom(top)
}

// deliverFlush hands one batched flush to the consumer.
func (r *Root) deliverFlush(updates []schedule.Update) {
	if r.closed.Load() {
		return
	}
	r.cfg.recorder.FlushDelivered(len(updates))
	if hook := r.cfg.onFlush; hook != nil {
		hook(updates)
	}
}

// safely runs a consumer callback, keeping engine invariants intact
// when the callback panics.
func (r *Root) safely(fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("consumer callback panicked",
				"code", "B150",
				"panic", rec)
		}
	}()
	fn()
}

// rootView exposes the root to derivation functions: base properties
// resolve to their observed values, derivation names to cached results.
type rootView struct {
	r *Root
}

func (v rootView) Get(name string) any {
	return v.r.Get(name)
}
