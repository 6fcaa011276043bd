package bind

import (
	"log/slog"
	"time"

	"github.com/statebind/statebind/pkg/graph"
	"github.com/statebind/statebind/pkg/observe"
	"github.com/statebind/statebind/pkg/schedule"
)

// UpdateMode is the default commit policy for external input-driven
// writes. It is consumed by CommitDelayed, not by the scheduler itself.
type UpdateMode string

const (
	// UpdateImmediate commits every write as it arrives.
	UpdateImmediate UpdateMode = "immediate"

	// UpdateDelayed debounces writes per (property, source) key.
	UpdateDelayed UpdateMode = "delayed"

	// UpdateChange commits when the source signals a completed change.
	// From the root's perspective this behaves like immediate.
	UpdateChange UpdateMode = "change"
)

// ChangeHook receives one call per elementary mutation.
type ChangeHook func(topLevel, path string, value any, changeType observe.ChangeType, meta observe.Meta)

// FlushHook receives one call per scheduling quantum with all changed
// top-level properties and their final values, in first-scheduled order.
type FlushHook func([]schedule.Update)

type config struct {
	deepReactivity bool
	updateMode     UpdateMode
	delay          time.Duration

	strategy  observe.Strategy
	analyzer  graph.Analyzer
	trigger   schedule.Trigger
	logger    *slog.Logger
	onChange  ChangeHook
	onFlush   FlushHook
	hierarchy Hierarchy
	recorder  Recorder
}

func defaultConfig() config {
	return config{
		deepReactivity: true,
		updateMode:     UpdateChange,
		delay:          250 * time.Millisecond,
		recorder:       nopRecorder{},
	}
}

// Option configures a root at assembly time.
type Option func(*config)

// DeepReactivity controls recursive wrapping of nested structures.
// When disabled, only top-level properties become observable; nested
// values must be reassigned through the root to be observed.
func DeepReactivity(enabled bool) Option {
	return func(c *config) { c.deepReactivity = enabled }
}

// WithUpdateMode sets the default commit policy for CommitDelayed.
func WithUpdateMode(mode UpdateMode) Option {
	return func(c *config) { c.updateMode = mode }
}

// WithDelay sets the debounce delay used when the update mode is
// delayed.
func WithDelay(d time.Duration) Option {
	return func(c *config) { c.delay = d }
}

// WithStrategy selects the wrapping strategy for nested values. The
// default is observe.Eager.
func WithStrategy(s observe.Strategy) Option {
	return func(c *config) { c.strategy = s }
}

// WithAnalyzer selects the dependency analysis strategy. The default is
// a graph.TraceAnalyzer over the root's initial data.
func WithAnalyzer(a graph.Analyzer) Option {
	return func(c *config) { c.analyzer = a }
}

// WithTrigger selects the scheduling quantum trigger. The default
// defers flushes to the next task-queue turn; tests install a
// schedule.ManualTrigger.
func WithTrigger(t schedule.Trigger) Option {
	return func(c *config) { c.trigger = t }
}

// WithLogger sets the root's logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// OnChange installs the per-mutation notification hook.
func OnChange(hook ChangeHook) Option {
	return func(c *config) { c.onChange = hook }
}

// OnFlush installs the batched notification hook.
func OnFlush(hook FlushHook) Option {
	return func(c *config) { c.onFlush = hook }
}

// WithHierarchy injects the parent/child collaborator behind the
// root's pass-through hooks.
func WithHierarchy(h Hierarchy) Option {
	return func(c *config) { c.hierarchy = h }
}

// WithRecorder installs an instrumentation recorder.
func WithRecorder(r Recorder) Option {
	return func(c *config) {
		if r != nil {
			c.recorder = r
		}
	}
}
