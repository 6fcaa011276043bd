// Package statebind provides the public API for the statebind engine.
//
// This is the recommended import for most applications:
//
//	import "github.com/statebind/statebind"
//
// Usage:
//
//	root, err := statebind.Build(
//		map[string]any{
//			"user":  map[string]any{"name": "Ada"},
//			"tasks": []any{},
//		},
//		[]statebind.Def{
//			{Name: "taskCount", Fn: func(v statebind.View) any {
//				return len(statebind.Snapshot(v.Get("tasks")).([]any))
//			}},
//		},
//		statebind.OnFlush(func(updates []statebind.Update) {
//			// one call per quantum with all changed top-level properties
//		}),
//	)
package statebind

import (
	"github.com/statebind/statebind/pkg/bind"
	"github.com/statebind/statebind/pkg/graph"
	"github.com/statebind/statebind/pkg/observe"
	"github.com/statebind/statebind/pkg/schedule"
)

// =============================================================================
// Assembly (pkg/bind)
// =============================================================================

// Root is an assembled reactive object.
type Root = bind.Root

// Method is a function-valued property bound to a root.
type Method = bind.Method

// Option configures Build.
type Option = bind.Option

// UpdateMode selects when flushes are delivered.
type UpdateMode = bind.UpdateMode

const (
	UpdateImmediate = bind.UpdateImmediate
	UpdateDelayed   = bind.UpdateDelayed
	UpdateChange    = bind.UpdateChange
)

// Build assembles data and derivations into a live reactive root.
func Build(data map[string]any, derivs []Def, opts ...Option) (*Root, error) {
	return bind.Build(data, derivs, opts...)
}

// Sentinel errors.
var (
	ErrRootClosed      = bind.ErrRootClosed
	ErrUnknownMethod   = bind.ErrUnknownMethod
	ErrDerivationCycle = bind.ErrDerivationCycle
)

// Re-exported options.
var (
	DeepReactivity = bind.DeepReactivity
	WithUpdateMode = bind.WithUpdateMode
	WithDelay      = bind.WithDelay
	WithStrategy   = bind.WithStrategy
	WithAnalyzer   = bind.WithAnalyzer
	WithTrigger    = bind.WithTrigger
	WithLogger     = bind.WithLogger
	OnChange       = bind.OnChange
	OnFlush        = bind.OnFlush
	WithHierarchy  = bind.WithHierarchy
	WithRecorder   = bind.WithRecorder
)

// =============================================================================
// Derivations (pkg/graph)
// =============================================================================

// Def declares one derived property.
type Def = graph.Def

// View resolves property names to current values inside a derivation.
type View = graph.View

// Fn is a derivation function.
type Fn = graph.Fn

// DeclaredAnalyzer resolves dependencies from the explicit Deps list.
type DeclaredAnalyzer = graph.DeclaredAnalyzer

// TraceAnalyzer discovers dependencies with a recording probe run.
type TraceAnalyzer = graph.TraceAnalyzer

// =============================================================================
// Observation (pkg/observe)
// =============================================================================

// Object is an observed map node.
type Object = observe.Object

// List is an observed slice node.
type List = observe.List

// ChangeEvent describes one elementary mutation.
type ChangeEvent = observe.ChangeEvent

// Observation strategies.
var (
	Eager   = observe.Eager
	Lazy    = observe.Lazy
	Shallow = observe.Shallow
)

// Snapshot returns a plain, unwrapped copy of v.
func Snapshot(v any) any {
	return observe.Snapshot(v)
}

// =============================================================================
// Scheduling (pkg/schedule)
// =============================================================================

// Update is one coalesced property change in a flush.
type Update = schedule.Update

// ManualTrigger closes scheduling quanta deterministically. Meant for
// tests.
type ManualTrigger = schedule.ManualTrigger
