// Package observe wraps plain object/array graphs so that in-place
// mutation is observable.
//
// Data is modeled as map[string]any / []any trees, the shape produced by
// decoding JSON. Wrapping a tree yields *Object and *List nodes that
// intercept property writes, deletions, and in-place list mutation, and
// report each elementary mutation as a ChangeEvent carrying the
// dot-delimited path of the mutated location.
//
// Two wrapping strategies are available behind the Strategy interface:
// Eager wraps every qualifying nested value before the parent node is
// returned, Lazy wraps a nested value on first access. Both produce
// identical ChangeEvent sequences for the same sequence of operations.
//
// Wrapping is idempotent: a value that is already a node is returned
// as-is (re-rooted at the requested path), never instrumented twice.
package observe
