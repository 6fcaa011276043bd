// Package graph implements the computed-dependency graph: analysis of
// which base properties a derivation reads, the reverse index from a
// property to its dependent derivations, and the memoizing cache that
// recomputes derivations with cascade when a dependency changes.
//
// Dependency discovery is a pluggable strategy behind the Analyzer
// interface. DeclaredAnalyzer consumes explicit dependency lists;
// TraceAnalyzer approximates the set by invoking the derivation once
// against a recording view. Both are approximations of the derivation's
// true read set and can be swapped without touching invalidation logic.
//
// Derivations must form a DAG. ValidateDAG checks this once at assembly
// and fails fast with a configuration error; invalidation itself does
// not detect cycles.
package graph
