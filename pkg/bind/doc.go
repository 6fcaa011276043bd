// Package bind assembles a plain data object and a set of derivation
// definitions into one live reactive root.
//
// Raw properties are wired through the observe package so in-place
// mutation at any depth is detected; derivations are analyzed,
// registered in the dependency graph, and exposed as lazily-computed
// cached accessors; every resulting change signal is routed into the
// update scheduler, which delivers one batched notification per
// scheduling quantum.
//
// The root is single-writer: all property reads and writes, change
// emission, and cascading invalidation execute synchronously and
// reentrantly within the calling turn. The only asynchronous boundary
// is the scheduler's flush.
package bind
