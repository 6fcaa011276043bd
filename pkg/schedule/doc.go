// Package schedule coalesces many synchronous mutations into a single
// batched notification per scheduling quantum.
//
// A Scheduler accumulates the set of top-level property names that
// changed since the last flush, keeping the latest value per property
// in first-scheduled order. Arming happens once per quantum through a
// Trigger; the default trigger defers the flush to the next available
// task-queue turn, and ManualTrigger gives tests deterministic control
// over when the quantum ends.
package schedule
