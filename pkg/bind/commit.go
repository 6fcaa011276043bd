package bind

import "time"

// commitKey identifies one pending delayed commit: the target property
// crossed with the identity of the input source writing it.
type commitKey struct {
	property string
	source   string
}

// CommitDelayed applies an input-driven write according to the root's
// update mode. In delayed mode the write is debounced per
// (property, source) key: a new commit for the same key cancels and
// replaces the outstanding one. Other modes commit immediately.
//
// Delayed commits are independent of the scheduler's batching; they are
// a coarser debounce applied before the write reaches the root.
func (r *Root) CommitDelayed(property, source string, value any) {
	if r.closed.Load() {
		return
	}
	if r.cfg.updateMode != UpdateDelayed || r.cfg.delay <= 0 {
		r.Set(property, value)
		return
	}

	key := commitKey{property: property, source: source}

	r.mu.Lock()
	if t := r.timers[key]; t != nil {
		t.Stop()
	}
	r.timers[key] = time.AfterFunc(r.cfg.delay, func() {
		r.mu.Lock()
		delete(r.timers, key)
		r.mu.Unlock()
		if r.closed.Load() {
			return
		}
		r.Set(property, value)
	})
	r.mu.Unlock()
}

// PendingCommits returns the number of outstanding delayed commits.
func (r *Root) PendingCommits() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.timers)
}
