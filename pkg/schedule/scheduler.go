package schedule

import (
	"log/slog"
	"sync"
)

// Update is one entry of a flush: a changed top-level property and its
// latest value within the quantum.
type Update struct {
	Property string
	Value    any
}

// FlushFunc consumes one batched flush. Updates arrive in the order the
// properties were first scheduled during the quantum.
type FlushFunc func([]Update)

// Scheduler accumulates changed top-level properties and performs
// exactly one downstream notification pass per scheduling quantum.
// Multiple schedules of the same property within one quantum coalesce
// to the last value written.
type Scheduler struct {
	// mu protects the pending set and flags.
	mu sync.Mutex

	trigger Trigger
	flush   FlushFunc
	logger  *slog.Logger

	order  []string
	latest map[string]any
	armed  bool
	closed bool
}

// New creates a scheduler delivering flushes through flush. A nil
// trigger defaults to Async.
func New(trigger Trigger, flush FlushFunc, logger *slog.Logger) *Scheduler {
	if trigger == nil {
		trigger = Async
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		trigger: trigger,
		flush:   flush,
		logger:  logger,
		latest:  make(map[string]any),
	}
}

// Schedule records that property changed, keeping value as its latest.
// The first schedule of a quantum opens the pending set and arms the
// trigger; subsequent schedules only update it.
func (s *Scheduler) Schedule(property string, value any) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if _, pending := s.latest[property]; !pending {
		s.order = append(s.order, property)
	}
	s.latest[property] = value

	arm := !s.armed
	s.armed = true
	s.mu.Unlock()

	if arm {
		s.trigger.Arm(s.Flush)
	}
}

// Pending returns the number of properties waiting for the next flush.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Flush delivers the pending set to the consumer in first-scheduled
// order and drains it. A flush with nothing pending, or after Close, is
// a no-op. The pending set is drained before the consumer runs, so a
// panicking consumer still leaves the scheduler consistent.
func (s *Scheduler) Flush() {
	s.mu.Lock()
	s.armed = false
	if s.closed || len(s.order) == 0 {
		s.mu.Unlock()
		return
	}
	updates := make([]Update, len(s.order))
	for i, prop := range s.order {
		updates[i] = Update{Property: prop, Value: s.latest[prop]}
	}
	s.order = nil
	s.latest = make(map[string]any)
	flush := s.flush
	s.mu.Unlock()

	if flush == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("flush consumer panicked",
				"code", "B150",
				"panic", r)
		}
	}()
	flush(updates)
}

// Close drops any pending updates and makes every later Schedule and
// Flush a no-op. An already-armed trigger firing after Close is safe.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.order = nil
	s.latest = make(map[string]any)
}
