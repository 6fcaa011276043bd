package schedule

import (
	"sync"
	"time"
)

// Trigger arranges for a flush to run at the end of the current
// scheduling quantum. Arm is called at most once per open quantum.
type Trigger interface {
	Arm(fire func())
}

// Async defers the flush to the next available task-queue turn. This is
// the production trigger: all mutations within the current synchronous
// turn coalesce into one flush.
var Async Trigger = asyncTrigger{}

type asyncTrigger struct{}

func (asyncTrigger) Arm(fire func()) {
	time.AfterFunc(0, fire)
}

// ManualTrigger holds the armed flush until Fire is called. Tests use
// it to close a quantum deterministically.
type ManualTrigger struct {
	mu   sync.Mutex
	fire func()
}

// Arm stores the flush function.
func (t *ManualTrigger) Arm(fire func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fire = fire
}

// Armed reports whether a flush is outstanding.
func (t *ManualTrigger) Armed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fire != nil
}

// Fire runs and clears the armed flush. No-op when nothing is armed.
func (t *ManualTrigger) Fire() {
	t.mu.Lock()
	fire := t.fire
	t.fire = nil
	t.mu.Unlock()
	if fire != nil {
		fire()
	}
}
