package schedule

import (
	"reflect"
	"sync"
	"testing"
	"time"
)

func TestCoalescing(t *testing.T) {
	trigger := &ManualTrigger{}
	var flushes [][]Update
	s := New(trigger, func(u []Update) { flushes = append(flushes, u) }, nil)

	s.Schedule("count", 1)
	s.Schedule("count", 2)
	s.Schedule("count", 3)
	trigger.Fire()

	if len(flushes) != 1 {
		t.Fatalf("expected exactly 1 flush, got %d", len(flushes))
	}
	want := []Update{{Property: "count", Value: 3}}
	if !reflect.DeepEqual(flushes[0], want) {
		t.Errorf("expected %v, got %v", want, flushes[0])
	}
}

func TestInsertionOrder(t *testing.T) {
	trigger := &ManualTrigger{}
	var got []string
	s := New(trigger, func(u []Update) {
		for _, up := range u {
			got = append(got, up.Property)
		}
	}, nil)

	s.Schedule("b", 1)
	s.Schedule("a", 1)
	s.Schedule("c", 1)
	s.Schedule("a", 2) // re-schedule keeps the first position
	trigger.Fire()

	if !reflect.DeepEqual(got, []string{"b", "a", "c"}) {
		t.Errorf("expected first-scheduled order [b a c], got %v", got)
	}
}

func TestTriggerArmedOncePerQuantum(t *testing.T) {
	arms := 0
	trigger := &countingTrigger{}
	s := New(trigger, func([]Update) {}, nil)

	s.Schedule("a", 1)
	s.Schedule("b", 2)
	s.Schedule("a", 3)
	arms = trigger.arms
	if arms != 1 {
		t.Fatalf("expected 1 arm per quantum, got %d", arms)
	}

	trigger.Fire()
	s.Schedule("a", 4)
	if trigger.arms != 2 {
		t.Errorf("next quantum must re-arm, got %d arms", trigger.arms)
	}
}

type countingTrigger struct {
	arms int
	fire func()
}

func (t *countingTrigger) Arm(fire func()) {
	t.arms++
	t.fire = fire
}

func (t *countingTrigger) Fire() {
	if t.fire != nil {
		f := t.fire
		t.fire = nil
		f()
	}
}

func TestFlushWithNothingPendingIsNoop(t *testing.T) {
	flushes := 0
	s := New(&ManualTrigger{}, func([]Update) { flushes++ }, nil)

	s.Flush()
	if flushes != 0 {
		t.Errorf("empty flush must be a no-op, got %d", flushes)
	}
}

func TestCloseDropsPendingAndIgnoresLateFlush(t *testing.T) {
	trigger := &ManualTrigger{}
	flushes := 0
	s := New(trigger, func([]Update) { flushes++ }, nil)

	s.Schedule("a", 1)
	s.Close()
	trigger.Fire() // already-armed flush after teardown

	if flushes != 0 {
		t.Errorf("flush after close must be a no-op, got %d", flushes)
	}
	s.Schedule("b", 2)
	if s.Pending() != 0 {
		t.Errorf("schedule after close must be ignored")
	}
}

func TestConsumerPanicLeavesSchedulerConsistent(t *testing.T) {
	trigger := &ManualTrigger{}
	calls := 0
	s := New(trigger, func([]Update) {
		calls++
		if calls == 1 {
			panic("consumer failed")
		}
	}, nil)

	s.Schedule("a", 1)
	trigger.Fire()

	if s.Pending() != 0 {
		t.Fatal("pending set must be drained even when the consumer panics")
	}

	// The scheduler keeps working.
	s.Schedule("b", 2)
	trigger.Fire()
	if calls != 2 {
		t.Errorf("expected a second delivery, got %d", calls)
	}
}

func TestAsyncTriggerFires(t *testing.T) {
	var mu sync.Mutex
	var got []Update
	done := make(chan struct{})
	s := New(Async, func(u []Update) {
		mu.Lock()
		got = u
		mu.Unlock()
		close(done)
	}, nil)

	s.Schedule("a", 1)
	s.Schedule("a", 2)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("async flush did not fire")
	}
	mu.Lock()
	defer mu.Unlock()
	if !reflect.DeepEqual(got, []Update{{Property: "a", Value: 2}}) {
		t.Errorf("expected coalesced [a=2], got %v", got)
	}
}
