package observe

import (
	"regexp"
	"testing"
	"time"
)

// collector gathers change events for assertions.
type collector struct {
	events []ChangeEvent
}

func (c *collector) fn() ChangeFunc {
	return func(ev ChangeEvent) {
		c.events = append(c.events, ev)
	}
}

func TestCanObserve(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want bool
	}{
		{"map", map[string]any{}, true},
		{"slice", []any{}, true},
		{"nil", nil, false},
		{"string", "x", false},
		{"int", 42, false},
		{"time", time.Now(), false},
		{"bytes", []byte("blob"), false},
		{"pattern", regexp.MustCompile("a+"), false},
		{"typed slice", []string{"a"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanObserve(tt.v); got != tt.want {
				t.Errorf("CanObserve(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}

	var c collector
	wrapped := Wrap(map[string]any{}, c.fn(), "p")
	if !CanObserve(wrapped) {
		t.Error("wrapped node should remain observable")
	}
}

func TestDeepEqual(t *testing.T) {
	if !DeepEqual(1, 1) || DeepEqual(1, 2) {
		t.Error("int equality broken")
	}
	if DeepEqual(1, "1") {
		t.Error("cross-type values must not compare equal")
	}
	if !DeepEqual(map[string]any{"a": 1}, map[string]any{"a": 1}) {
		t.Error("structural equality broken")
	}

	// A wrapped node compares equal to the plain structure it wraps.
	var c collector
	wrapped := Wrap(map[string]any{"a": []any{1, 2}}, c.fn(), "p")
	if !DeepEqual(wrapped, map[string]any{"a": []any{1, 2}}) {
		t.Error("node should compare equal to its plain snapshot")
	}
}

func TestSetEqualityGating(t *testing.T) {
	var c collector
	o := Wrap(map[string]any{"name": "Al", "age": 30}, c.fn(), "user").(*Object)

	o.Set("name", "Al") // deeply equal scalar: absorbed
	if len(c.events) != 0 {
		t.Fatalf("expected 0 events for equal write, got %d", len(c.events))
	}

	o.Set("name", "Bo")
	if len(c.events) != 1 {
		t.Fatalf("expected exactly 1 event, got %d", len(c.events))
	}
	ev := c.events[0]
	if ev.Path != "user.name" || ev.Type != TypeSet {
		t.Errorf("unexpected event %+v", ev)
	}
	if ev.Meta.Old != "Al" {
		t.Errorf("expected old value Al, got %v", ev.Meta.Old)
	}
	if ev.Value != "Bo" {
		t.Errorf("expected new value Bo, got %v", ev.Value)
	}
}

func TestSetReactiveValueAlwaysEmits(t *testing.T) {
	var c collector
	o := Wrap(map[string]any{"profile": map[string]any{"city": "Oslo"}}, c.fn(), "user").(*Object)

	// Object values are always treated as potentially changed, even
	// when deeply equal.
	o.Set("profile", map[string]any{"city": "Oslo"})
	if len(c.events) != 1 {
		t.Fatalf("expected 1 event for reactive-value write, got %d", len(c.events))
	}
}

func TestDeleteAlwaysEmits(t *testing.T) {
	var c collector
	o := Wrap(map[string]any{"name": "Al"}, c.fn(), "user").(*Object)

	o.Delete("name")
	o.Delete("missing")
	if len(c.events) != 2 {
		t.Fatalf("expected 2 delete events, got %d", len(c.events))
	}
	if c.events[0].Type != TypeDelete || c.events[0].Path != "user.name" {
		t.Errorf("unexpected event %+v", c.events[0])
	}
	if c.events[0].Meta.Old != "Al" {
		t.Errorf("expected old value in meta, got %v", c.events[0].Meta.Old)
	}
	if c.events[0].Value != nil {
		t.Errorf("delete event value must be nil, got %v", c.events[0].Value)
	}
}

func TestNestedWriteEmitsFullPath(t *testing.T) {
	var c collector
	root := Wrap(map[string]any{
		"user": map[string]any{
			"profile": map[string]any{"name": "Al"},
		},
	}, c.fn(), "").(*Object)

	user := root.Get("user").(*Object)
	profile := user.Get("profile").(*Object)
	profile.Set("name", "Bo")

	if len(c.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(c.events))
	}
	if c.events[0].Path != "user.profile.name" {
		t.Errorf("expected path user.profile.name, got %q", c.events[0].Path)
	}
	if c.events[0].TopLevel() != "user" {
		t.Errorf("expected top-level user, got %q", c.events[0].TopLevel())
	}
}

func TestWrapIdempotence(t *testing.T) {
	var c collector
	o := Wrap(map[string]any{"n": 1}, c.fn(), "data")

	again := Wrap(o, c.fn(), "data")
	if o != again {
		t.Fatal("re-wrapping a node must return the same node")
	}

	// Re-wrapping a reactive list must not double-register mutation
	// interception: one push still emits exactly one event.
	l := Wrap([]any{1}, c.fn(), "items")
	l2 := Wrap(l, c.fn(), "items").(*List)
	if l != l2 {
		t.Fatal("re-wrapping a list must return the same node")
	}
	c.events = nil
	l2.Push(2)
	if len(c.events) != 1 {
		t.Fatalf("expected 1 event after re-wrap, got %d", len(c.events))
	}
}

func TestRewrapReRootsPaths(t *testing.T) {
	var c collector
	inner := Wrap(map[string]any{"name": "Al"}, c.fn(), "old.path").(*Object)

	root := Wrap(map[string]any{}, c.fn(), "").(*Object)
	root.Set("user", inner)
	c.events = nil

	inner.Set("name", "Bo")
	if len(c.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(c.events))
	}
	if c.events[0].Path != "user.name" {
		t.Errorf("expected re-rooted path user.name, got %q", c.events[0].Path)
	}
}

func TestSnapshotUnwraps(t *testing.T) {
	var c collector
	o := Wrap(map[string]any{
		"user":  map[string]any{"name": "Al"},
		"items": []any{1, map[string]any{"k": "v"}},
	}, c.fn(), "").(*Object)

	snap := o.Snapshot()
	if _, ok := snap["user"].(map[string]any); !ok {
		t.Errorf("snapshot should contain plain maps, got %T", snap["user"])
	}
	items, ok := snap["items"].([]any)
	if !ok {
		t.Fatalf("snapshot should contain plain slices, got %T", snap["items"])
	}
	if _, ok := items[1].(map[string]any); !ok {
		t.Errorf("nested snapshot should be plain, got %T", items[1])
	}
}
