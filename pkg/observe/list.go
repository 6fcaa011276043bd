package observe

import (
	"sort"
	"strconv"
	"sync"
)

// List wraps one plain list so that in-place mutation methods emit
// change events. Mutating methods (Push, Pop, Shift, Unshift, Splice,
// Sort, Reverse) emit exactly one mutate event per call regardless of
// how many elements moved; read-only accessors emit nothing.
type List struct {
	// mu protects items.
	mu sync.RWMutex

	path     string
	onChange ChangeFunc
	strategy Strategy
	items    []any
}

func newList(items []any, onChange ChangeFunc, path string, strategy Strategy) *List {
	return &List{
		path:     path,
		onChange: onChange,
		strategy: strategy,
		items:    items,
	}
}

// wrapChildren wraps every qualifying element in place.
func (l *List) wrapChildren() {
	for i, v := range l.items {
		if CanObserve(v) {
			l.items[i] = l.strategy.Wrap(v, l.onChange, l.elemPath(i))
		}
	}
}

func (l *List) elemPath(i int) string {
	return joinPath(l.path, strconv.Itoa(i))
}

// Path returns the node's location relative to the root.
func (l *List) Path() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.path
}

// Len returns the number of elements.
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// At returns the element at index i, or nil when out of range. Under
// the lazy strategy a qualifying element is wrapped on first access.
func (l *List) At(i int) any {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i >= len(l.items) {
		return nil
	}
	v := l.items[i]
	if CanObserve(v) && !IsNode(v) {
		v = l.strategy.Wrap(v, l.onChange, l.elemPath(i))
		l.items[i] = v
	}
	return v
}

// Values returns a copy of the current elements. No event is emitted;
// callers that derive a new list must reassign it to be observed.
func (l *List) Values() []any {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]any, len(l.items))
	copy(out, l.items)
	return out
}

// Snapshot returns a plain, unwrapped copy of the list.
func (l *List) Snapshot() []any {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]any, len(l.items))
	for i, v := range l.items {
		out[i] = Snapshot(v)
	}
	return out
}

// SetAt writes the element at index i, with the same equality gating as
// an object property write. Out-of-range writes are ignored.
func (l *List) SetAt(i int, value any) {
	l.mu.Lock()
	if i < 0 || i >= len(l.items) {
		l.mu.Unlock()
		return
	}
	old := l.items[i]
	if !CanObserve(value) && !CanObserve(old) && DeepEqual(old, value) {
		l.mu.Unlock()
		return
	}
	path := l.elemPath(i)
	wrapped := l.strategy.Wrap(value, l.onChange, path)
	l.items[i] = wrapped
	l.mu.Unlock()

	l.emit(ChangeEvent{Path: path, Value: wrapped, Type: TypeSet, Meta: Meta{Old: old}})
}

// Push appends values and returns the new length.
func (l *List) Push(values ...any) int {
	l.mu.Lock()
	start := len(l.items)
	for i, v := range values {
		l.items = append(l.items, l.wrapElem(v, start+i))
	}
	n := len(l.items)
	l.mu.Unlock()

	l.emitMutate("push", values)
	return n
}

// Pop removes and returns the last element, or nil if empty.
func (l *List) Pop() any {
	l.mu.Lock()
	if len(l.items) == 0 {
		l.mu.Unlock()
		return nil
	}
	v := l.items[len(l.items)-1]
	l.items = l.items[:len(l.items)-1]
	l.mu.Unlock()

	l.emitMutate("pop", nil)
	return v
}

// Shift removes and returns the first element, or nil if empty.
func (l *List) Shift() any {
	l.mu.Lock()
	if len(l.items) == 0 {
		l.mu.Unlock()
		return nil
	}
	v := l.items[0]
	l.items = append(l.items[:0], l.items[1:]...)
	l.mu.Unlock()

	l.emitMutate("shift", nil)
	return v
}

// Unshift prepends values and returns the new length.
func (l *List) Unshift(values ...any) int {
	l.mu.Lock()
	wrapped := make([]any, len(values))
	for i, v := range values {
		wrapped[i] = l.wrapElem(v, i)
	}
	l.items = append(wrapped, l.items...)
	n := len(l.items)
	l.mu.Unlock()

	l.emitMutate("unshift", values)
	return n
}

// Splice removes deleteCount elements at start, inserts values in their
// place, and returns the removed elements. Negative start counts from
// the end; out-of-range arguments are clamped.
func (l *List) Splice(start, deleteCount int, values ...any) []any {
	l.mu.Lock()
	n := len(l.items)
	if start < 0 {
		start += n
		if start < 0 {
			start = 0
		}
	}
	if start > n {
		start = n
	}
	if deleteCount < 0 {
		deleteCount = 0
	}
	if deleteCount > n-start {
		deleteCount = n - start
	}

	removed := make([]any, deleteCount)
	copy(removed, l.items[start:start+deleteCount])

	wrapped := make([]any, len(values))
	for i, v := range values {
		wrapped[i] = l.wrapElem(v, start+i)
	}

	tail := make([]any, len(l.items[start+deleteCount:]))
	copy(tail, l.items[start+deleteCount:])
	l.items = append(l.items[:start], append(wrapped, tail...)...)
	l.mu.Unlock()

	args := append([]any{start, deleteCount}, values...)
	l.emitMutate("splice", args)
	return removed
}

// Sort reorders the elements using less. The sort is stable. The
// comparator runs on a copied slice without the list's lock held, so it
// may read the list (At, Len) freely.
func (l *List) Sort(less func(a, b any) bool) {
	l.mu.Lock()
	items := make([]any, len(l.items))
	copy(items, l.items)
	l.mu.Unlock()

	sort.SliceStable(items, func(i, j int) bool {
		return less(items[i], items[j])
	})

	l.mu.Lock()
	l.items = items
	l.mu.Unlock()

	l.emitMutate("sort", nil)
}

// Reverse reverses the elements in place.
func (l *List) Reverse() {
	l.mu.Lock()
	for i, j := 0, len(l.items)-1; i < j; i, j = i+1, j-1 {
		l.items[i], l.items[j] = l.items[j], l.items[i]
	}
	l.mu.Unlock()

	l.emitMutate("reverse", nil)
}

// wrapElem wraps a newly introduced element unless it is already
// wrapped. Element paths are assigned at insertion position; later
// reordering does not re-path elements (events always carry the list's
// own path).
func (l *List) wrapElem(v any, i int) any {
	if !CanObserve(v) {
		return v
	}
	return l.strategy.Wrap(v, l.onChange, l.elemPath(i))
}

// rebind re-roots the node (and any already-wrapped elements) at path.
func (l *List) rebind(onChange ChangeFunc, path string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = onChange
	l.path = path
	for i, v := range l.items {
		switch n := v.(type) {
		case *Object:
			n.rebind(onChange, joinPath(path, strconv.Itoa(i)))
		case *List:
			n.rebind(onChange, joinPath(path, strconv.Itoa(i)))
		}
	}
}

func (l *List) emitMutate(method string, args []any) {
	l.emit(ChangeEvent{
		Path:  l.path,
		Value: l,
		Type:  TypeMutate,
		Meta:  Meta{Method: method, Args: args},
	})
}

func (l *List) emit(ev ChangeEvent) {
	l.mu.RLock()
	fn := l.onChange
	l.mu.RUnlock()
	if fn != nil {
		fn(ev)
	}
}
