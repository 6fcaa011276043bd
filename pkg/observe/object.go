package observe

import (
	"sort"
	"sync"
)

// Object wraps one keyed structure so that property writes and
// deletions emit change events. Nested qualifying values are wrapped
// recursively according to the node's strategy.
type Object struct {
	// mu protects fields.
	mu sync.RWMutex

	path     string
	onChange ChangeFunc
	strategy Strategy
	fields   map[string]any
}

func newObject(fields map[string]any, onChange ChangeFunc, path string, strategy Strategy) *Object {
	if fields == nil {
		fields = make(map[string]any)
	}
	return &Object{
		path:     path,
		onChange: onChange,
		strategy: strategy,
		fields:   fields,
	}
}

// wrapChildren wraps every qualifying field in place. Under the eager
// strategy this runs before the parent is handed out, so nested
// structures are fully reactive before the first read.
func (o *Object) wrapChildren() {
	for k, v := range o.fields {
		if CanObserve(v) {
			o.fields[k] = o.strategy.Wrap(v, o.onChange, joinPath(o.path, k))
		}
	}
}

// Path returns the node's location relative to the root. Empty for a
// root node.
func (o *Object) Path() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.path
}

// Get returns the current value of key. Under the lazy strategy a
// qualifying value is wrapped on first access.
func (o *Object) Get(key string) any {
	o.mu.Lock()
	defer o.mu.Unlock()
	v, ok := o.fields[key]
	if ok && CanObserve(v) && !IsNode(v) {
		v = o.strategy.Wrap(v, o.onChange, joinPath(o.path, key))
		o.fields[key] = v
	}
	return v
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	_, ok := o.fields[key]
	return ok
}

// Keys returns the property names in sorted order.
func (o *Object) Keys() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	keys := make([]string, 0, len(o.fields))
	for k := range o.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of properties.
func (o *Object) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.fields)
}

// Set writes key to value. Writes of values that are deeply equal to
// the current value and are not themselves observable are silently
// absorbed. Otherwise the value is wrapped rooted at the same path and
// exactly one set event is emitted carrying the previous value.
func (o *Object) Set(key string, value any) {
	path := joinPath(o.path, key)

	o.mu.Lock()
	old := o.fields[key]
	if !CanObserve(value) && !CanObserve(old) && DeepEqual(old, value) {
		o.mu.Unlock()
		return
	}
	wrapped := o.strategy.Wrap(value, o.onChange, path)
	o.fields[key] = wrapped
	o.mu.Unlock()

	o.emit(ChangeEvent{Path: path, Value: wrapped, Type: TypeSet, Meta: Meta{Old: old}})
}

// Delete removes key. A delete event is always emitted, regardless of
// whether the key was present.
func (o *Object) Delete(key string) {
	path := joinPath(o.path, key)

	o.mu.Lock()
	old := o.fields[key]
	delete(o.fields, key)
	o.mu.Unlock()

	o.emit(ChangeEvent{Path: path, Type: TypeDelete, Meta: Meta{Old: old}})
}

// Snapshot returns a plain, unwrapped copy of the object.
func (o *Object) Snapshot() map[string]any {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make(map[string]any, len(o.fields))
	for k, v := range o.fields {
		out[k] = Snapshot(v)
	}
	return out
}

// rebind re-roots the node (and any already-wrapped children) at path,
// routing events to onChange. Called when an existing node is assigned
// to a new location; the node itself is never instrumented twice.
func (o *Object) rebind(onChange ChangeFunc, path string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.onChange = onChange
	o.path = path
	for k, v := range o.fields {
		switch n := v.(type) {
		case *Object:
			n.rebind(onChange, joinPath(path, k))
		case *List:
			n.rebind(onChange, joinPath(path, k))
		}
	}
}

func (o *Object) emit(ev ChangeEvent) {
	o.mu.RLock()
	fn := o.onChange
	o.mu.RUnlock()
	if fn != nil {
		fn(ev)
	}
}
