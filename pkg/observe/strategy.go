package observe

// Strategy is the wrapping strategy for nested values. Call sites depend
// only on this interface; which variant is active is selected once at
// root assembly.
type Strategy interface {
	// Name identifies the strategy ("eager" or "lazy").
	Name() string

	// Wrap makes target observable at path, reporting mutations to
	// onChange. Values that fail the classification predicate are
	// returned unchanged; already-wrapped nodes are re-rooted at path
	// and returned without new instrumentation.
	Wrap(target any, onChange ChangeFunc, path string) any
}

// Eager wraps every qualifying nested value before the parent node is
// returned, so nested structures are fully reactive before the first
// read.
var Eager Strategy = eagerStrategy{}

// Lazy defers wrapping a nested value until it is first accessed.
// Mutation events are identical to Eager's for the same operations.
var Lazy Strategy = lazyStrategy{}

// Default is the strategy used when none is configured.
var Default = Eager

type eagerStrategy struct{}

func (eagerStrategy) Name() string { return "eager" }

func (s eagerStrategy) Wrap(target any, onChange ChangeFunc, path string) any {
	switch t := target.(type) {
	case *Object:
		t.rebind(onChange, path)
		return t
	case *List:
		t.rebind(onChange, path)
		return t
	case map[string]any:
		o := newObject(t, onChange, path, s)
		o.wrapChildren()
		return o
	case []any:
		l := newList(t, onChange, path, s)
		l.wrapChildren()
		return l
	default:
		return target
	}
}

type lazyStrategy struct{}

func (lazyStrategy) Name() string { return "lazy" }

func (s lazyStrategy) Wrap(target any, onChange ChangeFunc, path string) any {
	switch t := target.(type) {
	case *Object:
		t.rebind(onChange, path)
		return t
	case *List:
		t.rebind(onChange, path)
		return t
	case map[string]any:
		return newObject(t, onChange, path, s)
	case []any:
		return newList(t, onChange, path, s)
	default:
		return target
	}
}

// Shallow disables recursive wrapping entirely: Wrap returns the target
// unchanged. Installed on a node, it makes only that node's own
// properties observable; nested values stay plain and their in-place
// mutation is invisible.
var Shallow Strategy = shallowStrategy{}

type shallowStrategy struct{}

func (shallowStrategy) Name() string { return "shallow" }

func (shallowStrategy) Wrap(target any, _ ChangeFunc, _ string) any {
	return target
}

// Wrap makes target observable with the Default strategy.
func Wrap(target any, onChange ChangeFunc, path string) any {
	return Default.Wrap(target, onChange, path)
}

// NewObject wraps fields as a root-level observable object using the
// given strategy. Under Eager, children are wrapped before the node is
// returned.
func NewObject(fields map[string]any, onChange ChangeFunc, path string, strategy Strategy) *Object {
	if strategy == nil {
		strategy = Default
	}
	o := newObject(fields, onChange, path, strategy)
	if _, eager := strategy.(eagerStrategy); eager {
		o.wrapChildren()
	}
	return o
}

// NewList wraps items as a root-level observable list using the given
// strategy.
func NewList(items []any, onChange ChangeFunc, path string, strategy Strategy) *List {
	if strategy == nil {
		strategy = Default
	}
	l := newList(items, onChange, path, strategy)
	if _, eager := strategy.(eagerStrategy); eager {
		l.wrapChildren()
	}
	return l
}
