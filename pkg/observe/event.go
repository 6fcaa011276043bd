package observe

// ChangeType classifies an elementary mutation.
type ChangeType string

const (
	// TypeSet is a property write that passed the equality gate.
	TypeSet ChangeType = "set"

	// TypeDelete is a property deletion. Always emitted.
	TypeDelete ChangeType = "delete"

	// TypeMutate is an in-place list mutation (push, splice, sort, ...).
	// Exactly one event per mutating method call.
	TypeMutate ChangeType = "mutate"
)

// Meta carries change-type-specific detail.
// Old is the previous value for set/delete; Method and Args describe the
// mutating call for mutate events.
type Meta struct {
	Old    any
	Method string
	Args   []any
}

// ChangeEvent is an elementary notification of one mutation at a
// specific path. Events are created synchronously at the moment of
// mutation and consumed immediately by the change handler; they are not
// retained.
type ChangeEvent struct {
	// Path is the dot-delimited location of the mutation relative to
	// the root. The first segment is always a top-level property name.
	Path string

	// Value is the new value at Path (the wrapped node for observable
	// values, nil for deletions, the list node for mutate events).
	Value any

	// Type is the mutation kind.
	Type ChangeType

	// Meta is the change-type-specific detail.
	Meta Meta
}

// TopLevel returns the first segment of the event path, which is always
// a top-level property name of the root.
func (e ChangeEvent) TopLevel() string {
	for i := 0; i < len(e.Path); i++ {
		if e.Path[i] == '.' {
			return e.Path[:i]
		}
	}
	return e.Path
}

// ChangeFunc consumes change events.
type ChangeFunc func(ChangeEvent)

// joinPath appends a segment to a parent path.
func joinPath(parent, segment string) string {
	if parent == "" {
		return segment
	}
	return parent + "." + segment
}
