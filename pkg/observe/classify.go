package observe

import (
	"regexp"
	"time"
)

// CanObserve reports whether v is a candidate for deep observation.
//
// Only plain keyed structures (map[string]any), plain lists ([]any), and
// values that are already wrapped qualify. Scalars and opaque host types
// such as timestamps, binary blobs, and compiled patterns are excluded:
// they are treated as atomic and compared by value instead.
func CanObserve(v any) bool {
	switch v.(type) {
	case nil:
		return false
	case map[string]any, []any:
		return true
	case *Object, *List:
		return true
	case time.Time, *time.Time, []byte, *regexp.Regexp:
		// Opaque host types: mutable internals, but never observed.
		return false
	default:
		return false
	}
}

// IsNode reports whether v is already a wrapped observable node.
func IsNode(v any) bool {
	switch v.(type) {
	case *Object, *List:
		return true
	default:
		return false
	}
}

// Snapshot returns a plain, unwrapped copy of v. Wrapped nodes are
// converted back to map[string]any / []any recursively; everything else
// is returned unchanged.
func Snapshot(v any) any {
	switch t := v.(type) {
	case *Object:
		return t.Snapshot()
	case *List:
		return t.Snapshot()
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = Snapshot(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Snapshot(val)
		}
		return out
	default:
		return v
	}
}
