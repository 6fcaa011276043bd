package bind

// Child is a child-like collaborator attached below a root.
type Child interface {
	// ID identifies the child within its hierarchy.
	ID() string

	// Receive handles a command dispatched downward from the root.
	Receive(command string, payload any)
}

// Hierarchy is the injected parent/child registry collaborator. The
// root does not interpret event or command values; it only passes them
// through.
type Hierarchy interface {
	// NotifyUpward forwards a structured event to the parent-like
	// collaborator.
	NotifyUpward(eventType string, payload any)

	// DispatchDownward broadcasts a command to child-like
	// collaborators.
	DispatchDownward(command string, payload any)

	// Children returns the currently attached children.
	Children() []Child
}

// NotifyUpward forwards a structured event to the parent collaborator.
// No-op without an attached hierarchy.
func (r *Root) NotifyUpward(eventType string, payload any) {
	if h := r.cfg.hierarchy; h != nil {
		h.NotifyUpward(eventType, payload)
	}
}

// DispatchDownward broadcasts a command to child collaborators. No-op
// without an attached hierarchy.
func (r *Root) DispatchDownward(command string, payload any) {
	if h := r.cfg.hierarchy; h != nil {
		h.DispatchDownward(command, payload)
	}
}

// FindChildren returns the attached children matching pred. A nil pred
// matches every child.
func (r *Root) FindChildren(pred func(Child) bool) []Child {
	h := r.cfg.hierarchy
	if h == nil {
		return nil
	}
	var out []Child
	for _, c := range h.Children() {
		if pred == nil || pred(c) {
			out = append(out, c)
		}
	}
	return out
}
