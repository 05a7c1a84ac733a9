package event

import "fmt"

// Registry tracks the event types a runtime knows how to fold. Appending an
// unregistered type is rejected so a journal can always be replayed by the
// binary that wrote it.
type Registry struct {
	types map[Type]bool
}

// NewRegistry builds a registry over the provided types.
func NewRegistry(types ...Type) *Registry {
	r := &Registry{types: make(map[Type]bool, len(types))}
	for _, t := range types {
		r.types[t] = true
	}
	return r
}

// Register adds types to the registry.
func (r *Registry) Register(types ...Type) {
	for _, t := range types {
		r.types[t] = true
	}
}

// Known reports whether the type is registered.
func (r *Registry) Known(t Type) bool {
	return r != nil && r.types[t]
}

// ValidateForAppend rejects events whose type is not registered.
func (r *Registry) ValidateForAppend(evt Event) error {
	if evt.Type == "" {
		return fmt.Errorf("event type is required")
	}
	if !r.Known(evt.Type) {
		return fmt.Errorf("event type %q is not registered", evt.Type)
	}
	return nil
}
