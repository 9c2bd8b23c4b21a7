package tools

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Resolve for an unregistered tool name.
var ErrNotFound = errors.New("tool not found")

// ErrRegistrySealed is returned by Register after the registry is sealed.
var ErrRegistrySealed = errors.New("registry is sealed")

// Registry maps tool names to their descriptors. All registration happens at
// startup in the composition root; once sealed the registry is read-only and
// safe for concurrent lookups.
type Registry struct {
	tools  map[string]Descriptor
	order  []string
	sealed bool
}

// NewRegistry creates an empty, unsealed registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Descriptor)}
}

// Register adds a descriptor. A duplicate name, empty name, or nil handler is
// a configuration error to fail fast on, not to paper over.
func (r *Registry) Register(d Descriptor) error {
	if r.sealed {
		return fmt.Errorf("register %q: %w", d.Name, ErrRegistrySealed)
	}
	if d.Name == "" {
		return errors.New("register: tool name must not be empty")
	}
	if d.Handler == nil {
		return fmt.Errorf("register %q: handler must not be nil", d.Name)
	}
	if _, exists := r.tools[d.Name]; exists {
		return fmt.Errorf("register %q: duplicate tool name", d.Name)
	}
	r.tools[d.Name] = d
	r.order = append(r.order, d.Name)
	return nil
}

// Seal freezes the registry. Further Register calls fail.
func (r *Registry) Seal() {
	r.sealed = true
}

// Resolve returns the descriptor registered under name.
func (r *Registry) Resolve(name string) (Descriptor, error) {
	d, ok := r.tools[name]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return d, nil
}

// Descriptors returns all registered descriptors in registration order.
func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return len(r.tools)
}
