package kernel

import (
	"fmt"
	"slices"
	"sync"
)

// Registry maps integral kind names to descriptors.
// It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	kinds map[string]*Descriptor
}

// NewRegistry returns a registry holding ds.
func NewRegistry(ds ...*Descriptor) (*Registry, error) {
	r := &Registry{kinds: make(map[string]*Descriptor, len(ds))}
	for _, d := range ds {
		if err := r.Register(d); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register validates d and adds it under d.Name.
func (r *Registry) Register(d *Descriptor) error {
	if err := d.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.kinds == nil {
		r.kinds = make(map[string]*Descriptor)
	}
	if _, ok := r.kinds[d.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateKind, d.Name)
	}
	r.kinds[d.Name] = d
	return nil
}

// Lookup returns the descriptor registered under name.
func (r *Registry) Lookup(name string) (*Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.kinds[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
	return d, nil
}

// Names returns the registered kind names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.kinds))
	for name := range r.kinds {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// All returns the registered descriptors ordered by name.
func (r *Registry) All() []*Descriptor {
	names := r.Names()

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Descriptor, 0, len(names))
	for _, name := range names {
		if d, ok := r.kinds[name]; ok {
			out = append(out, d)
		}
	}
	return out
}
