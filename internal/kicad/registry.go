package kicad

import (
	"fmt"
	"sync"
)

// Registry is the process-wide, ordered set of table definitions. It is
// populated by explicit Register calls during startup and frozen before the
// build phase; synthesis never observes a growing registry.
type Registry struct {
	mu     sync.Mutex
	defs   []*Definition
	byName map[string]*Definition
	frozen bool
}

func NewRegistry() *Registry {
	return &Registry{byName: map[string]*Definition{}}
}

// Register appends a definition. Registering the same table name twice is a
// no-op; registering after Freeze is a programmer error.
func (r *Registry) Register(d *Definition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return fmt.Errorf("registry is frozen, cannot register %q", d.Name)
	}
	if _, ok := r.byName[d.Name]; ok {
		return nil
	}
	r.byName[d.Name] = d
	r.defs = append(r.defs, d)
	return nil
}

// Freeze marks the registry immutable.
func (r *Registry) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

// Definitions returns the registered definitions in registration order.
func (r *Registry) Definitions() []*Definition {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Definition, len(r.defs))
	copy(out, r.defs)
	return out
}

// SynthesizeAll freezes the registry and materializes every definition.
// A definition error aborts the whole build: no partially-built schema set
// is usable.
func (r *Registry) SynthesizeAll() ([]*Table, error) {
	r.Freeze()
	defs := r.Definitions()
	out := make([]*Table, 0, len(defs))
	for _, d := range defs {
		t, err := Synthesize(d)
		if err != nil {
			return nil, fmt.Errorf("table %q: %w", d.Name, err)
		}
		out = append(out, t)
	}
	return out, nil
}
