package tool

import (
	"fmt"

	"github.com/zero-day-ai/toolchat/llm"
)

// Registry is the static set of tools available to the model. It is
// populated once at construction and never changes afterwards, so it is
// safe for concurrent reads.
type Registry struct {
	entries []*Entry
	byName  map[string]*Entry
}

// NewRegistry builds a registry from entries, in order. Empty or duplicate
// names, missing descriptions, nil executors and schemas that do not compile
// are rejected.
func NewRegistry(entries ...Entry) (*Registry, error) {
	r := &Registry{
		entries: make([]*Entry, 0, len(entries)),
		byName:  make(map[string]*Entry, len(entries)),
	}

	for i := range entries {
		e := entries[i]
		if e.Spec.Name == "" {
			return nil, fmt.Errorf("tool %d: name cannot be empty", i)
		}
		if _, dup := r.byName[e.Spec.Name]; dup {
			return nil, fmt.Errorf("tool %q: duplicate name", e.Spec.Name)
		}
		if e.Spec.Description == "" {
			return nil, fmt.Errorf("tool %q: description cannot be empty", e.Spec.Name)
		}
		if e.Executor == nil {
			return nil, fmt.Errorf("tool %q: executor cannot be nil", e.Spec.Name)
		}

		if e.Spec.Parameters.Type != "" {
			v, err := e.Spec.Parameters.Compile()
			if err != nil {
				return nil, fmt.Errorf("tool %q: parameters: %w", e.Spec.Name, err)
			}
			e.validator = v
		}

		r.entries = append(r.entries, &e)
		r.byName[e.Spec.Name] = &e
	}

	return r, nil
}

// Resolve returns the entry registered under name. The same pointer is
// returned for the same name on every call.
func (r *Registry) Resolve(name string) (*Entry, bool) {
	e, ok := r.byName[name]
	return e, ok
}

// AllSpecs returns the wire definitions of every tool in registration order.
func (r *Registry) AllSpecs() []llm.ToolDef {
	defs := make([]llm.ToolDef, 0, len(r.entries))
	for _, e := range r.entries {
		defs = append(defs, e.Spec.Definition())
	}
	return defs
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		names = append(names, e.Spec.Name)
	}
	return names
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return len(r.entries)
}
