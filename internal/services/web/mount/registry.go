package mount

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/a-h/templ"
)

// Loader obtains a unit's implementation. Loaders may perform I/O and are
// always invoked off the caller's goroutine.
type Loader func(ctx context.Context) (templ.Component, error)

// Registry maps unit names to loaders. It is built once and never mutated,
// so lookups need no locking.
type Registry struct {
	loaders map[string]Loader
}

// NewRegistry copies loaders into a read-only registry. Names must be
// non-empty, free of surrounding whitespace, and map to a non-nil loader.
func NewRegistry(loaders map[string]Loader) (*Registry, error) {
	copied := make(map[string]Loader, len(loaders))
	for name, loader := range loaders {
		if name == "" || strings.TrimSpace(name) != name {
			return nil, fmt.Errorf("unit name %q is invalid", name)
		}
		if loader == nil {
			return nil, fmt.Errorf("unit %q has no loader", name)
		}
		copied[name] = loader
	}
	return &Registry{loaders: copied}, nil
}

// Lookup returns the loader registered for name.
func (r *Registry) Lookup(name string) (Loader, bool) {
	if r == nil {
		return nil, false
	}
	loader, ok := r.loaders[name]
	return loader, ok
}

// Names returns the registered unit names in lexical order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.loaders))
	for name := range r.loaders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len reports the number of registered units.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.loaders)
}

// Static wraps an already-built component as a loader.
func Static(component templ.Component) Loader {
	return func(context.Context) (templ.Component, error) {
		return component, nil
	}
}
