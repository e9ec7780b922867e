package tenant

import (
	"slices"
	"strings"
	"sync"
)

// Tenant describes a deployment-specific customer context. Only the ID takes
// part in routing; the remaining fields are used for display and naming.
type Tenant struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Label string `json:"label" yaml:"label"`
}

// Registry holds the identifiers of all tenants known to the process.
// It is append-only and safe for concurrent use.
type Registry struct {
	mu  sync.RWMutex
	ids map[string]struct{}
}

// NewRegistry creates a registry pre-populated with the given identifiers.
// Blank identifiers are ignored.
func NewRegistry(ids ...string) *Registry {
	r := &Registry{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		r.Register(id)
	}
	return r
}

// Register adds the trimmed id to the registered set. Blank identifiers are
// ignored and duplicates are a no-op. It reports whether the set changed.
func (r *Registry) Register(id string) bool {
	id = strings.TrimSpace(id)
	if id == "" {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.ids[id]; ok {
		return false
	}
	r.ids[id] = struct{}{}
	return true
}

// IsRegistered reports whether the trimmed id belongs to the registered set.
func (r *Registry) IsRegistered(id string) bool {
	id = strings.TrimSpace(id)
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.ids[id]
	return ok
}

// Tenants returns a sorted copy of the registered identifiers.
func (r *Registry) Tenants() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.ids))
	for id := range r.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Len returns the number of registered tenants.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ids)
}
