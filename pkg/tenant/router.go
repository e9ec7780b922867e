package tenant

import (
	"context"
	"maps"
	"slices"
)

// Router is a strategy table that picks the implementation registered for
// the tenant bound to a context. The table is copied on construction and
// never mutated afterwards, so lookups need no locking.
type Router[T any] struct {
	routes      map[string]T
	fallback    T
	hasFallback bool
}

// RouterOption configures a Router.
type RouterOption[T any] func(*Router[T])

// WithFallback sets the implementation returned when the current tenant has
// no route of its own.
func WithFallback[T any](impl T) RouterOption[T] {
	return func(r *Router[T]) {
		r.fallback = impl
		r.hasFallback = true
	}
}

// WithRegistry drops every route whose tenant is not registered, so an
// unregistered tenant never owns an implementation.
func WithRegistry[T any](reg *Registry) RouterOption[T] {
	return func(r *Router[T]) {
		if reg == nil {
			return
		}
		maps.DeleteFunc(r.routes, func(id string, _ T) bool {
			return !reg.IsRegistered(id)
		})
	}
}

// NewRouter creates a router over a copy of routes.
func NewRouter[T any](routes map[string]T, opts ...RouterOption[T]) *Router[T] {
	r := &Router[T]{routes: make(map[string]T, len(routes))}
	maps.Copy(r.routes, routes)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Route returns the implementation registered for the tenant bound to ctx.
// The boolean is false when the tenant is unset or unrouted.
func (r *Router[T]) Route(ctx context.Context) (T, bool) {
	id, ok := IDFromContext(ctx)
	if !ok {
		var zero T
		return zero, false
	}
	impl, ok := r.routes[id]
	return impl, ok
}

// Resolve is like Route but falls back to the configured default.
// The boolean is false only when neither a route nor a fallback exists.
func (r *Router[T]) Resolve(ctx context.Context) (T, bool) {
	if impl, ok := r.Route(ctx); ok {
		return impl, true
	}
	return r.fallback, r.hasFallback
}

// Tenants returns the sorted identifiers that have a route.
func (r *Router[T]) Tenants() []string {
	return slices.Sorted(maps.Keys(r.routes))
}
