package tenant

import (
	"context"
	"log/slog"
)

// contextKey is a private type to prevent collisions with other context keys.
type contextKey struct{}

// WithID binds the tenant identifier to the context, replacing any previous
// binding. An empty id clears the binding.
//
// The identifier is not validated against a Registry: binding an unknown
// tenant is legal and routers treat it as "no implementation".
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// Clear removes the tenant binding from the context.
func Clear(ctx context.Context) context.Context {
	return WithID(ctx, "")
}

// IDFromContext returns the bound tenant identifier.
// Returns "", false if no tenant is bound.
func IDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(contextKey{}).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// MustIDFromContext returns the bound tenant identifier.
// Panics if no tenant is bound. Use this only where a missing tenant is a
// programming error.
func MustIDFromContext(ctx context.Context) string {
	id, ok := IDFromContext(ctx)
	if !ok {
		panic("tenant: no tenant in context")
	}
	return id
}

// LoggerExtractor returns a ContextExtractor for the logger that extracts tenant ID from context
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := IDFromContext(ctx); ok {
			return slog.String("tenant_id", id), true
		}
		return slog.Attr{}, false
	}
}
