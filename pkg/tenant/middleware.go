package tenant

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/tailoring/pkg/logger"
)

// Middleware creates HTTP middleware that binds the resolved tenant identifier
// to the request context. Every request starts from a cleared binding, so a
// tenant never leaks from an outer context into an unrelated request.
func Middleware(resolver Resolver, opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{
		errorHandler: defaultErrorHandler,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := Clear(r.Context())

			id, err := resolver.Resolve(r)
			if err != nil {
				cfg.logger.WarnContext(ctx, "tenant resolution failed",
					logger.Component("tenant"),
					logger.Error(err),
				)
				cfg.errorHandler(w, r, err)
				return
			}

			if id != "" {
				ctx = WithID(ctx, id)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireTenant creates middleware that ensures a tenant is present in the context.
// This is useful for protecting routes that require tenant context.
func RequireTenant(errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = defaultErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := IDFromContext(r.Context()); !ok {
				errorHandler(w, r, ErrNoTenantInContext)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
