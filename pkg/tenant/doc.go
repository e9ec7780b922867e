// Package tenant provides tenant registration, request-scoped tenant binding
// and per-tenant strategy dispatch.
//
// # Architecture
//
// The package is built around three concepts:
//
// 1. Registry - the append-only set of tenant identifiers known to the process
// 2. Context - the tenant bound to one unit of work, carried in context.Context
// 3. Router - a strategy table that picks a tenant-specific implementation
//
// Binding is explicit. A goroutine spawned for a request sees the tenant only
// if it receives the request context; nothing is inherited implicitly.
//
// # Usage
//
//	import "github.com/dmitrymomot/tailoring/pkg/tenant"
//
//	reg := tenant.NewRegistry("plattform", "raumfahrt")
//
//	router := tenant.NewRouter(map[string]Generator{
//		"plattform": plattformGenerator,
//	}, tenant.WithRegistry[Generator](reg))
//
//	ctx := tenant.WithID(ctx, "plattform")
//	if gen, ok := router.Route(ctx); ok {
//		// tenant-specific implementation
//	}
//
// HTTP services bind the tenant with Middleware:
//
//	mw := tenant.Middleware(tenant.NewHeaderResolver("X-Tenant-ID"),
//		tenant.WithErrorHandler(onTenantError),
//	)
//
// # Resolver Strategies
//
// - HeaderResolver: reads the tenant from an HTTP header
// - SubdomainResolver: extracts the first label of a host under a suffix
// - PathResolver: extracts a URL path segment
// - CompositeResolver: tries multiple strategies in order
//
// # Error Handling
//
//   - ErrInvalidIdentifier: malformed tenant identifier in the request
//   - ErrNoTenantInContext: RequireTenant found no binding
//
// An unknown (unregistered) tenant is not an error anywhere in this package:
// Router.Route reports it with a false boolean.
package tenant
