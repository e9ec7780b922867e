package editability

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/tailoring/pkg/logger"
	"github.com/dmitrymomot/tailoring/pkg/tenant"
)

// Policy decides whether the requirements of a tailoring may be changed.
// It is a pure predicate: the answer is a boolean, never an error.
type Policy interface {
	Editable(ctx context.Context, project, tailoring string) bool
}

// PolicyFunc adapts a function to Policy.
type PolicyFunc func(ctx context.Context, project, tailoring string) bool

func (f PolicyFunc) Editable(ctx context.Context, project, tailoring string) bool {
	return f(ctx, project, tailoring)
}

// Always returns a Policy with a constant answer.
func Always(editable bool) Policy {
	return PolicyFunc(func(context.Context, string, string) bool { return editable })
}

// DefaultEditable is the answer used when the current tenant has no policy.
const DefaultEditable = true

// Router dispatches Editable to the current tenant's Policy and answers
// with a default when there is none.
type Router struct {
	routes *tenant.Router[Policy]
	log    *slog.Logger
}

var _ Policy = (*Router)(nil)

// RouterOption configures a Router.
type RouterOption func(*routerOptions)

type routerOptions struct {
	fallback Policy
	registry *tenant.Registry
	log      *slog.Logger
}

// WithDefault sets the policy used for tenants without their own.
func WithDefault(p Policy) RouterOption {
	return func(o *routerOptions) { o.fallback = p }
}

// WithRegistry restricts routing to registered tenants.
func WithRegistry(reg *tenant.Registry) RouterOption {
	return func(o *routerOptions) { o.registry = reg }
}

// WithLogger sets the router logger.
func WithLogger(l *slog.Logger) RouterOption {
	return func(o *routerOptions) { o.log = l }
}

// NewRouter creates a Router over per-tenant policies. Without WithDefault
// unrouted tenants get Always(DefaultEditable).
func NewRouter(policies map[string]Policy, opts ...RouterOption) *Router {
	o := routerOptions{fallback: Always(DefaultEditable), log: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.fallback == nil {
		o.fallback = Always(DefaultEditable)
	}
	if o.log == nil {
		o.log = slog.Default()
	}

	routerOpts := []tenant.RouterOption[Policy]{tenant.WithFallback(o.fallback)}
	if o.registry != nil {
		routerOpts = append(routerOpts, tenant.WithRegistry[Policy](o.registry))
	}

	return &Router{
		routes: tenant.NewRouter(policies, routerOpts...),
		log:    o.log,
	}
}

// Editable implements Policy.
func (r *Router) Editable(ctx context.Context, project, tailoring string) bool {
	p, routed := r.routes.Route(ctx)
	if !routed {
		p, _ = r.routes.Resolve(ctx)
		r.log.DebugContext(ctx, "no editability policy for tenant, using default",
			logger.Component("editability"),
			logger.Project(project),
			logger.Tailoring(tailoring),
		)
	}
	return p.Editable(ctx, project, tailoring)
}

// LockStore returns the lock store of the current tenant's policy. The
// boolean is false when the tenant's policy is not lock based.
func (r *Router) LockStore(ctx context.Context) (LockStore, bool) {
	p, ok := r.routes.Route(ctx)
	if !ok {
		return nil, false
	}
	lp, ok := p.(*LockPolicy)
	if !ok {
		return nil, false
	}
	return lp.Store(), true
}
