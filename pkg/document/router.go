package document

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/tailoring/pkg/catalog"
	"github.com/dmitrymomot/tailoring/pkg/logger"
	"github.com/dmitrymomot/tailoring/pkg/tenant"
)

// Router dispatches catalog generation to the Service of the current tenant.
type Router struct {
	routes  *tenant.Router[Service]
	log     *slog.Logger
	metrics *Metrics
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithRouterLogger sets the router logger.
func WithRouterLogger(l *slog.Logger) RouterOption {
	return func(r *Router) {
		if l != nil {
			r.log = l
		}
	}
}

// WithRouterMetrics counts unrouted requests.
func WithRouterMetrics(m *Metrics) RouterOption {
	return func(r *Router) { r.metrics = m }
}

// NewRouter creates a router over services keyed by tenant id.
func NewRouter(routes *tenant.Router[Service], opts ...RouterOption) *Router {
	r := &Router{routes: routes, log: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CreateCatalog delegates to the current tenant's Service. The boolean is
// false, with a nil error, when the tenant has no Service: no implementation
// means no document. Generation errors of the delegate are returned as-is.
func (r *Router) CreateCatalog(ctx context.Context, cat catalog.Catalog, createdAt time.Time) (*File, bool, error) {
	svc, ok := r.routes.Route(ctx)
	if !ok {
		r.metrics.unrouted()
		r.log.DebugContext(ctx, "no document service for tenant",
			logger.Component("document"),
			logger.CatalogVersion(cat.Version),
		)
		return nil, false, nil
	}

	file, err := svc.CreateCatalog(ctx, cat, createdAt)
	if err != nil {
		return nil, true, err
	}
	return file, true, nil
}

// Service returns the current tenant's Service, if any.
func (r *Router) Service(ctx context.Context) (Service, bool) {
	return r.routes.Route(ctx)
}
