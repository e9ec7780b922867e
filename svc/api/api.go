package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/tailoring/pkg/artifact"
	"github.com/dmitrymomot/tailoring/pkg/httpserver"
	"github.com/dmitrymomot/tailoring/pkg/requestid"
	"github.com/dmitrymomot/tailoring/pkg/tenant"
	"github.com/dmitrymomot/tailoring/svc/tailoring"
)

// Config wires the HTTP API.
type Config struct {
	Tailoring *tailoring.Tailoring
	// Storage keeps a copy of every generated document. Optional.
	Storage  artifact.Storage
	Gatherer prometheus.Gatherer
	Checks   []httpserver.Check
	// Resolver binds the tenant of tenant-scoped routes. Defaults to a
	// header resolver reading TenantHeader.
	Resolver     tenant.Resolver
	TenantHeader string
	Logger       *slog.Logger
	// Now defaults to time.Now and stamps catalogs sent without created_at.
	Now func() time.Time
}

type handler struct {
	tl      *tailoring.Tailoring
	storage artifact.Storage
	log     *slog.Logger
	now     func() time.Time
}

// NewRouter returns the service's HTTP handler.
//
//	GET    /livez
//	GET    /readyz
//	GET    /metrics
//	POST   /catalogs/document
//	POST   /catalogs/preview
//	GET    /projects/{project}/tailorings/{tailoring}/editable
//	PUT    /projects/{project}/tailorings/{tailoring}/lock
//	DELETE /projects/{project}/tailorings/{tailoring}/lock
//	GET    /artifacts/{owner}/{version}/{file}
//	DELETE /artifacts/{owner}/{version}/{file}
//
// Tenant-scoped routes are also mounted below /tenants/{tenant} for path
// based tenant resolution.
func NewRouter(cfg Config) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	resolver := cfg.Resolver
	if resolver == nil {
		resolver = tenant.NewHeaderResolver(cfg.TenantHeader)
	}

	h := &handler{tl: cfg.Tailoring, storage: cfg.Storage, log: log, now: now}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(accessLog(log))
	r.Use(middleware.Recoverer)

	r.Get("/livez", httpserver.LivenessHandler())
	r.Get("/readyz", httpserver.ReadinessHandler(log, 5*time.Second, cfg.Checks...))
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(tenant.Middleware(resolver,
			tenant.WithLogger(log),
			tenant.WithErrorHandler(tenantError),
		))
		r.Use(tenant.RequireTenant(tenantError))

		h.tenantRoutes(r)
		r.Route("/tenants/{tenant}", h.tenantRoutes)
	})

	return r
}

func (h *handler) tenantRoutes(r chi.Router) {
	r.Post("/catalogs/document", h.createDocument)
	r.Post("/catalogs/preview", h.previewDocument)

	r.Route("/projects/{project}/tailorings/{tailoring}", func(r chi.Router) {
		r.Get("/editable", h.editable)
		r.Put("/lock", h.lock)
		r.Delete("/lock", h.unlock)
	})

	r.Get("/artifacts/{owner}/{version}/{file}", h.artifact)
	r.Delete("/artifacts/{owner}/{version}/{file}", h.deleteArtifact)
}

func accessLog(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			level := slog.LevelInfo
			if ww.Status() >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			log.Log(r.Context(), level, "http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(started)),
			)
		})
	}
}
