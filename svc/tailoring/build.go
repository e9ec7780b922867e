package tailoring

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/tailoring/pkg/document"
	"github.com/dmitrymomot/tailoring/pkg/editability"
	"github.com/dmitrymomot/tailoring/pkg/logger"
	"github.com/dmitrymomot/tailoring/pkg/template"
	"github.com/dmitrymomot/tailoring/pkg/tenant"
)

// Deps are the shared components tenant services are built from.
type Deps struct {
	// Engine resolves tenant-namespaced template paths, e.g. a FileEngine
	// rooted at the template home.
	Engine       template.Engine
	TemplateHome string
	PDF          document.Converter
	Locks        editability.LockStore
	Metrics      *document.Metrics
	Logger       *slog.Logger
	StrictDRDs   bool
}

// Tailoring is the assembled per-tenant dispatch.
type Tailoring struct {
	Registry    *tenant.Registry
	Documents   *document.Router
	Editability *editability.Router

	tenants  map[string]tenant.Tenant
	services map[string]*document.CatalogService
}

// Tenant returns the definition of a registered tenant.
func (t *Tailoring) Tenant(id string) (tenant.Tenant, bool) {
	tn, ok := t.tenants[id]
	return tn, ok
}

// CatalogService returns the document service of a tenant.
func (t *Tailoring) CatalogService(id string) (*document.CatalogService, bool) {
	svc, ok := t.services[id]
	return svc, ok
}

// Build registers every defined tenant and creates its document service and
// editability policy. Definitions with a blank id are skipped.
func Build(defs []Definition, deps Deps) (*Tailoring, error) {
	if deps.Engine == nil {
		return nil, ErrMissingEngine
	}
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	engine := template.NewTenantEngine(deps.Engine, template.FromContextSupplier())
	registry := tenant.NewRegistry()
	out := &Tailoring{
		Registry: registry,
		tenants:  make(map[string]tenant.Tenant, len(defs)),
		services: make(map[string]*document.CatalogService, len(defs)),
	}
	documents := make(map[string]document.Service, len(defs))
	policies := make(map[string]editability.Policy, len(defs))

	for _, def := range defs {
		def.ID = strings.TrimSpace(def.ID)
		if def.ID == "" {
			log.Warn("skipping tenant definition without id", logger.Component("tailoring"))
			continue
		}
		if !registry.Register(def.ID) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTenant, def.ID)
		}

		svc, err := buildCatalogService(def, engine, deps, log)
		if err != nil {
			return nil, err
		}
		policy, err := buildPolicy(def, deps, log)
		if err != nil {
			return nil, err
		}

		out.tenants[def.ID] = def.Tenant()
		out.services[def.ID] = svc
		documents[def.ID] = svc
		policies[def.ID] = policy

		log.Info("tenant registered",
			logger.Component("tailoring"),
			logger.TenantID(def.ID),
			logger.Template(def.Template),
			slog.String("output", def.Output),
			slog.String("editability", def.Editability.Policy),
		)
	}

	out.Documents = document.NewRouter(
		tenant.NewRouter(documents, tenant.WithRegistry[document.Service](registry)),
		document.WithRouterLogger(log),
		document.WithRouterMetrics(deps.Metrics),
	)
	out.Editability = editability.NewRouter(policies,
		editability.WithRegistry(registry),
		editability.WithLogger(log),
	)
	return out, nil
}

func buildCatalogService(def Definition, engine template.Engine, deps Deps, log *slog.Logger) (*document.CatalogService, error) {
	var converter document.Converter = document.XHTMLConverter{}
	if def.Output == OutputPDF {
		if deps.PDF == nil {
			return nil, fmt.Errorf("%w: tenant %q", ErrMissingPDF, def.ID)
		}
		converter = deps.PDF
	}

	creator, err := document.NewCreator(engine, converter, def.Template,
		document.WithLogger(log),
		document.WithMetrics(deps.Metrics),
		document.WithStrictDRDs(deps.StrictDRDs),
	)
	if err != nil {
		return nil, fmt.Errorf("tenant %q: %w", def.ID, err)
	}

	render := template.NewRequestConfig(def.ID, def.Name, deps.TemplateHome).
		WithFragmentPrefix(def.FragmentPrefix)
	return document.NewCatalogService(creator, def.Tenant(), render, def.Placeholders), nil
}

func buildPolicy(def Definition, deps Deps, log *slog.Logger) (editability.Policy, error) {
	switch def.Editability.Policy {
	case PolicyNever:
		return editability.Always(false), nil
	case PolicyLock:
		if deps.Locks == nil {
			return nil, fmt.Errorf("%w: tenant %q", ErrMissingLocks, def.ID)
		}
		return editability.NewLockPolicy(deps.Locks, log), nil
	default:
		return editability.Always(true), nil
	}
}
