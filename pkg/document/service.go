package document

import (
	"context"
	"io"
	"maps"
	"time"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/tailoring/pkg/catalog"
	"github.com/dmitrymomot/tailoring/pkg/template"
	"github.com/dmitrymomot/tailoring/pkg/tenant"
)

// Placeholder keys set by CatalogService.
const (
	PlaceholderCreationDate = "CREATION_DATE"
	PlaceholderTenantName   = "TENANT_NAME"
)

// CreationDateLayout formats the creation timestamp placeholder.
const CreationDateLayout = "2006-01-02"

// Service generates the catalog document of one tenant.
type Service interface {
	CreateCatalog(ctx context.Context, cat catalog.Catalog, createdAt time.Time) (*File, error)
}

// CatalogDocumentID returns the catalog document id "<label>-Katalog_<version>".
func CatalogDocumentID(label, version string) string {
	return label + "-Katalog_" + version
}

// CatalogService is the tenant-specific Service backed by a Creator.
type CatalogService struct {
	creator      *Creator
	tenant       tenant.Tenant
	render       template.RequestConfig
	placeholders map[string]any
}

var _ Service = (*CatalogService)(nil)

// NewCatalogService creates the service of t. placeholders are the tenant's
// fixed placeholders (e.g. DRD document codes) and are copied.
func NewCatalogService(creator *Creator, t tenant.Tenant, render template.RequestConfig, placeholders map[string]any) *CatalogService {
	return &CatalogService{
		creator:      creator,
		tenant:       t,
		render:       render,
		placeholders: maps.Clone(placeholders),
	}
}

// Tenant returns the tenant the service was built for.
func (s *CatalogService) Tenant() tenant.Tenant {
	return s.tenant
}

// DocumentID returns the document id for a catalog version.
func (s *CatalogService) DocumentID(version string) string {
	return CatalogDocumentID(s.label(), version)
}

// CreateCatalog renders cat with the tenant's renderer configuration.
// The output depends only on its arguments: identical inputs give identical
// content.
func (s *CatalogService) CreateCatalog(ctx context.Context, cat catalog.Catalog, createdAt time.Time) (*File, error) {
	ctx = template.WithRequestConfig(ctx, s.render)
	return s.creator.CreateDocument(ctx, s.DocumentID(cat.Version), cat, s.placeholdersAt(createdAt))
}

// PreviewCatalog returns the XHTML of the catalog document as a templ.Component.
func (s *CatalogService) PreviewCatalog(cat catalog.Catalog, createdAt time.Time) templ.Component {
	inner := s.creator.Preview(s.DocumentID(cat.Version), cat, s.placeholdersAt(createdAt))
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return inner.Render(template.WithRequestConfig(ctx, s.render), w)
	})
}

func (s *CatalogService) placeholdersAt(createdAt time.Time) map[string]any {
	ph := maps.Clone(s.placeholders)
	if ph == nil {
		ph = make(map[string]any, 2)
	}
	ph[PlaceholderCreationDate] = createdAt.Format(CreationDateLayout)
	ph[PlaceholderTenantName] = s.tenant.Name
	return ph
}

func (s *CatalogService) label() string {
	if s.tenant.Label != "" {
		return s.tenant.Label
	}
	return s.tenant.ID
}
