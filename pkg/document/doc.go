// Package document turns requirement catalogs into delivery documents.
//
// A Creator renders one template through a template.Engine, normalises the
// result to XHTML and converts it with a Converter (PDF via an external
// renderer, or plain XHTML). While building template variables it aggregates
// the catalog's DRD cross-references with drd.Aggregate; references to DRDs
// the catalog does not define are logged, counted and omitted unless the
// Creator is strict.
//
// CatalogService binds a Creator to one tenant: it names documents
// "<label>-Katalog_<version>", adds the CREATION_DATE and TENANT_NAME
// placeholders and attaches the tenant's template.RequestConfig to the
// context. Router picks the CatalogService of the tenant bound to the
// context and reports absence, not an error, for unrouted tenants.
//
//	file, ok, err := router.CreateCatalog(ctx, cat, time.Now())
//	switch {
//	case err != nil:
//		// rendering failed
//	case !ok:
//		// tenant has no document service
//	default:
//		// use file.Filename(), file.ContentType, file.Content
//	}
package document
