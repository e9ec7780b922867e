// Package api exposes document generation and tailoring editability over
// HTTP using chi.
//
// Every tenant-scoped route requires the tenant header (X-Tenant-ID by
// default). A tenant without an implementation gets 404 from the document
// endpoints; editability falls back to the default policy instead.
package api
