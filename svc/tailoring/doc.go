// Package tailoring assembles the tenant-specific document services and
// editability policies of the service from a YAML definitions file.
//
//	tenants:
//	  - id: plattform
//	    name: Plattform
//	    label: PLATTFORM
//	    output: pdf            # pdf | xhtml
//	    template: catalog.html
//	    placeholders:
//	      DRD_DOC_ID: PL-DRD
//	    editability:
//	      policy: lock         # always | never | lock
//
// Build registers each tenant and returns a Tailoring whose Documents and
// Editability routers dispatch on the tenant bound to the request context.
package tailoring
