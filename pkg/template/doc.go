// Package template renders tailoring documents from html/template files and
// normalises the result to XHTML for PDF conversion.
//
// FileEngine is tenant-agnostic. TenantEngine composes it with a
// ConfigSupplier and rewrites every template name to
// "/" + RequestConfig.ID + "/" + name, so each tenant owns a directory under
// the template home:
//
//	templates/
//	  plattform/
//	    catalog.html
//	    _drd.html
//	  raumfahrt/
//	    catalog.html
//
// Usage:
//
//	base, err := template.NewDirEngine(cfg.TemplateHome)
//	engine := template.NewTenantEngine(base, nil)
//
//	ctx = template.WithRequestConfig(ctx,
//		template.NewRequestConfig("plattform", "Plattform", cfg.TemplateHome))
//	out, err := engine.Process(ctx, "catalog.html", vars)
//	xhtml, err := engine.ToXHTML(out, map[string]any{"DRD_DOC_ID": "PL-DRD"})
package template
