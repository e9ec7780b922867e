package tailoring

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrymomot/tailoring/pkg/tenant"
)

// Tenant resolver kinds, selected with TENANT_RESOLVER.
const (
	ResolverHeader    = "header"
	ResolverSubdomain = "subdomain"
	ResolverPath      = "path"
	ResolverComposite = "composite"
)

// TenantPathPrefix is the path prefix of tenant-scoped routes addressed as
// "/tenants/{tenant}/...".
const TenantPathPrefix = "/tenants/"

// Resolver builds the tenant resolver selected by the configuration.
// The composite resolver tries the header, then the subdomain (when
// TENANT_DOMAIN is set), then the path.
func (c Config) Resolver() (tenant.Resolver, error) {
	switch strings.ToLower(strings.TrimSpace(c.TenantResolver)) {
	case "", ResolverHeader:
		return tenant.NewHeaderResolver(c.TenantHeader), nil
	case ResolverSubdomain:
		if c.TenantDomain == "" {
			return nil, fmt.Errorf("%w: subdomain resolver requires TENANT_DOMAIN", ErrInvalidResolver)
		}
		return tenant.NewSubdomainResolver(c.TenantDomain), nil
	case ResolverPath:
		return PathResolver(), nil
	case ResolverComposite:
		resolvers := []tenant.Resolver{tenant.NewHeaderResolver(c.TenantHeader)}
		if c.TenantDomain != "" {
			resolvers = append(resolvers, tenant.NewSubdomainResolver(c.TenantDomain))
		}
		resolvers = append(resolvers, PathResolver())
		return tenant.NewCompositeResolver(resolvers...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidResolver, c.TenantResolver)
	}
}

// PathResolver reads the tenant from "/tenants/{tenant}/..." paths and
// resolves nothing for any other path.
func PathResolver() tenant.Resolver {
	segment := tenant.NewPathResolver(2)
	return tenant.ResolverFunc(func(r *http.Request) (string, error) {
		if !strings.HasPrefix(r.URL.Path, TenantPathPrefix) {
			return "", nil
		}
		return segment.Resolve(r)
	})
}
