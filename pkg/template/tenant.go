package template

import (
	"context"
	"fmt"
	"maps"
)

// FragmentPrefixVar is the template variable holding the request's fragment prefix.
const FragmentPrefixVar = "fragmentPrefix"

// RequestConfig carries the per-render parameters of one tenant: the id that
// namespaces template paths, a display name, the system-wide template home
// and an optional fragment-include prefix.
type RequestConfig struct {
	ID             string
	Name           string
	TemplateHome   string
	FragmentPrefix string
}

// NewRequestConfig builds a RequestConfig with an empty fragment prefix.
func NewRequestConfig(id, name, templateHome string) RequestConfig {
	return RequestConfig{ID: id, Name: name, TemplateHome: templateHome}
}

// WithFragmentPrefix returns a copy of c with the given fragment prefix.
func (c RequestConfig) WithFragmentPrefix(prefix string) RequestConfig {
	c.FragmentPrefix = prefix
	return c
}

type requestConfigKey struct{}

// WithRequestConfig binds cfg to ctx for the duration of one render.
func WithRequestConfig(ctx context.Context, cfg RequestConfig) context.Context {
	return context.WithValue(ctx, requestConfigKey{}, cfg)
}

// RequestConfigFromContext returns the RequestConfig bound to ctx.
func RequestConfigFromContext(ctx context.Context) (RequestConfig, bool) {
	cfg, ok := ctx.Value(requestConfigKey{}).(RequestConfig)
	return cfg, ok
}

// ConfigSupplier returns the renderer configuration of the current request.
type ConfigSupplier func(ctx context.Context) (RequestConfig, bool)

// FromContextSupplier reads the configuration bound with WithRequestConfig.
func FromContextSupplier() ConfigSupplier {
	return RequestConfigFromContext
}

// StaticSupplier always returns cfg.
func StaticSupplier(cfg RequestConfig) ConfigSupplier {
	return func(context.Context) (RequestConfig, bool) { return cfg, true }
}

// Rewrite returns the tenant-namespaced template path "/" + id + "/" + name.
func Rewrite(id, name string) string {
	return "/" + id + "/" + name
}

// TenantEngine namespaces every template lookup of an inner engine by the
// current request's configuration id. XHTML normalisation is passed through.
type TenantEngine struct {
	inner  Engine
	config ConfigSupplier
}

var _ Engine = (*TenantEngine)(nil)

// NewTenantEngine wraps inner. A nil supplier reads the configuration from context.
func NewTenantEngine(inner Engine, config ConfigSupplier) *TenantEngine {
	if config == nil {
		config = FromContextSupplier()
	}
	return &TenantEngine{inner: inner, config: config}
}

// Process rewrites name with Rewrite and delegates to the inner engine. The
// request's fragment prefix is exposed to templates as FragmentPrefixVar
// unless vars already define it.
func (e *TenantEngine) Process(ctx context.Context, name string, vars map[string]any) (string, error) {
	cfg, ok := e.config(ctx)
	if !ok || cfg.ID == "" {
		return "", fmt.Errorf("%w: template %q", ErrNoRequestConfig, name)
	}

	scoped := make(map[string]any, len(vars)+1)
	scoped[FragmentPrefixVar] = cfg.FragmentPrefix
	maps.Copy(scoped, vars)

	return e.inner.Process(ctx, Rewrite(cfg.ID, name), scoped)
}

// ToXHTML delegates unchanged.
func (e *TenantEngine) ToXHTML(text string, placeholders map[string]any) (string, error) {
	return e.inner.ToXHTML(text, placeholders)
}
