package tenant_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tailoring/pkg/tenant"
)

func TestRouter_Route(t *testing.T) {
	t.Parallel()

	routes := map[string]string{"plattform": "impl-plattform", "raumfahrt": "impl-raumfahrt"}

	t.Run("delegates to bound tenant", func(t *testing.T) {
		t.Parallel()

		r := tenant.NewRouter(routes)
		impl, ok := r.Route(tenant.WithID(context.Background(), "raumfahrt"))
		require.True(t, ok)
		assert.Equal(t, "impl-raumfahrt", impl)
	})

	t.Run("unset tenant has no route", func(t *testing.T) {
		t.Parallel()

		r := tenant.NewRouter(routes)
		impl, ok := r.Route(context.Background())
		assert.False(t, ok)
		assert.Empty(t, impl)
	})

	t.Run("unknown tenant has no route", func(t *testing.T) {
		t.Parallel()

		r := tenant.NewRouter(routes)
		_, ok := r.Route(tenant.WithID(context.Background(), "other"))
		assert.False(t, ok)
	})

	t.Run("table is copied on construction", func(t *testing.T) {
		t.Parallel()

		src := map[string]string{"a": "x"}
		r := tenant.NewRouter(src)
		src["b"] = "y"
		delete(src, "a")

		assert.Equal(t, []string{"a"}, r.Tenants())
	})

	t.Run("registry filter drops unregistered routes", func(t *testing.T) {
		t.Parallel()

		reg := tenant.NewRegistry("plattform")
		r := tenant.NewRouter(routes, tenant.WithRegistry[string](reg))
		assert.Equal(t, []string{"plattform"}, r.Tenants())

		_, ok := r.Route(tenant.WithID(context.Background(), "raumfahrt"))
		assert.False(t, ok)
	})
}

func TestRouter_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("uses fallback for unrouted tenant", func(t *testing.T) {
		t.Parallel()

		r := tenant.NewRouter(map[string]int{"a": 1}, tenant.WithFallback(42))

		v, ok := r.Resolve(context.Background())
		require.True(t, ok)
		assert.Equal(t, 42, v)

		v, ok = r.Resolve(tenant.WithID(context.Background(), "a"))
		require.True(t, ok)
		assert.Equal(t, 1, v)
	})

	t.Run("no fallback reports absence", func(t *testing.T) {
		t.Parallel()

		r := tenant.NewRouter(map[string]int{"a": 1})
		_, ok := r.Resolve(tenant.WithID(context.Background(), "b"))
		assert.False(t, ok)
	})
}
