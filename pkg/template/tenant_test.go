package template_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tailoring/pkg/template"
)

type mockEngine struct {
	mock.Mock
}

func (m *mockEngine) Process(ctx context.Context, name string, vars map[string]any) (string, error) {
	args := m.Called(ctx, name, vars)
	return args.String(0), args.Error(1)
}

func (m *mockEngine) ToXHTML(text string, placeholders map[string]any) (string, error) {
	args := m.Called(text, placeholders)
	return args.String(0), args.Error(1)
}

func TestRewrite(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/plattform/catalog.html", template.Rewrite("plattform", "catalog.html"))
	assert.Equal(t, "/a/b/c.html", template.Rewrite("a", "b/c.html"))
	assert.Equal(t, "//x", template.Rewrite("", "x"))
}

func TestTenantEngine_Process(t *testing.T) {
	t.Parallel()

	t.Run("rewrites template name", func(t *testing.T) {
		t.Parallel()

		inner := &mockEngine{}
		inner.On("Process", mock.Anything, "/plattform/catalog.html", map[string]any{
			"fragmentPrefix": "",
			"version":        "1.0",
		}).Return("ok", nil)

		cfg := template.NewRequestConfig("plattform", "Plattform", "/srv/templates")
		engine := template.NewTenantEngine(inner, template.StaticSupplier(cfg))

		out, err := engine.Process(context.Background(), "catalog.html", map[string]any{"version": "1.0"})
		require.NoError(t, err)
		assert.Equal(t, "ok", out)
		inner.AssertExpectations(t)
	})

	t.Run("reads configuration from context", func(t *testing.T) {
		t.Parallel()

		engine := template.NewTenantEngine(template.NewFileEngine(fstest.MapFS{
			"raumfahrt/catalog.html": {Data: []byte(`{{.fragmentPrefix}}:{{.version}}`)},
		}), nil)

		cfg := template.NewRequestConfig("raumfahrt", "Raumfahrt", "").WithFragmentPrefix("frag/")
		ctx := template.WithRequestConfig(context.Background(), cfg)

		out, err := engine.Process(ctx, "catalog.html", map[string]any{"version": "3"})
		require.NoError(t, err)
		assert.Equal(t, "frag/:3", out)
	})

	t.Run("caller variables win over fragment prefix", func(t *testing.T) {
		t.Parallel()

		inner := &mockEngine{}
		inner.On("Process", mock.Anything, "/p/x.html", map[string]any{"fragmentPrefix": "mine"}).Return("", nil)

		engine := template.NewTenantEngine(inner, template.StaticSupplier(template.NewRequestConfig("p", "", "").WithFragmentPrefix("cfg")))
		_, err := engine.Process(context.Background(), "x.html", map[string]any{"fragmentPrefix": "mine"})
		require.NoError(t, err)
		inner.AssertExpectations(t)
	})

	t.Run("missing configuration", func(t *testing.T) {
		t.Parallel()

		engine := template.NewTenantEngine(&mockEngine{}, nil)
		_, err := engine.Process(context.Background(), "catalog.html", nil)
		assert.ErrorIs(t, err, template.ErrNoRequestConfig)
	})

	t.Run("does not mutate caller variables", func(t *testing.T) {
		t.Parallel()

		inner := &mockEngine{}
		inner.On("Process", mock.Anything, mock.Anything, mock.Anything).Return("", nil)
		engine := template.NewTenantEngine(inner, template.StaticSupplier(template.NewRequestConfig("p", "", "")))

		vars := map[string]any{"a": 1}
		_, err := engine.Process(context.Background(), "x.html", vars)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": 1}, vars)
	})
}

func TestTenantEngine_ToXHTML(t *testing.T) {
	t.Parallel()

	inner := &mockEngine{}
	inner.On("ToXHTML", "<br>", map[string]any{"k": "v"}).Return("<br/>", nil)

	engine := template.NewTenantEngine(inner, nil)
	out, err := engine.ToXHTML("<br>", map[string]any{"k": "v"})
	require.NoError(t, err)
	assert.Equal(t, "<br/>", out)
	inner.AssertExpectations(t)
}

func TestRequestConfig(t *testing.T) {
	t.Parallel()

	cfg := template.NewRequestConfig("plattform", "Plattform", "/srv")
	assert.Empty(t, cfg.FragmentPrefix)

	withPrefix := cfg.WithFragmentPrefix("x")
	assert.Equal(t, "x", withPrefix.FragmentPrefix)
	assert.Empty(t, cfg.FragmentPrefix)

	_, ok := template.RequestConfigFromContext(context.Background())
	assert.False(t, ok)
}
