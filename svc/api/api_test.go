package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tailoring/pkg/artifact"
	"github.com/dmitrymomot/tailoring/pkg/document"
	"github.com/dmitrymomot/tailoring/pkg/editability"
	"github.com/dmitrymomot/tailoring/pkg/httpserver"
	"github.com/dmitrymomot/tailoring/pkg/template"
	"github.com/dmitrymomot/tailoring/pkg/tenant"
	"github.com/dmitrymomot/tailoring/svc/api"
	"github.com/dmitrymomot/tailoring/svc/tailoring"
)

const catalogBody = `{
	"catalog": {
		"version": "2.0",
		"requirements": [
			{"id": "R1", "text": "first", "drds": ["D1"]},
			{"id": "R2", "text": "second", "drds": ["D1", "D9"]}
		],
		"drds": [{"number": "D1", "title": "Plan"}]
	},
	"created_at": "2026-05-06T10:00:00Z"
}`

type env struct {
	handler http.Handler
	locks   *editability.MemoryLockStore
	storage *artifact.LocalStorage
	metrics *document.Metrics
}

func newEnv(t *testing.T) env {
	t.Helper()
	return newEnvWithResolver(t, nil)
}

func newEnvWithResolver(t *testing.T, resolver tenant.Resolver) env {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()
	metrics := document.NewMetrics(reg)
	locks := editability.NewMemoryLockStore()

	tl, err := tailoring.Build([]tailoring.Definition{
		{
			ID: "plattform", Name: "Plattform", Label: "PL",
			Output: tailoring.OutputXHTML, Template: "catalog.html",
			Editability: tailoring.Editability{Policy: tailoring.PolicyLock},
		},
		{
			ID: "ground", Name: "Ground", Label: "GR",
			Output: tailoring.OutputXHTML, Template: "missing.html",
			Editability: tailoring.Editability{Policy: tailoring.PolicyNever},
		},
	}, tailoring.Deps{
		Engine: template.NewFileEngine(fstest.MapFS{
			"plattform/catalog.html": {Data: []byte(
				`<h1>{{.documentId}}</h1>{{range .drds}}<h2>{{.Number}}</h2>{{range .Requirements}}<p>{{.}}</p>{{end}}{{end}}<i>${CREATION_DATE}</i>`,
			)},
		}),
		TemplateHome: "/templates",
		Locks:        locks,
		Metrics:      metrics,
		Logger:       log,
	})
	require.NoError(t, err)

	storage, err := artifact.NewLocalStorage(t.TempDir(), "/artifacts")
	require.NoError(t, err)

	h := api.NewRouter(api.Config{
		Tailoring:    tl,
		Storage:      storage,
		Gatherer:     reg,
		Resolver:     resolver,
		TenantHeader: "X-Tenant-ID",
		Logger:       log,
		Checks: []httpserver.Check{
			{Name: "templates", Probe: func(context.Context) error { return nil }},
		},
		Now: func() time.Time { return time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC) },
	})
	return env{handler: h, locks: locks, storage: storage, metrics: metrics}
}

func do(h http.Handler, method, path, tenantID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if tenantID != "" {
		req.Header.Set("X-Tenant-ID", tenantID)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCreateDocument(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	rec := do(e.handler, http.MethodPost, "/catalogs/document", "plattform", catalogBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, "application/xhtml+xml", rec.Header().Get("Content-Type"))
	assert.Equal(t, "PL-Katalog_2.0", rec.Header().Get(api.HeaderDocumentID))
	assert.Equal(t, `attachment; filename="PL-Katalog_2.0.xhtml"`, rec.Header().Get("Content-Disposition"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	body := rec.Body.String()
	assert.Contains(t, body, "<h1>PL-Katalog_2.0</h1><h2>D1</h2><p>R1</p><p>R2</p>")
	assert.NotContains(t, body, "D9")
	assert.Contains(t, body, "<i>2026-05-06</i>")

	key := rec.Header().Get(api.HeaderArtifactKey)
	assert.Equal(t, "plattform/2.0/PL-Katalog_2.0.xhtml", key)
	stored, err := e.storage.Open(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, rec.Body.Bytes(), stored)
}

func TestArtifacts(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	rec := do(e.handler, http.MethodPost, "/catalogs/document", "plattform", catalogBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	doc := rec.Body.Bytes()

	url := rec.Header().Get(api.HeaderArtifactURL)
	require.Equal(t, "/artifacts/plattform/2.0/PL-Katalog_2.0.xhtml", url)

	t.Run("download", func(t *testing.T) {
		rec := do(e.handler, http.MethodGet, url, "plattform", "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, document.ContentTypeXHTML, rec.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="PL-Katalog_2.0.xhtml"`, rec.Header().Get("Content-Disposition"))
		assert.Equal(t, doc, rec.Body.Bytes())
	})

	t.Run("other tenant", func(t *testing.T) {
		rec := do(e.handler, http.MethodGet, url, "ground", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		rec = do(e.handler, http.MethodDelete, url, "ground", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.True(t, e.storage.Exists(context.Background(), "plattform/2.0/PL-Katalog_2.0.xhtml"))
	})

	t.Run("missing artifact", func(t *testing.T) {
		rec := do(e.handler, http.MethodGet, "/artifacts/plattform/2.0/missing.pdf", "plattform", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid file name", func(t *testing.T) {
		rec := do(e.handler, http.MethodGet, "/artifacts/plattform/2.0/..", "plattform", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("delete", func(t *testing.T) {
		rec := do(e.handler, http.MethodDelete, url, "plattform", "")
		require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

		rec = do(e.handler, http.MethodGet, url, "plattform", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		rec = do(e.handler, http.MethodDelete, url, "plattform", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestArtifacts_StorageDisabled(t *testing.T) {
	t.Parallel()

	tl, err := tailoring.Build([]tailoring.Definition{{
		ID: "plattform", Output: tailoring.OutputXHTML, Template: "catalog.html",
	}}, tailoring.Deps{
		Engine: template.NewFileEngine(fstest.MapFS{}),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	h := api.NewRouter(api.Config{Tailoring: tl, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})

	rec := do(h, http.MethodGet, "/artifacts/plattform/1/x.pdf", "plattform", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTenantPathRoutes(t *testing.T) {
	t.Parallel()
	e := newEnvWithResolver(t, tailoring.PathResolver())

	rec := do(e.handler, http.MethodPost, "/tenants/plattform/catalogs/document", "", catalogBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "PL-Katalog_2.0", rec.Header().Get(api.HeaderDocumentID))

	rec = do(e.handler, http.MethodGet, "/tenants/plattform/artifacts/plattform/2.0/PL-Katalog_2.0.xhtml", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(e.handler, http.MethodGet, "/tenants/ground/projects/P1/tailorings/T1/editable", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"project":"P1","tailoring":"T1","editable":false}`, rec.Body.String())

	rec = do(e.handler, http.MethodPost, "/catalogs/document", "plattform", catalogBody)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateDocument_DefaultsCreatedAt(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	rec := do(e.handler, http.MethodPost, "/catalogs/document", "plattform", `{"catalog":{"version":"1"}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "<i>2026-01-02</i>")
}

func TestCreateDocument_Errors(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	tests := []struct {
		name   string
		tenant string
		body   string
		status int
	}{
		{name: "missing tenant", tenant: "", body: catalogBody, status: http.StatusBadRequest},
		{name: "invalid tenant", tenant: "bad tenant!", body: catalogBody, status: http.StatusBadRequest},
		{name: "unrouted tenant", tenant: "other", body: catalogBody, status: http.StatusNotFound},
		{name: "malformed body", tenant: "plattform", body: `{"catalog":`, status: http.StatusBadRequest},
		{name: "unknown field", tenant: "plattform", body: `{"catalogue":{}}`, status: http.StatusBadRequest},
		{name: "invalid catalog", tenant: "plattform", body: `{"catalog":{"version":""}}`, status: http.StatusUnprocessableEntity},
		{name: "missing template", tenant: "ground", body: catalogBody, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := do(e.handler, http.MethodPost, "/catalogs/document", tt.tenant, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())

			var resp struct {
				Error string `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestCreateDocument_RequiresJSON(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/catalogs/document", strings.NewReader(catalogBody))
	req.Header.Set("X-Tenant-ID", "plattform")
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	rec = do(e.handler, http.MethodPost, "/catalogs/document", "plattform", catalogBody+`{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPreviewDocument(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	rec := do(e.handler, http.MethodPost, "/catalogs/preview", "plattform", catalogBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<h1>PL-Katalog_2.0</h1>")
	assert.NotContains(t, rec.Body.String(), "<?xml")

	rec = do(e.handler, http.MethodPost, "/catalogs/preview", "other", catalogBody)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEditability(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	editable := func(tenantID string) bool {
		rec := do(e.handler, http.MethodGet, "/projects/P1/tailorings/T1/editable", tenantID, "")
		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Project   string `json:"project"`
			Tailoring string `json:"tailoring"`
			Editable  bool   `json:"editable"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "P1", resp.Project)
		assert.Equal(t, "T1", resp.Tailoring)
		return resp.Editable
	}

	assert.True(t, editable("plattform"))
	assert.False(t, editable("ground"))
	assert.True(t, editable("other"))

	rec := do(e.handler, http.MethodPut, "/projects/P1/tailorings/T1/lock", "plattform", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, editable("plattform"))

	rec = do(e.handler, http.MethodDelete, "/projects/P1/tailorings/T1/lock", "plattform", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, editable("plattform"))

	rec = do(e.handler, http.MethodPut, "/projects/P1/tailorings/T1/lock", "ground", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLock_StoreFailure(t *testing.T) {
	t.Parallel()

	tl, err := tailoring.Build([]tailoring.Definition{{
		ID: "plattform", Output: tailoring.OutputXHTML, Template: "catalog.html",
		Editability: tailoring.Editability{Policy: tailoring.PolicyLock},
	}}, tailoring.Deps{
		Engine: template.NewFileEngine(fstest.MapFS{}),
		Locks:  failingStore{},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	h := api.NewRouter(api.Config{Tailoring: tl, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})

	rec := do(h, http.MethodPut, "/projects/P/tailorings/T/lock", "plattform", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestProbesAndMetrics(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	rec := do(e.handler, http.MethodGet, "/livez", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(e.handler, http.MethodGet, "/readyz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"templates":"ok"}`, rec.Body.String())

	_ = do(e.handler, http.MethodPost, "/catalogs/document", "plattform", catalogBody)
	rec = do(e.handler, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `tailoring_documents_generated_total{outcome="success",tenant="plattform"} 1`)
	assert.Contains(t, rec.Body.String(), `tailoring_dangling_drd_references_total{tenant="plattform"} 1`)
}

type failingStore struct{}

var errDown = errors.Join(editability.ErrStoreUnavailable, errors.New("down"))

func (failingStore) Locked(context.Context, string, string) (bool, error) { return false, errDown }
func (failingStore) Lock(context.Context, string, string) error           { return errDown }
func (failingStore) Unlock(context.Context, string, string) error         { return errDown }
