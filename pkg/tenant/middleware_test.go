package tenant_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/tailoring/pkg/tenant"
)

func captureTenant(got *string, bound *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got, *bound = tenant.IDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	mw := tenant.Middleware(tenant.NewHeaderResolver(""))

	t.Run("binds resolved tenant", func(t *testing.T) {
		t.Parallel()

		var id string
		var bound bool
		req := httptest.NewRequest(http.MethodGet, "/catalogs", nil)
		req.Header.Set("X-Tenant-ID", "plattform")
		rec := httptest.NewRecorder()

		mw(captureTenant(&id, &bound)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, bound)
		assert.Equal(t, "plattform", id)
	})

	t.Run("clears inherited binding", func(t *testing.T) {
		t.Parallel()

		var id string
		var bound bool
		req := httptest.NewRequest(http.MethodGet, "/catalogs", nil)
		req = req.WithContext(tenant.WithID(context.Background(), "stale"))
		rec := httptest.NewRecorder()

		mw(captureTenant(&id, &bound)).ServeHTTP(rec, req)

		assert.False(t, bound)
	})

	t.Run("invalid identifier is rejected", func(t *testing.T) {
		t.Parallel()

		var id string
		var bound bool
		req := httptest.NewRequest(http.MethodGet, "/catalogs", nil)
		req.Header.Set("X-Tenant-ID", "a b")
		rec := httptest.NewRecorder()

		mw(captureTenant(&id, &bound)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRequireTenant(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	h := tenant.RequireTenant(nil)(next)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(tenant.WithID(req.Context(), "plattform"))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
