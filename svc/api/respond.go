package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/tailoring/pkg/artifact"
	"github.com/dmitrymomot/tailoring/pkg/catalog"
	"github.com/dmitrymomot/tailoring/pkg/document"
	"github.com/dmitrymomot/tailoring/pkg/editability"
	"github.com/dmitrymomot/tailoring/pkg/tenant"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// statusOf maps generation and store errors to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest), errors.Is(err, artifact.ErrInvalidPath):
		return http.StatusBadRequest
	case errors.Is(err, artifact.ErrFileNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, document.ErrInvalidCatalog),
		errors.Is(err, catalog.ErrMissingVersion),
		errors.Is(err, document.ErrDanglingReference),
		errors.Is(err, editability.ErrInvalidKey):
		return http.StatusUnprocessableEntity
	case errors.Is(err, document.ErrConvert):
		return http.StatusBadGateway
	case errors.Is(err, editability.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func tenantError(w http.ResponseWriter, _ *http.Request, err error) {
	switch {
	case errors.Is(err, tenant.ErrInvalidIdentifier):
		writeError(w, http.StatusBadRequest, "invalid tenant identifier")
	default:
		writeError(w, http.StatusBadRequest, "tenant required")
	}
}
