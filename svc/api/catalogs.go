package api

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrymomot/tailoring/pkg/artifact"
	"github.com/dmitrymomot/tailoring/pkg/catalog"
	"github.com/dmitrymomot/tailoring/pkg/document"
	"github.com/dmitrymomot/tailoring/pkg/logger"
	"github.com/dmitrymomot/tailoring/pkg/template"
	"github.com/dmitrymomot/tailoring/pkg/tenant"
)

// Response headers of the document endpoint.
const (
	HeaderDocumentID  = "X-Document-ID"
	HeaderArtifactKey = "X-Artifact-Key"
	HeaderArtifactURL = "X-Artifact-URL"
)

const maxCatalogBody = 16 << 20

type catalogRequest struct {
	Catalog   catalog.Catalog `json:"catalog"`
	CreatedAt *time.Time      `json:"created_at,omitempty"`
}

func (h *handler) decodeCatalog(w http.ResponseWriter, r *http.Request) (catalogRequest, error) {
	var req catalogRequest
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		return req, fmt.Errorf("%w: got %q, expected application/json", ErrUnsupportedMediaType, mediaType)
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCatalogBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return req, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	if dec.More() {
		return req, fmt.Errorf("%w: unexpected data after JSON object", ErrBadRequest)
	}
	if req.CreatedAt == nil {
		now := h.now()
		req.CreatedAt = &now
	}
	return req, nil
}

func (h *handler) createDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, err := h.decodeCatalog(w, r)
	if err != nil {
		writeError(w, statusOf(err), err.Error())
		return
	}

	file, ok, err := h.tl.Documents.CreateCatalog(ctx, req.Catalog, *req.CreatedAt)
	if err != nil {
		writeError(w, statusOf(err), err.Error())
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, ErrNoTenant.Error())
		return
	}

	if key, saved := h.save(r, req.Catalog.Version, file); saved {
		w.Header().Set(HeaderArtifactKey, key)
		w.Header().Set(HeaderArtifactURL, h.storage.URL(key))
	}

	w.Header().Set(HeaderDocumentID, file.Name)
	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Content)))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Content)
}

// save stores the document copy. Failures are logged and do not fail the
// request.
func (h *handler) save(r *http.Request, version string, file *document.File) (string, bool) {
	if h.storage == nil {
		return "", false
	}
	ctx := r.Context()
	tenantID := tenant.MustIDFromContext(ctx)

	key, err := artifact.Key(tenantID, version, file)
	if err == nil {
		_, err = h.storage.Save(ctx, key, file)
	}
	if err != nil {
		h.log.ErrorContext(ctx, "artifact not stored",
			logger.Component("api"),
			logger.DocumentID(file.Name),
			logger.Error(err),
		)
		return "", false
	}
	return key, true
}

func (h *handler) previewDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, err := h.decodeCatalog(w, r)
	if err != nil {
		writeError(w, statusOf(err), err.Error())
		return
	}

	svc, ok := h.tl.CatalogService(tenant.MustIDFromContext(ctx))
	if !ok {
		writeError(w, http.StatusNotFound, ErrNoTenant.Error())
		return
	}

	out, err := template.Render(ctx, svc.PreviewCatalog(req.Catalog, *req.CreatedAt))
	if err != nil {
		writeError(w, statusOf(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(out))
}
