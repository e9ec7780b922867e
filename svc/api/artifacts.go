package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/tailoring/pkg/artifact"
	"github.com/dmitrymomot/tailoring/pkg/document"
	"github.com/dmitrymomot/tailoring/pkg/logger"
	"github.com/dmitrymomot/tailoring/pkg/tenant"
)

// artifactKey returns the storage key addressed by the request. Artifacts of
// other tenants are reported as not found.
func (h *handler) artifactKey(w http.ResponseWriter, r *http.Request) (string, bool) {
	if h.storage == nil {
		writeError(w, http.StatusNotFound, "artifact storage is disabled")
		return "", false
	}
	owner := chi.URLParam(r, "owner")
	if owner != tenant.MustIDFromContext(r.Context()) {
		writeError(w, http.StatusNotFound, artifact.ErrFileNotFound.Error())
		return "", false
	}

	key, err := artifact.KeyOf(owner, chi.URLParam(r, "version"), chi.URLParam(r, "file"))
	if err != nil {
		writeError(w, statusOf(err), err.Error())
		return "", false
	}
	return key, true
}

func (h *handler) artifact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key, ok := h.artifactKey(w, r)
	if !ok {
		return
	}
	if !h.storage.Exists(ctx, key) {
		writeError(w, http.StatusNotFound, artifact.ErrFileNotFound.Error())
		return
	}

	content, err := h.storage.Open(ctx, key)
	if err != nil {
		h.log.ErrorContext(ctx, "artifact not readable",
			logger.Component("api"),
			slog.String("key", key),
			logger.Error(err),
		)
		writeError(w, statusOf(err), err.Error())
		return
	}

	name := chi.URLParam(r, "file")
	w.Header().Set("Content-Type", document.ContentTypeOf(name))
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}

func (h *handler) deleteArtifact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key, ok := h.artifactKey(w, r)
	if !ok {
		return
	}

	if err := h.storage.Delete(ctx, key); err != nil {
		writeError(w, statusOf(err), err.Error())
		return
	}
	h.log.InfoContext(ctx, "artifact deleted",
		logger.Component("api"),
		slog.String("key", key),
	)
	w.WriteHeader(http.StatusNoContent)
}
