package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/tailoring/pkg/logger"
)

type editableResponse struct {
	Project   string `json:"project"`
	Tailoring string `json:"tailoring"`
	Editable  bool   `json:"editable"`
}

func pathKey(r *http.Request) (string, string) {
	return chi.URLParam(r, "project"), chi.URLParam(r, "tailoring")
}

func (h *handler) editable(w http.ResponseWriter, r *http.Request) {
	project, tailoring := pathKey(r)
	writeJSON(w, http.StatusOK, editableResponse{
		Project:   project,
		Tailoring: tailoring,
		Editable:  h.tl.Editability.Editable(r.Context(), project, tailoring),
	})
}

func (h *handler) lock(w http.ResponseWriter, r *http.Request) {
	h.setLock(w, r, true)
}

func (h *handler) unlock(w http.ResponseWriter, r *http.Request) {
	h.setLock(w, r, false)
}

func (h *handler) setLock(w http.ResponseWriter, r *http.Request, locked bool) {
	ctx := r.Context()
	project, tailoring := pathKey(r)

	store, ok := h.tl.Editability.LockStore(ctx)
	if !ok {
		writeError(w, http.StatusConflict, "tenant does not use tailoring locks")
		return
	}

	var err error
	if locked {
		err = store.Lock(ctx, project, tailoring)
	} else {
		err = store.Unlock(ctx, project, tailoring)
	}
	if err != nil {
		h.log.ErrorContext(ctx, "lock update failed",
			logger.Component("api"),
			logger.Project(project),
			logger.Tailoring(tailoring),
			logger.Error(err),
		)
		writeError(w, statusOf(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
