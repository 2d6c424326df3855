package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"acadverify/internal/store"
)

// ListVerifications returns verification history, newest first.
// GET /api/verifications?status=&page=&limit=
func (a *API) ListVerifications(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	rows, err := a.verifications.List(r.Context(), r.URL.Query().Get("status"), page, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"verifications": rows, "page": page, "limit": limit})
}

// GetVerification returns one history row.
// GET /api/verifications/{id}
func (a *API) GetVerification(w http.ResponseWriter, r *http.Request) {
	row, err := a.verifications.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "verification not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"verification": row})
}
