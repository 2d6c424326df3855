package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/skip2/go-qrcode"

	"acadverify/internal/store"
)

// VerificationQRCode renders a QR code pointing at the public report page
// for a completed verification.
// GET /api/verifications/{id}/qrcode
func (a *API) VerificationQRCode(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := a.verifications.Get(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "verification not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	data := a.cfg.FrontendBaseURL + "/verifications/" + id
	png, err := qrcode.Encode(data, qrcode.Medium, 256)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
