package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var allowedUploadExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".pdf": true,
}

// UploadCertificateFile stores an uploaded certificate document on disk and
// returns the URL the verification endpoint accepts.
// POST /api/upload, multipart field "certificate"
func (a *API) UploadCertificateFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(a.cfg.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "failed to parse form or file too large")
		return
	}

	file, header, err := r.FormFile("certificate")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field 'certificate'")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedUploadExts[ext] {
		writeError(w, http.StatusBadRequest, "only JPEG, PNG and PDF files are allowed")
		return
	}

	if err := os.MkdirAll(a.cfg.UploadDir, 0o755); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to prepare upload directory")
		return
	}

	name := fmt.Sprintf("certificate-%s%s", uuid.NewString(), ext)
	dst, err := os.Create(filepath.Join(a.cfg.UploadDir, name))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store file")
		return
	}
	defer dst.Close()

	size, err := io.Copy(dst, file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store file")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":       "File uploaded successfully",
		"file_url":      "/uploads/" + name,
		"filename":      name,
		"original_name": header.Filename,
		"size":          size,
	})
}
