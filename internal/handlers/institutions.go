package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"acadverify/internal/db"
	"acadverify/internal/models"
)

// CreateInstitution registers an issuing institution.
// POST /api/institutions
func (a *API) CreateInstitution(w http.ResponseWriter, r *http.Request) {
	var inst models.Institution
	if err := json.NewDecoder(r.Body).Decode(&inst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	inst.Name = strings.TrimSpace(inst.Name)
	inst.Code = strings.TrimSpace(inst.Code)
	if inst.Name == "" || inst.Code == "" {
		writeError(w, http.StatusBadRequest, "name and code are required")
		return
	}
	if err := db.DB.WithContext(r.Context()).Create(&inst).Error; err != nil {
		writeError(w, http.StatusConflict, "institution code already exists")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"institution": inst})
}

// ListInstitutions returns all registered institutions.
// GET /api/institutions
func (a *API) ListInstitutions(w http.ResponseWriter, r *http.Request) {
	var insts []models.Institution
	if err := db.DB.WithContext(r.Context()).Order("name").Find(&insts).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"institutions": insts})
}

// GetInstitution returns one institution with its certificate count.
// GET /api/institutions/{id}
func (a *API) GetInstitution(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var inst models.Institution
	err := db.DB.WithContext(r.Context()).First(&inst, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "institution not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	var certificates int64
	db.DB.WithContext(r.Context()).Model(&models.Certificate{}).
		Where("institution_id = ?", inst.ID).Count(&certificates)
	writeJSON(w, http.StatusOK, map[string]any{"institution": inst, "certificate_count": certificates})
}
