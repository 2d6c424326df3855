package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"acadverify/internal/db"
	"acadverify/internal/models"
)

type statusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// AdminDashboard aggregates counts and recent activity for the admin UI.
// GET /api/admin/dashboard
func (a *API) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	counts := map[string]int64{}
	for name, model := range map[string]any{
		"users":         &models.User{},
		"institutions":  &models.Institution{},
		"certificates":  &models.Certificate{},
		"verifications": &models.Verification{},
	} {
		var n int64
		if err := db.DB.WithContext(ctx).Model(model).Count(&n).Error; err != nil {
			writeError(w, http.StatusInternalServerError, "database error")
			return
		}
		counts[name] = n
	}
	var openAlerts int64
	db.DB.WithContext(ctx).Model(&models.Alert{}).
		Where("status = ?", models.AlertStatusOpen).Count(&openAlerts)

	var byStatus []statusCount
	db.DB.WithContext(ctx).Model(&models.Verification{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&byStatus)

	var recentVerifications []models.Verification
	db.DB.WithContext(ctx).Order("created_at DESC").Limit(10).Find(&recentVerifications)

	var recentAlerts []models.Alert
	db.DB.WithContext(ctx).Where("status = ?", models.AlertStatusOpen).
		Order("created_at DESC").Limit(10).Find(&recentAlerts)

	writeJSON(w, http.StatusOK, map[string]any{
		"statistics": map[string]any{
			"total_users":         counts["users"],
			"total_institutions":  counts["institutions"],
			"total_certificates":  counts["certificates"],
			"total_verifications": counts["verifications"],
			"open_alerts":         openAlerts,
		},
		"verification_stats":   byStatus,
		"recent_verifications": recentVerifications,
		"recent_alerts":        recentAlerts,
	})
}

// UpdateAlert resolves or reopens an alert.
// PATCH /api/admin/alerts/{id}
func (a *API) UpdateAlert(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if body.Status != models.AlertStatusOpen && body.Status != models.AlertStatusResolved {
		writeError(w, http.StatusBadRequest, "status must be open or resolved")
		return
	}

	var alert models.Alert
	err := db.DB.WithContext(r.Context()).First(&alert, chi.URLParam(r, "id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "alert not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	alert.Status = body.Status
	if err := db.DB.WithContext(r.Context()).Save(&alert).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"alert": alert})
}
