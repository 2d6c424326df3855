// Package handlers contains the HTTP layer. Handlers translate request
// payloads into candidate records, run the verification pipeline, and
// persist history; all classification logic lives in internal/verify.
package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"acadverify/internal/config"
	"acadverify/internal/extract"
	"acadverify/internal/metrics"
	"acadverify/internal/recognize"
	"acadverify/internal/store"
	"acadverify/internal/verify"
)

type API struct {
	cfg           config.Config
	log           *zap.Logger
	verifier      *verify.Service
	recognizer    *recognize.Service
	gemini        *extract.GeminiExtractor
	verifications *store.Verifications
	metrics       *metrics.Metrics
}

func NewAPI(
	cfg config.Config,
	log *zap.Logger,
	verifier *verify.Service,
	recognizer *recognize.Service,
	verifications *store.Verifications,
	m *metrics.Metrics,
) *API {
	api := &API{
		cfg:           cfg,
		log:           log,
		verifier:      verifier,
		recognizer:    recognizer,
		verifications: verifications,
		metrics:       m,
	}
	if cfg.Extractor == config.ExtractorGemini {
		api.gemini = &extract.GeminiExtractor{APIKey: cfg.GeminiAPIKey, Model: cfg.GeminiModel}
	}
	return api
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}
