package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"acadverify/internal/config"
	"acadverify/internal/handlers"
	"acadverify/internal/middleware"
	"acadverify/internal/models"
)

func New(cfg config.Config, log *zap.Logger, api *handlers.API) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.CORS)
	r.Use(middleware.Logging(log))

	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/api/auth/register", api.Register)
	r.Post("/api/auth/login", api.Login)

	// Uploaded certificate files, referenced by file_url in verify requests.
	r.Handle("/uploads/*", http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(cfg.UploadDir))))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Protect([]byte(cfg.JWTSecret)))

		r.Post("/api/verify", api.PostVerification)
		r.Get("/api/verifications", api.ListVerifications)
		r.Get("/api/verifications/{id}", api.GetVerification)
		r.Get("/api/verifications/{id}/qrcode", api.VerificationQRCode)

		r.Post("/api/upload", api.UploadCertificateFile)

		r.Get("/api/certificates", api.ListCertificates)
		r.Get("/api/certificates/{id}", api.GetCertificate)

		r.Get("/api/institutions", api.ListInstitutions)
		r.Get("/api/institutions/{id}", api.GetInstitution)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authorize(models.RoleAdmin, models.RoleInstitution))
			r.Post("/api/certificates", api.CreateCertificate)
			r.Post("/api/certificates/bulk-upload", api.BulkUploadCertificates)
			r.Post("/api/institutions", api.CreateInstitution)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authorize(models.RoleAdmin))
			r.Get("/api/admin/dashboard", api.AdminDashboard)
			r.Patch("/api/admin/alerts/{id}", api.UpdateAlert)
		})
	})

	return r
}
