package handlers

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"acadverify/internal/db"
	"acadverify/internal/middleware"
	"acadverify/internal/models"
)

// CreateCertificate stores one reference record.
// POST /api/certificates
func (a *API) CreateCertificate(w http.ResponseWriter, r *http.Request) {
	var cert models.Certificate
	if err := json.NewDecoder(r.Body).Decode(&cert); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	cert.CertificateNumber = strings.TrimSpace(cert.CertificateNumber)
	if cert.CertificateNumber == "" {
		writeError(w, http.StatusBadRequest, "certificate_number is required")
		return
	}
	if err := db.DB.WithContext(r.Context()).Create(&cert).Error; err != nil {
		writeError(w, http.StatusConflict, "certificate already exists")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"certificate": cert, "fingerprint": cert.Fingerprint()})
}

// ListCertificates returns reference records with pagination and an
// optional search across number, name and roll number.
// GET /api/certificates?search=&page=&limit=
func (a *API) ListCertificates(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	q := db.DB.WithContext(r.Context()).Model(&models.Certificate{}).Preload("Institution")
	if search := strings.TrimSpace(r.URL.Query().Get("search")); search != "" {
		like := "%" + search + "%"
		q = q.Where("certificate_number ILIKE ? OR student_name ILIKE ? OR roll_number ILIKE ?", like, like, like)
	}
	var certs []models.Certificate
	if err := q.Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&certs).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"certificates": certs, "page": page, "limit": limit})
}

// GetCertificate returns one reference record by id.
// GET /api/certificates/{id}
func (a *API) GetCertificate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var cert models.Certificate
	err := db.DB.WithContext(r.Context()).Preload("Institution").First(&cert, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "certificate not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"certificate": cert})
}

var bulkHeaders = []string{
	"certificate_number", "student_name", "roll_number", "course_name",
	"year_of_passing", "marks_obtained", "total_marks", "percentage",
}

// BulkUploadCertificates imports reference records from a CSV file field
// named "recordsCsv". Rows whose certificate number already exists are
// skipped; any malformed row aborts the whole import.
// POST /api/certificates/bulk-upload
func (a *API) BulkUploadCertificates(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(50 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "failed to parse form")
		return
	}
	file, header, err := r.FormFile("recordsCsv")
	if err != nil {
		writeError(w, http.StatusBadRequest, "recordsCsv file is required")
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		writeError(w, http.StatusBadRequest, "unable to read CSV header")
		return
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(strings.ToLower(headers[i]))
	}
	if !equalStringSlices(headers, bulkHeaders) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":    "invalid CSV format, use the provided template",
			"expected": bulkHeaders,
			"got":      headers,
		})
		return
	}

	var institutionID *uint
	if id, ok := r.Context().Value(middleware.InstitutionIDKey).(uint); ok {
		institutionID = &id
	}

	var inserted, duplicates int
	err = db.DB.WithContext(r.Context()).Transaction(func(tx *gorm.DB) error {
		for {
			rec, err := reader.Read()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("read CSV row: %w", err)
			}
			if len(rec) != len(bulkHeaders) {
				return fmt.Errorf("row does not match header length")
			}

			cert, err := certificateFromCSVRow(rec)
			if err != nil {
				return err
			}
			cert.InstitutionID = institutionID

			var dup int64
			if err := tx.Model(&models.Certificate{}).
				Where("certificate_number = ?", cert.CertificateNumber).
				Count(&dup).Error; err != nil {
				return fmt.Errorf("duplicate check: %w", err)
			}
			if dup > 0 {
				duplicates++
				continue
			}
			if err := tx.Create(cert).Error; err != nil {
				return fmt.Errorf("insert row: %w", err)
			}
			inserted++
		}
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":            fmt.Sprintf("Successfully imported %d records. Skipped %d duplicates.", inserted, duplicates),
		"inserted":           inserted,
		"duplicates_skipped": duplicates,
		"file":               header.Filename,
	})
}

func certificateFromCSVRow(rec []string) (*models.Certificate, error) {
	for i := range rec {
		rec[i] = strings.TrimSpace(rec[i])
	}
	cert := &models.Certificate{
		CertificateNumber: rec[0],
		StudentName:       rec[1],
		RollNumber:        rec[2],
		CourseName:        rec[3],
	}
	if cert.CertificateNumber == "" {
		return nil, fmt.Errorf("certificate_number is required")
	}
	if rec[4] != "" {
		year, err := strconv.Atoi(rec[4])
		if err != nil {
			return nil, fmt.Errorf("invalid year_of_passing %q", rec[4])
		}
		cert.YearOfPassing = year
	}
	for i, dst := range []**float64{&cert.MarksObtained, &cert.TotalMarks, &cert.Percentage} {
		raw := rec[5+i]
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q", bulkHeaders[5+i], raw)
		}
		*dst = &v
	}
	return cert, nil
}

func equalStringSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func pagination(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}
