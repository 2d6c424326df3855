package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"acadverify/internal/extract"
	"acadverify/internal/models"
	"acadverify/internal/verify"
)

type verifyRequest struct {
	UploadedFileURL   string      `json:"uploaded_file_url"`
	CertificateNumber string      `json:"certificate_number"`
	ManualData        *manualData `json:"manual_data"`
}

// manualData is the operator-entered form payload, snake_case per the
// frontend convention. Marks may arrive nested or as flat obtained/total
// fields.
type manualData struct {
	CertificateNumber string        `json:"certificate_number"`
	StudentName       string        `json:"student_name"`
	RollNumber        string        `json:"roll_number"`
	CourseName        string        `json:"course_name"`
	Year              *int          `json:"year"`
	YearOfPassing     *int          `json:"year_of_passing"`
	Marks             *models.Marks `json:"marks"`
	MarksObtained     *float64      `json:"marks_obtained"`
	TotalMarks        *float64      `json:"total_marks"`
	Percentage        *float64      `json:"percentage"`
	InstitutionName   string        `json:"institution_name"`
}

// candidateFromManual translates the external field conventions into a
// CandidateRecord. Empty strings mean absent.
func candidateFromManual(m manualData) models.CandidateRecord {
	cand := models.CandidateRecord{
		StudentName:       optional(m.StudentName),
		RollNumber:        optional(m.RollNumber),
		CertificateNumber: optional(m.CertificateNumber),
		CourseName:        optional(m.CourseName),
		Percentage:        m.Percentage,
		InstitutionName:   optional(m.InstitutionName),
	}
	switch {
	case m.Year != nil:
		cand.YearOfPassing = m.Year
	case m.YearOfPassing != nil:
		cand.YearOfPassing = m.YearOfPassing
	}
	switch {
	case m.Marks != nil:
		cand.Marks = m.Marks
	case m.MarksObtained != nil:
		total := 100.0
		if m.TotalMarks != nil {
			total = *m.TotalMarks
		}
		cand.Marks = &models.Marks{Obtained: *m.MarksObtained, Total: total}
	}
	return cand
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// PostVerification runs the full pipeline: recognize (for uploads), extract,
// score, persist history, raise an alert for rejected/suspicious outcomes.
// POST /api/verify
func (a *API) PostVerification(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()

	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	var cand models.CandidateRecord
	verificationType := models.VerificationTypeManual

	switch {
	case req.UploadedFileURL != "":
		verificationType = models.VerificationTypeOCR
		path := filepath.Join(a.cfg.UploadDir, filepath.Base(req.UploadedFileURL))
		raw, err := a.recognizer.ExtractText(ctx, path)
		if err != nil {
			a.log.Warn("text recognition failed", zap.String("file", path), zap.Error(err))
			writeError(w, http.StatusBadRequest, "failed to extract data from certificate")
			return
		}
		cand = a.extractCandidate(ctx, raw)
	case req.ManualData != nil:
		cand = candidateFromManual(*req.ManualData)
	default:
		writeError(w, http.StatusBadRequest, "either uploaded_file_url or manual_data is required")
		return
	}

	// A directly supplied certificate number overrides the extracted one.
	if n := strings.TrimSpace(req.CertificateNumber); n != "" {
		cand.CertificateNumber = &n
	}

	outcome, err := a.verifier.Verify(ctx, cand)
	if err != nil {
		a.log.Error("verification unavailable", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "verification unavailable")
		return
	}

	a.metrics.IncrementOutcome(string(outcome.Status), verificationType)
	a.metrics.ObserveVerifyLatency(time.Since(start))

	row, alert := a.buildHistoryRow(cand, outcome, req.UploadedFileURL, verificationType, r)
	if err := a.verifications.Record(ctx, row, alert); err != nil {
		a.log.Error("persist verification", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to record verification")
		return
	}
	if alert != nil {
		a.metrics.IncrementAlert(alert.Severity)
	}

	resp := map[string]any{
		"verification":   row,
		"result":         outcome,
		"extracted_data": cand,
	}
	if conf, ok := a.institutionConfidence(cand, outcome); ok {
		resp["institution_name_confidence"] = conf
	}
	writeJSON(w, http.StatusOK, resp)
}

// extractCandidate runs the configured extractor; a Gemini failure falls
// back to the heuristic parser rather than failing the request.
func (a *API) extractCandidate(ctx context.Context, raw string) models.CandidateRecord {
	if a.gemini != nil {
		cand, err := a.gemini.Parse(ctx, raw)
		if err == nil {
			return cand
		}
		a.log.Warn("gemini extraction failed, falling back to heuristic parser", zap.Error(err))
	}
	return extract.Parse(raw)
}

func (a *API) buildHistoryRow(
	cand models.CandidateRecord,
	outcome verify.Outcome,
	fileURL, verificationType string,
	r *http.Request,
) (*models.Verification, *models.Alert) {
	extracted, _ := json.Marshal(cand)
	anomalies, _ := json.Marshal(outcome.Anomalies)

	row := &models.Verification{
		ID:                  uuid.NewString(),
		CertificateID:       outcome.CertificateID,
		VerifierID:          authUserID(r),
		VerificationType:    verificationType,
		UploadedDocumentURL: fileURL,
		ExtractedData:       string(extracted),
		Status:              string(outcome.Status),
		MatchScore:          outcome.MatchScore,
		Anomalies:           string(anomalies),
	}

	var alert *models.Alert
	if outcome.Status == verify.StatusRejected || outcome.Status == verify.StatusSuspicious {
		severity := models.AlertSeverityMedium
		if outcome.Status == verify.StatusRejected {
			severity = models.AlertSeverityHigh
		}
		alert = &models.Alert{
			AlertType:   "verification_failed",
			Severity:    severity,
			Description: "Certificate verification " + string(outcome.Status) + ": " + strings.Join(outcome.Anomalies, ", "),
			Status:      models.AlertStatusOpen,
		}
	}
	return row, alert
}

// institutionConfidence reports how closely the institution name on the
// document matches the official record, using Jaro-Winkler. Advisory only:
// it is returned alongside the result and never feeds the verdict. The
// reference record arrives on the outcome with Institution preloaded.
func (a *API) institutionConfidence(cand models.CandidateRecord, outcome verify.Outcome) (float64, bool) {
	if outcome.Certificate == nil || cand.InstitutionName == nil {
		return 0, false
	}
	inst := outcome.Certificate.Institution
	if inst == nil || inst.Name == "" {
		return 0, false
	}
	metric := metrics.NewJaroWinkler()
	extracted := strings.ToLower(strings.TrimSpace(*cand.InstitutionName))
	official := strings.ToLower(strings.TrimSpace(inst.Name))
	return strutil.Similarity(extracted, official, metric), true
}
