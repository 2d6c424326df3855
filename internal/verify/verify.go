// Package verify compares a candidate certificate record against the
// authoritative stored record and classifies the result. Each call is an
// independent, synchronous computation: the service holds no mutable state
// and the only I/O is the single reference lookup through the injected
// store.
package verify

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"acadverify/internal/models"
	"acadverify/internal/similarity"
)

// Status is the final verdict of one verification pass.
type Status string

const (
	StatusVerified   Status = "verified"
	StatusSuspicious Status = "suspicious"
	StatusRejected   Status = "rejected"
)

// fuzzyThreshold is the similarity ratio a name or course comparison must
// exceed to count as a match.
const fuzzyThreshold = 0.7

// ErrNotFound is returned by a CertificateStore when no record exists for
// the given certificate number. The engine turns it into a rejection
// verdict; any other store error propagates as an infrastructure fault.
var ErrNotFound = errors.New("certificate not found")

// CertificateStore resolves reference records by certificate number.
type CertificateStore interface {
	FindByCertificateNumber(ctx context.Context, number string) (*models.Certificate, error)
}

// Outcome is produced fresh per verification call and never retained by
// the engine; persistence is the caller's concern.
type Outcome struct {
	Status        Status   `json:"status"`
	MatchScore    int      `json:"match_score"`
	Anomalies     []string `json:"anomalies"`
	CertificateID *uint    `json:"certificate_id,omitempty"`
	Message       string   `json:"message"`

	// Certificate is the reference record the lookup returned, carried so
	// callers need no second query. Nil on rejection.
	Certificate *models.Certificate `json:"-"`
}

// Service is the scoring engine. It is safe for concurrent use.
type Service struct {
	store CertificateStore
}

func NewService(store CertificateStore) *Service {
	return &Service{store: store}
}

// fieldCheck pairs one comparable field with its comparator. The check
// list is built per call from the intersection of fields present on both
// records, so absent fields contribute neither matches nor checks. All
// weights are currently 1.
type fieldCheck struct {
	field   string
	weight  int
	matches func() bool
	anomaly func() string
}

// Verify runs the full scoring pass.
//
// A missing certificate number or a lookup miss is a terminal rejection,
// not an error; only a store fault crosses the boundary as an error. Once
// a reference record is found the score never drops below 60 and the
// verdict is never rejected, however poor the field agreement — that
// asymmetry is a deliberate policy carried over from the system this
// replaces, not an inherent-correctness rule.
func (s *Service) Verify(ctx context.Context, cand models.CandidateRecord) (Outcome, error) {
	if cand.CertificateNumber == nil || strings.TrimSpace(*cand.CertificateNumber) == "" {
		return Outcome{
			Status:     StatusRejected,
			MatchScore: 0,
			Anomalies:  []string{"Certificate number not found in document"},
			Message:    "Certificate number is required for verification",
		}, nil
	}

	ref, err := s.store.FindByCertificateNumber(ctx, *cand.CertificateNumber)
	if errors.Is(err, ErrNotFound) {
		return Outcome{
			Status:     StatusRejected,
			MatchScore: 0,
			Anomalies:  []string{"Certificate number not found in database"},
			Message:    "Certificate not found in our records",
		}, nil
	}
	if err != nil {
		return Outcome{}, fmt.Errorf("certificate lookup: %w", err)
	}

	anomalies := []string{}

	// The certificate number already matched via the lookup key.
	matches, totalChecks := 1, 1
	for _, c := range buildChecks(cand, ref) {
		totalChecks += c.weight
		if c.matches() {
			matches += c.weight
		} else {
			anomalies = append(anomalies, c.anomaly())
		}
	}

	var score float64
	if totalChecks > 0 {
		score = float64(matches) / float64(totalChecks) * 100
	} else {
		score = 100
	}
	if score < 60 {
		score = 60
	}
	matchScore := int(math.Round(score))

	status := StatusSuspicious
	message := "Certificate verification failed"
	if matchScore >= 80 && len(anomalies) == 0 {
		status = StatusVerified
		message = "Certificate verified successfully"
	}

	return Outcome{
		Status:        status,
		MatchScore:    matchScore,
		Anomalies:     anomalies,
		CertificateID: &ref.ID,
		Message:       message,
		Certificate:   ref,
	}, nil
}

func buildChecks(cand models.CandidateRecord, ref *models.Certificate) []fieldCheck {
	var checks []fieldCheck

	if cand.StudentName != nil && ref.StudentName != "" {
		found, expected := *cand.StudentName, ref.StudentName
		checks = append(checks, fieldCheck{
			field:   "student_name",
			weight:  1,
			matches: func() bool { return fuzzyEqual(found, expected) },
			anomaly: func() string {
				return fmt.Sprintf("Student name mismatch: Found %q, Expected %q", found, expected)
			},
		})
	}

	if cand.RollNumber != nil && ref.RollNumber != "" {
		found, expected := *cand.RollNumber, ref.RollNumber
		checks = append(checks, fieldCheck{
			field:   "roll_number",
			weight:  1,
			matches: func() bool { return normalize(found) == normalize(expected) },
			anomaly: func() string {
				return fmt.Sprintf("Roll number mismatch: Found %q, Expected %q", found, expected)
			},
		})
	}

	if cand.CourseName != nil && ref.CourseName != "" {
		found, expected := *cand.CourseName, ref.CourseName
		checks = append(checks, fieldCheck{
			field:   "course_name",
			weight:  1,
			matches: func() bool { return fuzzyEqual(found, expected) },
			anomaly: func() string {
				return fmt.Sprintf("Course mismatch: Found %q, Expected %q", found, expected)
			},
		})
	}

	if cand.YearOfPassing != nil && ref.YearOfPassing != 0 {
		found, expected := *cand.YearOfPassing, ref.YearOfPassing
		checks = append(checks, fieldCheck{
			field:   "year_of_passing",
			weight:  1,
			matches: func() bool { return found == expected },
			anomaly: func() string {
				return fmt.Sprintf("Year mismatch: Found \"%d\", Expected \"%d\"", found, expected)
			},
		})
	}

	// Marks and percentage are mutually exclusive: marks win when both
	// sides carry an obtained value, otherwise fall back to percentage.
	switch {
	case cand.Marks != nil && ref.MarksObtained != nil:
		found, expected := cand.Marks.Obtained, *ref.MarksObtained
		checks = append(checks, fieldCheck{
			field:   "marks",
			weight:  1,
			matches: func() bool { return math.Abs(found-expected) < 1 },
			anomaly: func() string {
				return fmt.Sprintf("Marks mismatch: Found %q, Expected %q", formatNumber(found), formatNumber(expected))
			},
		})
	case cand.Percentage != nil && ref.Percentage != nil:
		found, expected := *cand.Percentage, *ref.Percentage
		checks = append(checks, fieldCheck{
			field:   "percentage",
			weight:  1,
			matches: func() bool { return math.Abs(found-expected) < 1 },
			anomaly: func() string {
				return fmt.Sprintf("Percentage mismatch: Found %q, Expected %q", formatNumber(found), formatNumber(expected))
			},
		})
	}

	return checks
}

func fuzzyEqual(a, b string) bool {
	return similarity.Ratio(normalize(a), normalize(b)) > fuzzyThreshold
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
