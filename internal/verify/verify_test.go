package verify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"acadverify/internal/models"
)

type fakeStore struct {
	certs map[string]*models.Certificate
	err   error
}

func (f *fakeStore) FindByCertificateNumber(_ context.Context, number string) (*models.Certificate, error) {
	if f.err != nil {
		return nil, f.err
	}
	if c, ok := f.certs[number]; ok {
		return c, nil
	}
	return nil, ErrNotFound
}

func floatp(v float64) *float64 { return &v }
func intp(v int) *int           { return &v }
func strp(s string) *string     { return &s }

func referenceIITB001() *models.Certificate {
	return &models.Certificate{
		ID:                42,
		CertificateNumber: "IITB001",
		StudentName:       "Aarav Sharma",
		YearOfPassing:     2023,
		MarksObtained:     floatp(94),
		TotalMarks:        floatp(100),
	}
}

func newTestService(certs ...*models.Certificate) *Service {
	m := make(map[string]*models.Certificate)
	for _, c := range certs {
		m[c.CertificateNumber] = c
	}
	return NewService(&fakeStore{certs: m})
}

func TestVerifyExactMatch(t *testing.T) {
	svc := newTestService(referenceIITB001())
	out, err := svc.Verify(context.Background(), models.CandidateRecord{
		CertificateNumber: strp("IITB001"),
		StudentName:       strp("Aarav Sharma"),
		YearOfPassing:     intp(2023),
		Marks:             &models.Marks{Obtained: 94, Total: 100},
	})
	require.NoError(t, err)
	assert.Equal(t, StatusVerified, out.Status)
	assert.Equal(t, 100, out.MatchScore)
	assert.Empty(t, out.Anomalies)
	require.NotNil(t, out.CertificateID)
	assert.Equal(t, uint(42), *out.CertificateID)
	assert.Equal(t, "Certificate verified successfully", out.Message)
	require.NotNil(t, out.Certificate)
	assert.Equal(t, "IITB001", out.Certificate.CertificateNumber)
}

func TestVerifyFuzzyNameStillVerified(t *testing.T) {
	// One-character edit stays above the 0.7 similarity threshold.
	svc := newTestService(referenceIITB001())
	out, err := svc.Verify(context.Background(), models.CandidateRecord{
		CertificateNumber: strp("IITB001"),
		StudentName:       strp("Arav Sharma"),
		YearOfPassing:     intp(2023),
		Marks:             &models.Marks{Obtained: 94, Total: 100},
	})
	require.NoError(t, err)
	assert.Equal(t, StatusVerified, out.Status)
	assert.Equal(t, 100, out.MatchScore)
	assert.Empty(t, out.Anomalies)
}

func TestVerifyUnrelatedNameSuspicious(t *testing.T) {
	svc := newTestService(referenceIITB001())
	out, err := svc.Verify(context.Background(), models.CandidateRecord{
		CertificateNumber: strp("IITB001"),
		StudentName:       strp("John Smith"),
		YearOfPassing:     intp(2023),
		Marks:             &models.Marks{Obtained: 94, Total: 100},
	})
	require.NoError(t, err)
	assert.Equal(t, StatusSuspicious, out.Status)
	// 3 of 4 checks matched.
	assert.Equal(t, 75, out.MatchScore)
	assert.GreaterOrEqual(t, out.MatchScore, 60)
	require.Len(t, out.Anomalies, 1)
	assert.Equal(t, `Student name mismatch: Found "John Smith", Expected "Aarav Sharma"`, out.Anomalies[0])
	assert.Equal(t, "Certificate verification failed", out.Message)
}

func TestVerifyUnknownCertificateRejected(t *testing.T) {
	svc := newTestService(referenceIITB001())
	out, err := svc.Verify(context.Background(), models.CandidateRecord{
		CertificateNumber: strp("NOPE999"),
	})
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, out.Status)
	assert.Equal(t, 0, out.MatchScore)
	assert.Equal(t, []string{"Certificate number not found in database"}, out.Anomalies)
	assert.Nil(t, out.CertificateID)
	assert.Nil(t, out.Certificate)
}

func TestVerifyMissingCertificateNumberRejected(t *testing.T) {
	svc := newTestService(referenceIITB001())
	for _, cand := range []models.CandidateRecord{
		{},
		{CertificateNumber: strp("   ")},
		{StudentName: strp("Aarav Sharma"), YearOfPassing: intp(2023)},
	} {
		out, err := svc.Verify(context.Background(), cand)
		require.NoError(t, err)
		assert.Equal(t, StatusRejected, out.Status)
		assert.Equal(t, 0, out.MatchScore)
		assert.Equal(t, []string{"Certificate number not found in document"}, out.Anomalies)
		assert.Nil(t, out.CertificateID)
	}
}

func TestVerifyScoreFloorAfterLookup(t *testing.T) {
	// Every comparable field mismatches; raw score would be 1/5 = 20 but a
	// found certificate never drops below 60 and is never rejected.
	svc := newTestService(&models.Certificate{
		ID:                7,
		CertificateNumber: "DU-100",
		StudentName:       "Aarav Sharma",
		RollNumber:        "DU/2020/001",
		CourseName:        "B.Sc Physics",
		YearOfPassing:     2020,
	})
	out, err := svc.Verify(context.Background(), models.CandidateRecord{
		CertificateNumber: strp("DU-100"),
		StudentName:       strp("Completely Different"),
		RollNumber:        strp("XX/9999/999"),
		CourseName:        strp("Zoology Diploma"),
		YearOfPassing:     intp(1999),
	})
	require.NoError(t, err)
	assert.Equal(t, StatusSuspicious, out.Status)
	assert.Equal(t, 60, out.MatchScore)
	assert.Len(t, out.Anomalies, 4)
}

func TestVerifyOnlyCertificateNumber(t *testing.T) {
	// No comparable fields beyond the identifier: score 100, but that only
	// proves the lookup key; still verified since nothing disagreed.
	svc := newTestService(&models.Certificate{ID: 3, CertificateNumber: "SOLO-1"})
	out, err := svc.Verify(context.Background(), models.CandidateRecord{
		CertificateNumber: strp("SOLO-1"),
	})
	require.NoError(t, err)
	assert.Equal(t, StatusVerified, out.Status)
	assert.Equal(t, 100, out.MatchScore)
}

func TestVerifyAbsentFieldsAreSkipped(t *testing.T) {
	// Reference has no marks or percentage; candidate marks contribute
	// neither a match nor a check.
	svc := newTestService(&models.Certificate{
		ID:                9,
		CertificateNumber: "SK-1",
		StudentName:       "Priya Patel",
	})
	out, err := svc.Verify(context.Background(), models.CandidateRecord{
		CertificateNumber: strp("SK-1"),
		StudentName:       strp("Priya Patel"),
		Marks:             &models.Marks{Obtained: 88, Total: 100},
		Percentage:        floatp(88),
		YearOfPassing:     intp(2021),
	})
	require.NoError(t, err)
	assert.Equal(t, StatusVerified, out.Status)
	assert.Equal(t, 100, out.MatchScore)
	assert.Empty(t, out.Anomalies)
}

func TestVerifyMarksPreferredOverPercentage(t *testing.T) {
	ref := referenceIITB001()
	ref.Percentage = floatp(94)
	svc := newTestService(ref)

	// Marks disagree, percentage agrees; marks win and percentage is not
	// checked at all.
	out, err := svc.Verify(context.Background(), models.CandidateRecord{
		CertificateNumber: strp("IITB001"),
		Marks:             &models.Marks{Obtained: 80, Total: 100},
		Percentage:        floatp(94),
	})
	require.NoError(t, err)
	assert.Equal(t, StatusSuspicious, out.Status)
	require.Len(t, out.Anomalies, 1)
	assert.Equal(t, `Marks mismatch: Found "80", Expected "94"`, out.Anomalies[0])
}

func TestVerifyMarksTolerance(t *testing.T) {
	svc := newTestService(referenceIITB001())
	out, err := svc.Verify(context.Background(), models.CandidateRecord{
		CertificateNumber: strp("IITB001"),
		Marks:             &models.Marks{Obtained: 94.5, Total: 100},
	})
	require.NoError(t, err)
	// |94.5 - 94| < 1 counts as a match.
	assert.Equal(t, StatusVerified, out.Status)
	assert.Empty(t, out.Anomalies)
}

func TestVerifyPercentageFallback(t *testing.T) {
	svc := newTestService(&models.Certificate{
		ID:                11,
		CertificateNumber: "PC-1",
		Percentage:        floatp(76.5),
	})
	out, err := svc.Verify(context.Background(), models.CandidateRecord{
		CertificateNumber: strp("PC-1"),
		Percentage:        floatp(71),
	})
	require.NoError(t, err)
	assert.Equal(t, StatusSuspicious, out.Status)
	require.Len(t, out.Anomalies, 1)
	assert.Equal(t, `Percentage mismatch: Found "71", Expected "76.5"`, out.Anomalies[0])
}

func TestVerifyRollNumberCaseInsensitive(t *testing.T) {
	svc := newTestService(&models.Certificate{
		ID:                5,
		CertificateNumber: "RN-1",
		RollNumber:        "du/2020/001",
	})
	out, err := svc.Verify(context.Background(), models.CandidateRecord{
		CertificateNumber: strp("RN-1"),
		RollNumber:        strp("  DU/2020/001 "),
	})
	require.NoError(t, err)
	assert.Equal(t, StatusVerified, out.Status)
	assert.Empty(t, out.Anomalies)
}

func TestVerifyYearMismatchAnomaly(t *testing.T) {
	svc := newTestService(referenceIITB001())
	out, err := svc.Verify(context.Background(), models.CandidateRecord{
		CertificateNumber: strp("IITB001"),
		YearOfPassing:     intp(2022),
	})
	require.NoError(t, err)
	assert.Equal(t, StatusSuspicious, out.Status)
	require.Len(t, out.Anomalies, 1)
	assert.Equal(t, `Year mismatch: Found "2022", Expected "2023"`, out.Anomalies[0])
}

func TestVerifyHighScoreWithAnomalyIsSuspicious(t *testing.T) {
	// Score >= 80 alone is not enough; any anomaly blocks "verified".
	svc := newTestService(&models.Certificate{
		ID:                13,
		CertificateNumber: "HS-1",
		StudentName:       "Aarav Sharma",
		RollNumber:        "R-1",
		CourseName:        "B.Tech",
		YearOfPassing:     2023,
	})
	out, err := svc.Verify(context.Background(), models.CandidateRecord{
		CertificateNumber: strp("HS-1"),
		StudentName:       strp("Aarav Sharma"),
		RollNumber:        strp("R-1"),
		CourseName:        strp("B.Tech"),
		YearOfPassing:     intp(2024),
	})
	require.NoError(t, err)
	assert.Equal(t, 80, out.MatchScore)
	assert.Equal(t, StatusSuspicious, out.Status)
}

func TestVerifyStoreFaultPropagates(t *testing.T) {
	boom := errors.New("connection refused")
	svc := NewService(&fakeStore{err: boom})
	_, err := svc.Verify(context.Background(), models.CandidateRecord{
		CertificateNumber: strp("ANY"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}
