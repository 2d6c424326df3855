package models

import (
	"time"
)

// User roles accepted by the auth layer.
const (
	RoleAdmin       = "admin"
	RoleInstitution = "institution"
	RoleVerifier    = "verifier"
)

type User struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Email         string `gorm:"uniqueIndex;not null" json:"email"`
	Password      string `gorm:"not null" json:"-"`
	Name          string `gorm:"not null" json:"name"`
	Role          string `gorm:"not null" json:"role"`
	InstitutionID *uint  `json:"institution_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Institution struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"not null" json:"name"`
	Code         string `gorm:"uniqueIndex;not null" json:"code"`
	Address      string `json:"address"`
	ContactEmail string `json:"contact_email"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Certificate is the authoritative reference record. String fields use ""
// and numeric pointers use nil for "not on file"; the scoring engine skips
// those comparisons entirely.
type Certificate struct {
	ID                uint     `gorm:"primaryKey" json:"id"`
	CertificateNumber string   `gorm:"uniqueIndex;not null" json:"certificate_number"`
	StudentName       string   `json:"student_name"`
	RollNumber        string   `json:"roll_number"`
	CourseName        string   `json:"course_name"`
	YearOfPassing     int      `json:"year_of_passing"`
	MarksObtained     *float64 `json:"marks_obtained,omitempty"`
	TotalMarks        *float64 `json:"total_marks,omitempty"`
	Percentage        *float64 `json:"percentage,omitempty"`
	InstitutionID     *uint    `json:"institution_id,omitempty"`
	Institution       *Institution `gorm:"foreignKey:InstitutionID" json:"institution,omitempty"`
	IssuedDate        *time.Time   `json:"issued_date,omitempty"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// Verification types recorded per request.
const (
	VerificationTypeOCR    = "ocr"
	VerificationTypeManual = "manual"
)

// Verification is one row of verification history. ExtractedData and
// Anomalies are stored as JSON documents.
type Verification struct {
	ID                  string `gorm:"primaryKey" json:"id"`
	CertificateID       *uint  `json:"certificate_id,omitempty"`
	VerifierID          uint   `json:"verifier_id"`
	VerificationType    string `json:"verification_type"`
	UploadedDocumentURL string `json:"uploaded_document_url,omitempty"`
	ExtractedData       string `gorm:"type:jsonb" json:"extracted_data"`
	Status              string `gorm:"index" json:"status"`
	MatchScore          int    `json:"match_score"`
	Anomalies           string `gorm:"type:jsonb" json:"anomalies"`
	CreatedAt           time.Time `json:"created_at"`
}

// Alert severities and lifecycle states.
const (
	AlertSeverityHigh   = "high"
	AlertSeverityMedium = "medium"

	AlertStatusOpen     = "open"
	AlertStatusResolved = "resolved"
)

// Alert is derived from a rejected or suspicious verification.
type Alert struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	VerificationID string `gorm:"index;not null" json:"verification_id"`
	AlertType      string `json:"alert_type"`
	Severity       string `json:"severity"`
	Description    string `json:"description"`
	Status         string `gorm:"default:open" json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// All lists every model for AutoMigrate.
func All() []any {
	return []any{&User{}, &Institution{}, &Certificate{}, &Verification{}, &Alert{}}
}
