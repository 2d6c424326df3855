package models

// Marks is an obtained/total pair as printed on a marksheet.
type Marks struct {
	Obtained float64 `json:"obtained"`
	Total    float64 `json:"total"`
}

// CandidateRecord holds the certificate fields under test, produced either
// by the field extractor or by manual entry. Every field is optional; nil
// means the field was not confidently found. RawText keeps the full source
// text for auditability.
type CandidateRecord struct {
	StudentName       *string  `json:"student_name,omitempty"`
	RollNumber        *string  `json:"roll_number,omitempty"`
	CertificateNumber *string  `json:"certificate_number,omitempty"`
	CourseName        *string  `json:"course_name,omitempty"`
	YearOfPassing     *int     `json:"year_of_passing,omitempty"`
	Marks             *Marks   `json:"marks,omitempty"`
	Percentage        *float64 `json:"percentage,omitempty"`
	InstitutionName   *string  `json:"institution_name,omitempty"`
	RawText           string   `json:"raw_text,omitempty"`
}
