package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCertificate = `Indian Institute of Technology Bombay
Awarded to
Student Name: Aarav Sharma
Roll No: 2019CS10234
Certificate Number: IITB001
Course: B.Tech Computer Science
Year of Passing: 2023
Marks: 94/100
Percentage: 94%`

func TestParseFullCertificate(t *testing.T) {
	rec := Parse(sampleCertificate)

	require.NotNil(t, rec.StudentName)
	assert.Equal(t, "Aarav Sharma", *rec.StudentName)

	require.NotNil(t, rec.RollNumber)
	assert.Equal(t, "No: 2019CS10234", *rec.RollNumber)

	require.NotNil(t, rec.CertificateNumber)
	assert.Equal(t, "Number: IITB001", *rec.CertificateNumber)

	require.NotNil(t, rec.CourseName)
	assert.Equal(t, "B.Tech Computer Science", *rec.CourseName)

	require.NotNil(t, rec.YearOfPassing)
	// "2019CS10234" has no trailing word boundary, so the year comes from
	// the passing line.
	assert.Equal(t, 2023, *rec.YearOfPassing)

	require.NotNil(t, rec.Marks)
	assert.Equal(t, 94.0, rec.Marks.Obtained)
	assert.Equal(t, 100.0, rec.Marks.Total)

	require.NotNil(t, rec.Percentage)
	assert.Equal(t, 94.0, *rec.Percentage)

	require.NotNil(t, rec.InstitutionName)
	assert.Equal(t, "of Technology Bombay", *rec.InstitutionName)

	assert.Equal(t, sampleCertificate, rec.RawText)
}

func TestParseKeywordMatchesAsSubstring(t *testing.T) {
	// Keywords match anywhere in a line, including inside other words; the
	// value is whatever follows the matched keyword.
	rec := Parse("This is to certify that\nCertificate No: X-1")
	require.NotNil(t, rec.CertificateNumber)
	assert.Equal(t, "ify that", *rec.CertificateNumber)

	rec = Parse("student name - ignored\nName: Priya Patel")
	require.NotNil(t, rec.StudentName)
	assert.Equal(t, "- ignored", *rec.StudentName)
}

func TestParseFirstMatchWins(t *testing.T) {
	rec := Parse("Roll: A-111\nRoll: B-222")
	require.NotNil(t, rec.RollNumber)
	assert.Equal(t, "A-111", *rec.RollNumber)
}

func TestParseEmptyValueLineDoesNotClaimField(t *testing.T) {
	// A keyword line with only separators after the keyword is skipped;
	// a later line may still supply the value.
	rec := Parse("Roll:   \nRoll: B-222")
	require.NotNil(t, rec.RollNumber)
	assert.Equal(t, "B-222", *rec.RollNumber)

	rec = Parse("Roll:")
	assert.Nil(t, rec.RollNumber)
}

func TestParseNoMatches(t *testing.T) {
	text := "lorem ipsum dolor sit amet\nquick brown fox"
	rec := Parse(text)

	assert.Nil(t, rec.StudentName)
	assert.Nil(t, rec.RollNumber)
	assert.Nil(t, rec.CertificateNumber)
	assert.Nil(t, rec.CourseName)
	assert.Nil(t, rec.YearOfPassing)
	assert.Nil(t, rec.Marks)
	assert.Nil(t, rec.Percentage)
	assert.Nil(t, rec.InstitutionName)
	assert.Equal(t, text, rec.RawText)
}

func TestExtractYear(t *testing.T) {
	tests := []struct {
		text string
		want *int
	}{
		{"passed in 2023", intp(2023)},
		{"batch of 1998", intp(1998)},
		{"2150 is out of range, 2020 is not", intp(2020)},
		{"no year here", nil},
		{"12023 embedded digits do not count", nil},
	}
	for _, tc := range tests {
		got := Parse(tc.text).YearOfPassing
		if tc.want == nil {
			assert.Nil(t, got, tc.text)
		} else {
			require.NotNil(t, got, tc.text)
			assert.Equal(t, *tc.want, *got, tc.text)
		}
	}
}

func TestExtractMarksAndPercentage(t *testing.T) {
	rec := Parse("secured 473.5 / 500 in aggregate, 94.7%")
	require.NotNil(t, rec.Marks)
	assert.Equal(t, 473.5, rec.Marks.Obtained)
	assert.Equal(t, 500.0, rec.Marks.Total)
	require.NotNil(t, rec.Percentage)
	assert.Equal(t, 94.7, *rec.Percentage)

	assert.Nil(t, Parse("no fraction here").Marks)
	assert.Nil(t, Parse("no percent sign").Percentage)
}

func TestParseIsTotal(t *testing.T) {
	// Garbage in, record out; never panics, raw text always retained.
	for _, text := range []string{"\n\n\n", ":::", "%%//", "université—certificat"} {
		rec := Parse(text)
		assert.Equal(t, text, rec.RawText)
	}
}

func intp(v int) *int { return &v }
