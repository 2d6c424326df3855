// Package extract turns raw recognized text into a structured candidate
// record. It is a best-effort heuristic parser: certificate layouts are
// wildly inconsistent, so every field is extracted independently and a blob
// that matches nothing still yields a record carrying only the raw text.
// Mismatches introduced by extraction noise surface later as scoring
// anomalies, never as errors here.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"acadverify/internal/models"
)

// Keyword synonyms per field, in priority order. A keyword matching as a
// case-insensitive substring of a line claims the remainder of that line.
var (
	nameKeywords        = []string{"name", "student", "candidate"}
	rollKeywords        = []string{"roll", "registration", "enrollment"}
	certKeywords        = []string{"certificate", "cert", "number", "id"}
	courseKeywords      = []string{"course", "degree", "program", "programme"}
	institutionKeywords = []string{"university", "college", "institute", "institution"}
)

var (
	yearRe    = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	marksRe   = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*/\s*(\d+(?:\.\d+)?)`)
	percentRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)
)

// Parse builds a CandidateRecord from one logical document of recognized
// text. Pure function: same text in, same record out. Extraction of one
// field never blocks another.
func Parse(text string) models.CandidateRecord {
	return models.CandidateRecord{
		StudentName:       extractField(text, nameKeywords),
		RollNumber:        extractField(text, rollKeywords),
		CertificateNumber: extractField(text, certKeywords),
		CourseName:        extractField(text, courseKeywords),
		YearOfPassing:     extractYear(text),
		Marks:             extractMarks(text),
		Percentage:        extractPercentage(text),
		InstitutionName:   extractField(text, institutionKeywords),
		RawText:           text,
	}
}

// extractField scans line by line; the first line where any keyword appears
// yields the remainder of that line after the keyword and optional
// colon/whitespace separators. First match wins among lines that carry a
// value: a keyword line with nothing after the separators does not claim
// the field, and scanning continues to later lines.
func extractField(text string, keywords []string) *string {
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		for _, kw := range keywords {
			idx := strings.Index(lower, kw)
			if idx < 0 {
				continue
			}
			rest := line[idx+len(kw):]
			rest = strings.TrimLeft(rest, " \t:")
			rest = strings.TrimSpace(rest)
			if rest != "" {
				return &rest
			}
		}
	}
	return nil
}

func extractYear(text string) *int {
	m := yearRe.FindString(text)
	if m == "" {
		return nil
	}
	y, err := strconv.Atoi(m)
	if err != nil {
		return nil
	}
	return &y
}

func extractMarks(text string) *models.Marks {
	m := marksRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	obtained, err1 := strconv.ParseFloat(m[1], 64)
	total, err2 := strconv.ParseFloat(m[2], 64)
	if err1 != nil || err2 != nil {
		return nil
	}
	return &models.Marks{Obtained: obtained, Total: total}
}

func extractPercentage(text string) *float64 {
	m := percentRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	p, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	return &p
}
