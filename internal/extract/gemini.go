package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"acadverify/internal/models"
)

// GeminiExtractor is an optional alternative to the heuristic parser that
// asks Gemini for the structured fields. Selected by configuration; the
// heuristic parser remains the default and the fallback.
type GeminiExtractor struct {
	APIKey string
	Model  string
}

const geminiPrompt = `You are an expert data extraction assistant. Extract specific fields from the following raw text of an academic certificate and return the data as clean JSON.

Rules:
1. The required fields are: "certificate_number", "student_name", "roll_number", "course_name", "year_of_passing", "marks_obtained", "total_marks", "percentage", and "institution_name".
2. If a field cannot be found in the text, its value in the JSON must be null.
3. Your entire response must be ONLY the JSON object. Do not include any explanations or any text before or after the JSON.
4. Clean the extracted data by removing unnecessary newline characters or extra whitespace.

Here is the raw text:
"""
[INSERT RAW TEXT HERE]
"""`

// Parse extracts a CandidateRecord from raw text via Gemini. Unlike the
// heuristic parser this can fail (API errors, malformed responses); callers
// treat a failure as "no extraction" and may fall back to Parse.
func (g *GeminiExtractor) Parse(ctx context.Context, text string) (models.CandidateRecord, error) {
	out := models.CandidateRecord{RawText: text}

	if strings.TrimSpace(g.APIKey) == "" {
		return out, errors.New("missing gemini api key")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.APIKey))
	if err != nil {
		return out, fmt.Errorf("init gemini client: %w", err)
	}
	defer client.Close()

	modelName := g.Model
	if modelName == "" {
		modelName = "gemini-2.0-flash-lite"
	}
	model := client.GenerativeModel(modelName)
	model.GenerationConfig = genai.GenerationConfig{ResponseMIMEType: "application/json"}

	prompt := strings.Replace(geminiPrompt, "[INSERT RAW TEXT HERE]", text, 1)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return out, fmt.Errorf("gemini generation failed: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return out, errors.New("empty response from gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		} else {
			sb.WriteString(fmt.Sprint(part))
		}
	}
	jsonStr := strings.TrimSpace(sb.String())
	if jsonStr == "" {
		return out, errors.New("no text in gemini response")
	}

	// Models occasionally wrap the payload in code fences or prose; strip
	// down to the first balanced JSON object before decoding.
	jsonStr = stripCodeFences(jsonStr)
	if candidate, ok := extractFirstJSON(jsonStr); ok {
		jsonStr = candidate
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &fields); err != nil {
		return out, fmt.Errorf("parse gemini json: %w", err)
	}

	out.CertificateNumber = stringField(fields, "certificate_number")
	out.StudentName = stringField(fields, "student_name")
	out.RollNumber = stringField(fields, "roll_number")
	out.CourseName = stringField(fields, "course_name")
	out.InstitutionName = stringField(fields, "institution_name")
	if y := intField(fields, "year_of_passing"); y != nil {
		out.YearOfPassing = y
	}
	obtained := floatField(fields, "marks_obtained")
	total := floatField(fields, "total_marks")
	if obtained != nil {
		m := models.Marks{Obtained: *obtained, Total: 100}
		if total != nil {
			m.Total = *total
		}
		out.Marks = &m
	}
	out.Percentage = floatField(fields, "percentage")

	return out, nil
}

func stringField(fields map[string]any, key string) *string {
	v, ok := fields[key]
	if !ok || v == nil {
		return nil
	}
	var s string
	switch t := v.(type) {
	case string:
		s = strings.TrimSpace(t)
	default:
		b, _ := json.Marshal(t)
		s = strings.TrimSpace(string(b))
	}
	if s == "" {
		return nil
	}
	return &s
}

func intField(fields map[string]any, key string) *int {
	v, ok := fields[key]
	if !ok || v == nil {
		return nil
	}
	switch t := v.(type) {
	case float64:
		i := int(t)
		return &i
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return &i
		}
	}
	return nil
}

func floatField(fields map[string]any, key string) *float64 {
	v, ok := fields[key]
	if !ok || v == nil {
		return nil
	}
	switch t := v.(type) {
	case float64:
		return &t
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return &f
		}
	}
	return nil
}

// stripCodeFences removes surrounding Markdown code fences like ```json ... ```.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
		// An untagged fence puts the JSON body on the first line, so only
		// drop that line when it is a bare language tag like "json".
		if i := strings.IndexByte(s, '\n'); i != -1 {
			if isLanguageTag(strings.TrimSpace(s[:i])) {
				s = s[i+1:]
			}
		}
		s = strings.TrimSpace(s)
		if strings.HasSuffix(s, "```") {
			s = s[:len(s)-3]
		}
	}
	return strings.TrimSpace(s)
}

func isLanguageTag(line string) bool {
	if line == "" || len(line) >= 20 {
		return false
	}
	for _, r := range line {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// extractFirstJSON attempts to extract the first balanced JSON object or array.
func extractFirstJSON(s string) (string, bool) {
	if obj, ok := extractBalanced(s, '{', '}'); ok {
		return obj, true
	}
	if arr, ok := extractBalanced(s, '[', ']'); ok {
		return arr, true
	}
	return "", false
}

func extractBalanced(s string, open, close rune) (string, bool) {
	start := -1
	depth := 0
	for i, r := range s {
		if r == open {
			if depth == 0 {
				start = i
			}
			depth++
		} else if r == close {
			if depth > 0 {
				depth--
				if depth == 0 && start != -1 {
					return s[start : i+1], true
				}
			}
		}
	}
	return "", false
}
