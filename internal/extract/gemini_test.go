package extract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"{\"a\":1}", "{\"a\":1}"},
		{"```json\n{\"a\":1}\n```", "{\"a\":1}"},
		{"```\n{\"a\":1}\n```", "{\"a\":1}"},
		{"```\n[1,2]\n```", "[1,2]"},
		{"  ```json\n{\"a\":1}\n```  ", "{\"a\":1}"},
		{"```JSON\n{\"student_name\":\"Aarav Sharma\"}\n```", "{\"student_name\":\"Aarav Sharma\"}"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, stripCodeFences(tc.in))
	}
}

func TestIsLanguageTag(t *testing.T) {
	assert.True(t, isLanguageTag("json"))
	assert.True(t, isLanguageTag("JSON"))
	assert.False(t, isLanguageTag(""))
	assert.False(t, isLanguageTag(`{"a":1}`))
	assert.False(t, isLanguageTag("[1,2]"))
	assert.False(t, isLanguageTag("a very long line that is not a language tag at all"))
}

func TestExtractFirstJSON(t *testing.T) {
	got, ok := extractFirstJSON(`Sure! Here you go: {"student_name":"A","nested":{"x":1}} hope that helps`)
	require.True(t, ok)
	assert.Equal(t, `{"student_name":"A","nested":{"x":1}}`, got)

	_, ok = extractFirstJSON("no json here")
	assert.False(t, ok)
}

func TestGeminiFieldCoercion(t *testing.T) {
	var fields map[string]any
	raw := `{
		"certificate_number": " IITB001 ",
		"student_name": null,
		"year_of_passing": "2023",
		"marks_obtained": 94,
		"total_marks": "100",
		"percentage": null
	}`
	require.NoError(t, json.Unmarshal([]byte(raw), &fields))

	cn := stringField(fields, "certificate_number")
	require.NotNil(t, cn)
	assert.Equal(t, "IITB001", *cn)

	assert.Nil(t, stringField(fields, "student_name"))
	assert.Nil(t, stringField(fields, "missing_key"))

	y := intField(fields, "year_of_passing")
	require.NotNil(t, y)
	assert.Equal(t, 2023, *y)

	m := floatField(fields, "marks_obtained")
	require.NotNil(t, m)
	assert.Equal(t, 94.0, *m)

	tm := floatField(fields, "total_marks")
	require.NotNil(t, tm)
	assert.Equal(t, 100.0, *tm)

	assert.Nil(t, floatField(fields, "percentage"))
}
