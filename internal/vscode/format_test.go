package vscode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencode-ai/snipconv/internal/models"
)

func sampleSet() *models.SnippetSet {
	set := models.NewSnippetSet()
	set.Set("log", models.Snippet{
		Prefix:      "clg",
		Body:        []string{"console.log(${1:msg});", "$0"},
		Description: "Log <msg>",
		Scope:       "javascript",
	})
	set.Set("arrow", models.Snippet{
		Prefix: "af",
		Body:   []string{"() => {}"},
	})
	return set
}

func TestFormatSnippetsWithoutBraces(t *testing.T) {
	got, err := FormatSnippets(sampleSet(), Options{})
	require.NoError(t, err)

	want := `  "log": {
    "prefix": "clg",
    "body": [
      "console.log(${1:msg});",
      "$0"
    ],
    "description": "Log <msg>",
    "scope": "javascript"
  },
  "arrow": {
    "prefix": "af",
    "body": [
      "() => {}"
    ],
    "description": "",
    "scope": ""
  }`
	assert.Equal(t, want, got)
}

func TestFormatSnippetsWithBracesSorted(t *testing.T) {
	got, err := FormatSnippets(sampleSet(), Options{IncludeBraces: true, Sort: true})
	require.NoError(t, err)

	want := `{
  "arrow": {
    "prefix": "af",
    "body": [
      "() => {}"
    ],
    "description": "",
    "scope": ""
  },
  "log": {
    "prefix": "clg",
    "body": [
      "console.log(${1:msg});",
      "$0"
    ],
    "description": "Log <msg>",
    "scope": "javascript"
  }
}`
	assert.Equal(t, want, got)

	parsed, err := ParseSnippetSet(got)
	require.NoError(t, err)
	assert.Equal(t, []string{"arrow", "log"}, parsed.Keys())
}

func TestFormatSnippetsEmpty(t *testing.T) {
	got, err := FormatSnippets(models.NewSnippetSet(), Options{IncludeBraces: true})
	require.NoError(t, err)
	assert.Equal(t, "{}", got)

	got, err = FormatSnippets(models.NewSnippetSet(), Options{})
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestFormatSnippetJSON(t *testing.T) {
	got, err := FormatSnippetJSON(models.Snippet{Prefix: "p"})
	require.NoError(t, err)

	want := `"prefix": "p",
  "body": [],
  "description": "",
  "scope": ""`
	assert.Equal(t, want, got)
}

func TestPreserveIndentation(t *testing.T) {
	lines := []string{
		"    if (x) {",
		"      y()",
		"",
		"  }",
		"    }",
	}

	got := PreserveIndentation(lines)
	assert.Equal(t, []string{"if (x) {", "  y()", "", "}", "}"}, got)
	assert.Equal(t, []string{}, PreserveIndentation(nil))
}
