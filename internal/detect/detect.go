// Package detect classifies raw snippet text as the XML or JSON dialect.
package detect

import (
	"encoding/json"
	"strings"

	"github.com/opencode-ai/snipconv/internal/models"
)

var xmlPrefixes = []string{"<?xml", "<templateSet", "<template"}

// Format returns the dialect of text. It never fails: text that is neither
// recognisably XML nor parseable JSON is reported as XML so the structured
// parser can surface a proper error.
func Format(text string) models.Format {
	trimmed := strings.TrimSpace(text)

	for _, prefix := range xmlPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return models.FormatXML
		}
	}

	if json.Valid([]byte(WrapFragment(trimmed))) {
		return models.FormatJSON
	}
	return models.FormatXML
}

// WrapFragment wraps a braceless JSON fragment ("name": {...}) in an outer
// object. Text that already starts with '{' is returned unchanged.
func WrapFragment(text string) string {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "{") {
		return trimmed
	}
	return "{" + trimmed + "}"
}
