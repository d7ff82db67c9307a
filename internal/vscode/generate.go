package vscode

import (
	"strings"

	"github.com/opencode-ai/snipconv/internal/models"
	"github.com/opencode-ai/snipconv/internal/placeholder"
)

const (
	// DefaultName keys a generated snippet when no name is given.
	DefaultName = "untitled"
	// DefaultPrefix triggers a generated snippet when no prefix is given.
	DefaultPrefix = "snippet"
)

// SnippetInput describes an ad hoc snippet built from source code.
type SnippetInput struct {
	Name        string
	Prefix      string
	Description string
	Scope       string
	SourceCode  string
	// KeepIndent keeps indentation relative to the first line instead of
	// trimming every line.
	KeepIndent bool
}

// GenerateSnippet turns raw source code into a single snippet. Each line is
// left trimmed (or re-based with KeepIndent) and escaped; blank lines are
// dropped. Blank source yields an empty set rather than an error.
func GenerateSnippet(in SnippetInput) *models.SnippetSet {
	set := models.NewSnippetSet()
	if strings.TrimSpace(in.SourceCode) == "" {
		return set
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = DefaultName
	}
	prefix := strings.TrimSpace(in.Prefix)
	if prefix == "" {
		prefix = DefaultPrefix
	}

	var lines []string
	for _, line := range strings.Split(in.SourceCode, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if in.KeepIndent {
		lines = PreserveIndentation(lines)
	}

	body := make([]string, 0, len(lines))
	for _, line := range lines {
		if !in.KeepIndent {
			line = strings.TrimLeft(line, " \t")
		}
		body = append(body, placeholder.EscapeSourceLine(line))
	}

	set.Set(name, models.Snippet{
		Prefix:      prefix,
		Body:        body,
		Description: in.Description,
		Scope:       in.Scope,
	})
	return set
}
