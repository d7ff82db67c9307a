package vscode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/opencode-ai/snipconv/internal/models"
)

// Options controls FormatSnippets.
type Options struct {
	// IncludeBraces wraps the entries in the enclosing object braces.
	IncludeBraces bool
	// Sort orders entries by name using locale collation.
	Sort bool
}

// FormatSnippets pretty-prints a snippet map with two space indentation.
// Without IncludeBraces the result is a fragment ready to paste into an
// existing snippets file.
func FormatSnippets(set *models.SnippetSet, opts Options) (string, error) {
	entries := set.Entries()
	if opts.Sort {
		col := collate.New(language.English)
		sort.SliceStable(entries, func(i, j int) bool {
			return col.CompareString(entries[i].Name, entries[j].Name) < 0
		})
	}

	parts := make([]string, 0, len(entries))
	for _, entry := range entries {
		key, err := encode(entry.Name, "")
		if err != nil {
			return "", fmt.Errorf("encode snippet name %q: %w", entry.Name, err)
		}
		value, err := encode(normalize(entry.Snippet), "  ")
		if err != nil {
			return "", fmt.Errorf("encode snippet %q: %w", entry.Name, err)
		}
		parts = append(parts, "  "+key+": "+value)
	}

	if !opts.IncludeBraces {
		return strings.Join(parts, ",\n"), nil
	}
	if len(parts) == 0 {
		return "{}", nil
	}
	return "{\n" + strings.Join(parts, ",\n") + "\n}", nil
}

// FormatSnippetJSON prints a single snippet object without its outer
// braces, trimmed of surrounding whitespace.
func FormatSnippetJSON(snippet models.Snippet) (string, error) {
	out, err := encode(normalize(snippet), "")
	if err != nil {
		return "", fmt.Errorf("encode snippet: %w", err)
	}

	lines := strings.Split(out, "\n")
	if len(lines) < 2 {
		return "", nil
	}
	return strings.TrimSpace(strings.Join(lines[1:len(lines)-1], "\n")), nil
}

// PreserveIndentation re-bases lines on the indentation of the first line.
// Remaining indentation is written as spaces, lines indented less than the
// first line lose all leading whitespace, and blank lines become empty.
func PreserveIndentation(lines []string) []string {
	if len(lines) == 0 {
		return []string{}
	}

	base := indentWidth(lines[0])
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		text := strings.TrimSpace(line)
		if text == "" {
			out = append(out, "")
			continue
		}
		relative := indentWidth(line) - base
		if relative < 0 {
			relative = 0
		}
		out = append(out, strings.Repeat(" ", relative)+text)
	}
	return out
}

func indentWidth(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

func normalize(snippet models.Snippet) models.Snippet {
	if snippet.Body == nil {
		snippet.Body = []string{}
	}
	return snippet
}

func encode(v any, prefix string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent(prefix, "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
