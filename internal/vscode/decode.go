// Package vscode handles the JSON snippet dialect: decoding snippet maps,
// pretty-printing them, and generating snippets from raw source code.
package vscode

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/opencode-ai/snipconv/internal/detect"
	"github.com/opencode-ai/snipconv/internal/models"
)

type rawSnippet struct {
	Prefix      json.RawMessage `json:"prefix"`
	Body        json.RawMessage `json:"body"`
	Description json.RawMessage `json:"description"`
	Scope       json.RawMessage `json:"scope"`
}

// ParseSnippetSet decodes a snippet map, keeping key order. A braceless
// fragment ("name": {...}) is accepted. Entries that are not well formed
// snippets are rejected with a *SnippetError.
func ParseSnippetSet(text string) (*models.SnippetSet, error) {
	dec := json.NewDecoder(strings.NewReader(detect.WrapFragment(text)))

	tok, err := dec.Token()
	if err != nil {
		return nil, &SnippetError{Message: err.Error()}
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, &SnippetError{Message: "top level value must be an object"}
	}

	set := models.NewSnippetSet()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, &SnippetError{Message: err.Error()}
		}
		key, ok := tok.(string)
		if !ok {
			return nil, &SnippetError{Message: fmt.Sprintf("unexpected token %v", tok)}
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, &SnippetError{Key: key, Message: err.Error()}
		}

		snippet, err := decodeSnippet(key, raw)
		if err != nil {
			return nil, err
		}
		set.Set(key, snippet)
	}

	if _, err := dec.Token(); err != nil {
		return nil, &SnippetError{Message: err.Error()}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &SnippetError{Message: "unexpected data after snippet map"}
	}

	return set, nil
}

func decodeSnippet(key string, raw json.RawMessage) (models.Snippet, error) {
	if !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
		return models.Snippet{}, &SnippetError{Key: key, Message: "entry must be an object"}
	}

	var entry rawSnippet
	if err := json.Unmarshal(raw, &entry); err != nil {
		return models.Snippet{}, &SnippetError{Key: key, Message: err.Error()}
	}

	body, err := decodeBody(entry.Body)
	if err != nil {
		return models.Snippet{}, &SnippetError{Key: key, Field: "body", Message: err.Error()}
	}

	prefix, err := decodePrefix(entry.Prefix)
	if err != nil {
		return models.Snippet{}, &SnippetError{Key: key, Field: "prefix", Message: err.Error()}
	}
	if prefix == "" {
		prefix = key
	}

	description, err := decodeOptionalString(entry.Description)
	if err != nil {
		return models.Snippet{}, &SnippetError{Key: key, Field: "description", Message: err.Error()}
	}

	scope, err := decodeOptionalString(entry.Scope)
	if err != nil {
		return models.Snippet{}, &SnippetError{Key: key, Field: "scope", Message: err.Error()}
	}

	return models.Snippet{
		Prefix:      prefix,
		Body:        body,
		Description: description,
		Scope:       scope,
	}, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// decodeBody accepts an array of strings or a single string split on
// newlines.
func decodeBody(raw json.RawMessage) ([]string, error) {
	if isNull(raw) {
		return nil, errors.New("is required")
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return strings.Split(single, "\n"), nil
	}

	var lines []string
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, errors.New("must be a string or an array of strings")
	}
	if lines == nil {
		lines = []string{}
	}
	return lines, nil
}

// decodePrefix accepts a string or an array of strings; the first element
// of an array is used.
func decodePrefix(raw json.RawMessage) (string, error) {
	if isNull(raw) {
		return "", nil
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single, nil
	}

	var many []string
	if err := json.Unmarshal(raw, &many); err != nil {
		return "", errors.New("must be a string or an array of strings")
	}
	if len(many) == 0 {
		return "", nil
	}
	return many[0], nil
}

func decodeOptionalString(raw json.RawMessage) (string, error) {
	if isNull(raw) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", errors.New("must be a string")
	}
	return s, nil
}
