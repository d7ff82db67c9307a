package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Snippet is a tabstop snippet in the JSON dialect.
type Snippet struct {
	Prefix      string   `json:"prefix"`
	Body        []string `json:"body"`
	Description string   `json:"description"`
	Scope       string   `json:"scope"`
}

// SnippetSet is a name keyed collection of snippets that keeps insertion order.
// Setting an existing name replaces the entry in place (last write wins).
type SnippetSet struct {
	keys  []string
	items map[string]Snippet
}

// NewSnippetSet returns an empty set.
func NewSnippetSet() *SnippetSet {
	return &SnippetSet{items: make(map[string]Snippet)}
}

// Set stores a snippet under name.
func (s *SnippetSet) Set(name string, snippet Snippet) {
	if s.items == nil {
		s.items = make(map[string]Snippet)
	}
	if _, exists := s.items[name]; !exists {
		s.keys = append(s.keys, name)
	}
	s.items[name] = snippet
}

// Get returns the snippet stored under name.
func (s *SnippetSet) Get(name string) (Snippet, bool) {
	if s == nil {
		return Snippet{}, false
	}
	snippet, ok := s.items[name]
	return snippet, ok
}

// Keys returns the names in insertion order.
func (s *SnippetSet) Keys() []string {
	if s == nil {
		return nil
	}
	keys := make([]string, len(s.keys))
	copy(keys, s.keys)
	return keys
}

// Len returns the number of snippets.
func (s *SnippetSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Entry pairs a snippet with its name.
type Entry struct {
	Name    string
	Snippet Snippet
}

// Entries returns name/snippet pairs in insertion order.
func (s *SnippetSet) Entries() []Entry {
	if s == nil {
		return nil
	}
	entries := make([]Entry, 0, len(s.keys))
	for _, key := range s.keys {
		entries = append(entries, Entry{Name: key, Snippet: s.items[key]})
	}
	return entries
}

// MarshalJSON encodes the set as a JSON object in insertion order.
func (s *SnippetSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range s.Entries() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalRaw(entry.Name)
		if err != nil {
			return nil, fmt.Errorf("encode snippet name %q: %w", entry.Name, err)
		}
		value, err := marshalRaw(entry.Snippet)
		if err != nil {
			return nil, fmt.Errorf("encode snippet %q: %w", entry.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalRaw encodes v without HTML escaping.
func marshalRaw(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
