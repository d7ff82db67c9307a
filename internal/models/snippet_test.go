package models

import "testing"

func TestSnippetSetKeepsInsertionOrder(t *testing.T) {
	set := NewSnippetSet()
	set.Set("zeta", Snippet{Prefix: "z", Body: []string{"z"}})
	set.Set("alpha", Snippet{Prefix: "a", Body: []string{"a"}})
	set.Set("mid", Snippet{Prefix: "m", Body: []string{"m"}})

	keys := set.Keys()
	want := []string{"zeta", "alpha", "mid"}
	if len(keys) != len(want) {
		t.Fatalf("expected %d keys, got %d", len(want), len(keys))
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("key %d: expected %q, got %q", i, want[i], keys[i])
		}
	}
}

func TestSnippetSetLastWriteWins(t *testing.T) {
	set := NewSnippetSet()
	set.Set("dup", Snippet{Prefix: "first", Body: []string{}})
	set.Set("other", Snippet{Prefix: "other", Body: []string{}})
	set.Set("dup", Snippet{Prefix: "second", Body: []string{}})

	if set.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", set.Len())
	}
	got, ok := set.Get("dup")
	if !ok || got.Prefix != "second" {
		t.Fatalf("expected overwritten entry, got %+v", got)
	}
	if set.Keys()[0] != "dup" {
		t.Fatalf("overwrite must keep the original position, got %v", set.Keys())
	}
}

func TestSnippetSetMarshalJSON(t *testing.T) {
	set := NewSnippetSet()
	set.Set("b", Snippet{Prefix: "b", Body: []string{"<div>&</div>"}, Scope: "vue"})
	set.Set("a", Snippet{Prefix: "a", Body: []string{"x"}})

	data, err := set.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"b":{"prefix":"b","body":["<div>&</div>"],"description":"","scope":"vue"},"a":{"prefix":"a","body":["x"],"description":"","scope":""}}`
	if string(data) != want {
		t.Fatalf("unexpected json:\n got %s\nwant %s", data, want)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
		ok    bool
	}{
		{"xml", FormatXML, true},
		{"webstorm", FormatXML, true},
		{"json", FormatJSON, true},
		{"vscode", FormatJSON, true},
		{"yaml", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseFormat(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}
