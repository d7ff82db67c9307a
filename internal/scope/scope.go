// Package scope maps live template context options onto snippet scopes and
// back.
package scope

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Mapping pairs a case-insensitive substring with the canonical snippet
// scope it stands for.
type Mapping struct {
	Token string
	Scope string
}

// Mappings is checked in order; the first matching token wins.
var Mappings = []Mapping{
	{Token: "js", Scope: "javascript"},
	{Token: "java_script", Scope: "javascript"},
	{Token: "ts", Scope: "typescript"},
	{Token: "typescript", Scope: "typescript"},
	{Token: "vue", Scope: "vue"},
}

// Priority lists the canonical scopes that sort ahead of everything else.
var Priority = []string{"javascript", "typescript", "vue"}

// Canonical returns the canonical scope for a raw context option.
func Canonical(option string) (string, bool) {
	lower := strings.ToLower(option)
	for _, m := range Mappings {
		if strings.Contains(lower, strings.ToLower(m.Token)) {
			return m.Scope, true
		}
	}
	return "", false
}

// DetermineScope builds the snippet scope string for a template's context
// options. Canonical scopes come first, followed by every raw option
// verbatim; duplicates between the two groups are kept. The result is
// ordered with Priority scopes pinned to the front and the rest collated.
func DetermineScope(options []string) string {
	canonical := newOrderedSet()
	original := newOrderedSet()

	for _, option := range options {
		if scope, ok := Canonical(option); ok {
			canonical.add(scope)
		}
		original.add(option)
	}

	all := append(canonical.items, original.items...)
	Sort(all)
	return strings.Join(all, ",")
}

// Sort orders scopes with Priority entries first, in Priority order, and
// the remainder by locale collation.
func Sort(scopes []string) {
	col := collate.New(language.English)
	sort.SliceStable(scopes, func(i, j int) bool {
		a, b := priorityRank(scopes[i]), priorityRank(scopes[j])
		switch {
		case a >= 0 && b >= 0:
			return a < b
		case a >= 0:
			return true
		case b >= 0:
			return false
		}
		return col.CompareString(scopes[i], scopes[j]) < 0
	})
}

func priorityRank(scope string) int {
	for i, p := range Priority {
		if p == scope {
			return i
		}
	}
	return -1
}

type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{})}
}

func (s *orderedSet) add(item string) {
	if _, ok := s.seen[item]; ok {
		return
	}
	s.seen[item] = struct{}{}
	s.items = append(s.items, item)
}
