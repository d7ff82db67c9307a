package scope

import "strings"

// Item is a selectable context within a group.
type Item struct {
	SnippetID      string `json:"snippetId"`
	LiveTemplateID string `json:"liveTemplateId"`
	Label          string `json:"label"`
}

// Group is a language level context with its finer grained items.
type Group struct {
	Item
	Items []Item `json:"items"`
}

// Catalog is the tree of contexts offered by the scope picker.
var Catalog = []Group{
	{
		Item: Item{SnippetID: "javascript", LiveTemplateID: "JAVA_SCRIPT", Label: "JavaScript"},
		Items: []Item{
			{SnippetID: "javascript", LiveTemplateID: "JS_CLASS", Label: "Class/Interface"},
			{SnippetID: "javascript", LiveTemplateID: "JS_EXPRESSION", Label: "Expression"},
			{SnippetID: "javascript", LiveTemplateID: "JS_STATEMENT", Label: "Statement"},
			{SnippetID: "javascript", LiveTemplateID: "JS_TOP_LEVEL_STATEMENT", Label: "Top Level Statement"},
		},
	},
	{
		Item: Item{SnippetID: "typescript", LiveTemplateID: "TypeScript", Label: "TypeScript"},
		Items: []Item{
			{SnippetID: "typescript", LiveTemplateID: "TS_CLASS", Label: "Class/Interface"},
			{SnippetID: "typescript", LiveTemplateID: "TS_EXPRESSION", Label: "Expression"},
			{SnippetID: "typescript", LiveTemplateID: "TS_STATEMENT", Label: "Statement"},
			{SnippetID: "typescript", LiveTemplateID: "TS_TOP_LEVEL_STATEMENT", Label: "Top Level Statement"},
		},
	},
	{
		Item: Item{SnippetID: "vue", LiveTemplateID: "Vue", Label: "Vue"},
		Items: []Item{
			{SnippetID: "vue", LiveTemplateID: "VUE_COMPONENT", Label: "Vue component"},
			{SnippetID: "vue", LiveTemplateID: "VUE_SCRIPT", Label: "Vue script tag content"},
			{SnippetID: "vue", LiveTemplateID: "VUE_TEMPLATE", Label: "Vue template"},
			{SnippetID: "vue", LiveTemplateID: "VUE_TEMPLATE_TAG", Label: "Vue template tag element"},
			{SnippetID: "vue", LiveTemplateID: "VUE_TOP_LEVEL", Label: "Vue top-level element"},
			{SnippetID: "vue", LiveTemplateID: "VUE_OTHER", Label: "Other"},
		},
	},
}

// Lookup finds a catalog entry by live template id, case-insensitively.
func Lookup(liveTemplateID string) (Item, bool) {
	for _, group := range Catalog {
		if strings.EqualFold(group.LiveTemplateID, liveTemplateID) {
			return group.Item, true
		}
		for _, item := range group.Items {
			if strings.EqualFold(item.LiveTemplateID, liveTemplateID) {
				return item, true
			}
		}
	}
	return Item{}, false
}

// Selection tracks which catalog entries are checked.
type Selection struct {
	checked map[string]bool
}

// NewSelection returns a selection with the given live template ids checked.
// Unknown ids are ignored.
func NewSelection(ids ...string) *Selection {
	s := &Selection{checked: make(map[string]bool)}
	for _, id := range ids {
		if item, ok := Lookup(id); ok {
			s.checked[item.LiveTemplateID] = true
		}
	}
	return s
}

// Checked reports whether the entry is checked.
func (s *Selection) Checked(liveTemplateID string) bool {
	return s.checked[liveTemplateID]
}

// Toggle flips a single entry. Toggling a group applies the new state to
// all of its items.
func (s *Selection) Toggle(liveTemplateID string) {
	state := !s.checked[liveTemplateID]
	for _, group := range Catalog {
		if group.LiveTemplateID == liveTemplateID {
			s.checked[group.LiveTemplateID] = state
			for _, item := range group.Items {
				s.checked[item.LiveTemplateID] = state
			}
			return
		}
	}
	s.checked[liveTemplateID] = state
}

// Clear unchecks everything.
func (s *Selection) Clear() {
	s.checked = make(map[string]bool)
}

// ContextOptions returns the checked live template ids in catalog order.
func (s *Selection) ContextOptions() []string {
	options := []string{}
	for _, group := range Catalog {
		if s.checked[group.LiveTemplateID] {
			options = append(options, group.LiveTemplateID)
		}
		for _, item := range group.Items {
			if s.checked[item.LiveTemplateID] {
				options = append(options, item.LiveTemplateID)
			}
		}
	}
	return options
}

// SnippetScope returns the distinct snippet scopes of the checked entries,
// comma joined and sorted like DetermineScope sorts.
func (s *Selection) SnippetScope() string {
	set := newOrderedSet()
	for _, group := range Catalog {
		if s.checked[group.LiveTemplateID] {
			set.add(group.SnippetID)
		}
		for _, item := range group.Items {
			if s.checked[item.LiveTemplateID] {
				set.add(item.SnippetID)
			}
		}
	}
	Sort(set.items)
	return strings.Join(set.items, ",")
}
