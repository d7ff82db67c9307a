// Package models defines the records shared by both snippet dialects.
package models

// Variable is a named slot declared by a live template.
type Variable struct {
	Name         string   `json:"name"`
	Expression   string   `json:"expression"`
	DefaultValue string   `json:"defaultValue"`
	EnumValues   []string `json:"enumValues"`
}

// HasChoices reports whether the variable is constrained to an enumeration.
func (v Variable) HasChoices() bool {
	return len(v.EnumValues) > 0
}

// Template is a live template in the XML dialect.
type Template struct {
	Name           string     `json:"name"`
	Value          string     `json:"value"`
	Description    string     `json:"description"`
	Variables      []Variable `json:"variables"`
	ContextOptions []string   `json:"contextOptions"`
}

// Variable returns the declared variable with the given name.
func (t *Template) Variable(name string) (Variable, bool) {
	for _, v := range t.Variables {
		if v.Name == name {
			return v, true
		}
	}
	return Variable{}, false
}

// Format identifies one of the two snippet dialects.
type Format string

const (
	// FormatXML is the live template dialect (templateSet / template / variable / context).
	FormatXML Format = "xml"
	// FormatJSON is the tabstop snippet dialect (name -> prefix/body/description/scope).
	FormatJSON Format = "json"
)

// ParseFormat normalizes a user supplied format name.
func ParseFormat(raw string) (Format, bool) {
	switch Format(raw) {
	case FormatXML, "livetemplate", "webstorm":
		return FormatXML, true
	case FormatJSON, "snippet", "vscode":
		return FormatJSON, true
	default:
		return "", false
	}
}
