package convert

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/opencode-ai/snipconv/internal/livetemplate"
	"github.com/opencode-ai/snipconv/internal/models"
	"github.com/opencode-ai/snipconv/internal/placeholder"
	"github.com/opencode-ai/snipconv/internal/scope"
)

var selectionForms = []string{placeholder.TabstopSelection, "$TM_SELECTED_TEXT"}

// ToTemplateXML converts snippets into a serialized template set.
func ToTemplateXML(snippets *models.SnippetSet, opts XMLOptions, options ...Option) string {
	templates := ToTemplates(snippets, opts, options...)
	return livetemplate.Marshal(templates, livetemplate.SetOptions{
		IncludeWrapper: opts.IncludeWrapper,
		Group:          opts.GroupName,
	})
}

// ToTemplates converts each snippet into a template. Tabstops become named
// variables: labeled tabstops are named after their sanitized label, bare
// and choice tabstops become VAR<n>, and $0 becomes $END$.
func ToTemplates(snippets *models.SnippetSet, opts XMLOptions, options ...Option) []models.Template {
	cfg := newSettings(options)
	if snippets == nil {
		return []models.Template{}
	}

	entries := snippets.Entries()
	if opts.SortByName {
		col := collate.New(language.English)
		sort.SliceStable(entries, func(i, j int) bool {
			return col.CompareString(entries[i].Name, entries[j].Name) < 0
		})
	}

	templates := make([]models.Template, 0, len(entries))
	for _, entry := range entries {
		tmpl := reverseSnippet(entry, opts.ContextCase)
		if blank := blankScopeTokens(entry.Snippet.Scope); blank > 0 {
			cfg.logger.Debug().
				Str("snippet", entry.Name).
				Int("skipped", blank).
				Msg("skipped blank scope tokens")
		}
		cfg.logger.Debug().
			Str("snippet", entry.Name).
			Int("variables", len(tmpl.Variables)).
			Msg("converted snippet to template")
		templates = append(templates, tmpl)
	}
	return templates
}

type declarations struct {
	order  []string
	byName map[string]*models.Variable
	choice map[string]bool
}

func newDeclarations() *declarations {
	return &declarations{
		byName: make(map[string]*models.Variable),
		choice: make(map[string]bool),
	}
}

// declare records the first occurrence of a variable. A later choice
// occurrence upgrades an earlier plain one so the choices are not lost.
func (d *declarations) declare(v models.Variable, isChoice bool) {
	if existing, ok := d.byName[v.Name]; ok {
		if isChoice && !d.choice[v.Name] {
			*existing = v
			d.choice[v.Name] = true
		}
		return
	}
	stored := v
	d.byName[v.Name] = &stored
	d.choice[v.Name] = isChoice
	d.order = append(d.order, v.Name)
}

func (d *declarations) variables() []models.Variable {
	vars := make([]models.Variable, 0, len(d.order))
	for _, name := range d.order {
		vars = append(vars, *d.byName[name])
	}
	return vars
}

func reverseSnippet(entry models.Entry, contextCase scope.ContextCase) models.Template {
	snippet := entry.Snippet
	decls := newDeclarations()

	lines := make([]string, 0, len(snippet.Body))
	for _, line := range snippet.Body {
		var b strings.Builder
		for _, tok := range placeholder.Tokenize(line) {
			switch tok.Kind {
			case placeholder.KindText:
				b.WriteString(literalText(tok.Text))
			case placeholder.KindEnd:
				b.WriteString("$" + placeholder.EndMarker + "$")
			case placeholder.KindTabstop:
				name := indexedName(tok.Index)
				decls.declare(models.Variable{Name: name, EnumValues: []string{}}, false)
				b.WriteString("$" + name + "$")
			case placeholder.KindChoice:
				name := indexedName(tok.Index)
				expression := placeholder.FormatEnum(tok.Choices)
				choices := placeholder.ParseEnum(expression)
				var defaultValue string
				if len(choices) > 0 {
					defaultValue = choices[0]
				}
				decls.declare(models.Variable{
					Name:         name,
					Expression:   expression,
					DefaultValue: defaultValue,
					EnumValues:   choices,
				}, true)
				b.WriteString("$" + name + "$")
			case placeholder.KindLabeled:
				name := labelName(tok.Label)
				decls.declare(models.Variable{
					Name:         name,
					DefaultValue: tok.Label,
					EnumValues:   []string{},
				}, false)
				b.WriteString("$" + name + "$")
			}
		}
		lines = append(lines, b.String())
	}

	name := snippet.Prefix
	if name == "" {
		name = entry.Name
	}

	return models.Template{
		Name:           name,
		Value:          strings.Join(lines, "\n"),
		Description:    snippet.Description,
		Variables:      decls.variables(),
		ContextOptions: scope.ContextOptions(snippet.Scope, contextCase),
	}
}

// literalText turns a text run of tabstop syntax into named dialect text.
// Snippet escapes (\$, \\, \}) are dropped since the named dialect has no
// backslash escapes, and unescaped selected text variables become the
// selection marker.
func literalText(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); {
		if s[i] == '\\' && i+1 < len(s) {
			switch next := s[i+1]; next {
			case '$', '\\', '}':
				b.WriteByte(next)
			default:
				b.WriteString(s[i : i+2])
			}
			i += 2
			continue
		}
		if s[i] == '$' {
			if form, ok := selectionForm(s[i:]); ok {
				b.WriteString("$" + placeholder.SelectionMarker + "$")
				i += len(form)
				continue
			}
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

func selectionForm(s string) (string, bool) {
	for _, form := range selectionForms {
		if strings.HasPrefix(s, form) {
			return form, true
		}
	}
	return "", false
}

// blankScopeTokens counts empty entries in a non-empty scope string.
func blankScopeTokens(scopeList string) int {
	if strings.TrimSpace(scopeList) == "" {
		return 0
	}
	blank := 0
	for _, token := range strings.Split(scopeList, ",") {
		if strings.TrimSpace(token) == "" {
			blank++
		}
	}
	return blank
}

func indexedName(index int) string {
	return fmt.Sprintf("VAR%d", index)
}

// labelName derives a variable name from a tabstop label. Names that would
// collide with the reserved markers get a suffix.
func labelName(label string) string {
	name := placeholder.SanitizeName(label)
	if name == placeholder.EndMarker || name == placeholder.SelectionMarker {
		name += "_"
	}
	return name
}
