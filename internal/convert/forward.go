package convert

import (
	"fmt"
	"strings"

	"github.com/opencode-ai/snipconv/internal/models"
	"github.com/opencode-ai/snipconv/internal/placeholder"
	"github.com/opencode-ai/snipconv/internal/scope"
)

var lineBreaks = strings.NewReplacer("&#10;", "\n")

// ToSnippets converts templates into snippets keyed by template name, in
// input order. Templates sharing a name overwrite earlier ones in place:
// the last definition wins, at the position of the first.
func ToSnippets(templates []models.Template, options ...Option) *models.SnippetSet {
	cfg := newSettings(options)
	set := models.NewSnippetSet()

	for _, tmpl := range templates {
		if _, exists := set.Get(tmpl.Name); exists {
			cfg.logger.Debug().Str("template", tmpl.Name).Msg("duplicate template name, keeping the last definition")
		}
		set.Set(tmpl.Name, models.Snippet{
			Prefix:      tmpl.Name,
			Body:        processBody(tmpl, cfg),
			Description: tmpl.Description,
			Scope:       scope.DetermineScope(tmpl.ContextOptions),
		})
	}

	cfg.logger.Debug().Int("templates", len(templates)).Int("snippets", set.Len()).Msg("converted templates to snippets")
	return set
}

func processBody(tmpl models.Template, cfg *settings) []string {
	value := placeholder.DecodeEntities(tmpl.Value)

	// Tabstop indices follow declaration order; a repeated declaration still
	// consumes an index but the first one is used.
	tabstops := make(map[string]string, len(tmpl.Variables))
	for i, v := range tmpl.Variables {
		if _, exists := tabstops[v.Name]; exists {
			continue
		}
		tabstops[v.Name] = createPlaceholder(v, i+1, cfg.labels)
	}

	known := func(name string) bool {
		if _, ok := tabstops[name]; ok {
			return true
		}
		return name == placeholder.EndMarker || name == placeholder.SelectionMarker
	}

	for _, ref := range placeholder.NamedRefs(value) {
		if !known(ref) {
			cfg.logger.Debug().Str("template", tmpl.Name).Str("variable", ref).Msg("reference has no declaration, kept as text")
		}
	}

	tokens := placeholder.TokenizeNamed(value, known)
	pieces := make([]placeholder.Piece, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Kind != placeholder.KindNamed {
			pieces = append(pieces, placeholder.Piece{Text: tok.Text})
			continue
		}
		if ph, ok := tabstops[tok.Name]; ok {
			pieces = append(pieces, placeholder.Piece{Text: ph, Raw: true})
			continue
		}
		switch tok.Name {
		case placeholder.EndMarker:
			pieces = append(pieces, placeholder.Piece{Text: placeholder.TabstopEnd, Raw: true})
		case placeholder.SelectionMarker:
			pieces = append(pieces, placeholder.Piece{Text: placeholder.TabstopSelection, Raw: true})
		}
	}

	escaped := placeholder.JoinEscaped(pieces)
	return strings.Split(lineBreaks.Replace(escaped), "\n")
}

func createPlaceholder(v models.Variable, index int, labels map[string]string) string {
	choices := v.EnumValues
	if len(choices) == 0 {
		choices = placeholder.ParseEnum(v.Expression)
	}
	if len(choices) > 0 {
		return fmt.Sprintf("${%d|%s|}", index, strings.Join(choices, ","))
	}

	if label := variableLabel(v, labels); label != "" {
		return fmt.Sprintf("${%d:%s}", index, placeholder.EscapeLabel(label))
	}
	return fmt.Sprintf("${%d}", index)
}

// variableLabel resolves the label of a non-enum variable. Variables
// without a usable default get no label, even when their name is in the
// label table.
func variableLabel(v models.Variable, labels map[string]string) string {
	if v.DefaultValue == "" || v.DefaultValue == `""` {
		return ""
	}
	if label, ok := labels[v.Name]; ok {
		return label
	}
	return strings.ReplaceAll(v.DefaultValue, `"`, "")
}
