package convert

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencode-ai/snipconv/internal/livetemplate"
	"github.com/opencode-ai/snipconv/internal/models"
	"github.com/opencode-ai/snipconv/internal/placeholder"
	"github.com/opencode-ai/snipconv/internal/scope"
)

func snippetSet(entries ...models.Entry) *models.SnippetSet {
	set := models.NewSnippetSet()
	for _, e := range entries {
		set.Set(e.Name, e.Snippet)
	}
	return set
}

func TestToTemplatesVariables(t *testing.T) {
	tests := []struct {
		name      string
		body      []string
		wantValue string
		wantVars  []models.Variable
	}{
		{
			name:      "labeled tabstops",
			body:      []string{"const ${1:name} = ${2:value};"},
			wantValue: "const $name$ = $value$;",
			wantVars: []models.Variable{
				{Name: "name", DefaultValue: "name", EnumValues: []string{}},
				{Name: "value", DefaultValue: "value", EnumValues: []string{}},
			},
		},
		{
			name:      "choice tabstop",
			body:      []string{"${1|const,let|} x;"},
			wantValue: "$VAR1$ x;",
			wantVars: []models.Variable{
				{Name: "VAR1", Expression: `enum("const","let")`, DefaultValue: "const", EnumValues: []string{"const", "let"}},
			},
		},
		{
			name:      "bare tabstops and end",
			body:      []string{"$1 ${2}$0"},
			wantValue: "$VAR1$ $VAR2$$END$",
			wantVars: []models.Variable{
				{Name: "VAR1", EnumValues: []string{}},
				{Name: "VAR2", EnumValues: []string{}},
			},
		},
		{
			name:      "end in braces",
			body:      []string{"x${0}"},
			wantValue: "x$END$",
			wantVars:  []models.Variable{},
		},
		{
			name:      "multiple lines joined",
			body:      []string{"if (${1:cond}) {", "\t$0", "}"},
			wantValue: "if ($cond$) {\n\t$END$\n}",
			wantVars: []models.Variable{
				{Name: "cond", DefaultValue: "cond", EnumValues: []string{}},
			},
		},
		{
			name:      "repeated tabstop declared once",
			body:      []string{"${1:a} + ${1:a}"},
			wantValue: "$a$ + $a$",
			wantVars: []models.Variable{
				{Name: "a", DefaultValue: "a", EnumValues: []string{}},
			},
		},
		{
			name:      "later choice upgrades bare tabstop",
			body:      []string{"${1} ${1|x,y|}"},
			wantValue: "$VAR1$ $VAR1$",
			wantVars: []models.Variable{
				{Name: "VAR1", Expression: `enum("x","y")`, DefaultValue: "x", EnumValues: []string{"x", "y"}},
			},
		},
		{
			name:      "label sanitized into name",
			body:      []string{"${1:first name}"},
			wantValue: "$first_name$",
			wantVars: []models.Variable{
				{Name: "first_name", DefaultValue: "first name", EnumValues: []string{}},
			},
		},
		{
			name:      "reserved label renamed",
			body:      []string{"${1:END}"},
			wantValue: "$END_$",
			wantVars: []models.Variable{
				{Name: "END_", DefaultValue: "END", EnumValues: []string{}},
			},
		},
		{
			name:      "selected text becomes selection marker",
			body:      []string{"(${TM_SELECTED_TEXT})"},
			wantValue: "($SELECTION$)",
			wantVars:  []models.Variable{},
		},
		{
			name:      "escaped dollar becomes literal dollar",
			body:      []string{`\$1`},
			wantValue: `$1`,
			wantVars:  []models.Variable{},
		},
		{
			name:      "escaped backslash and brace lose their escape",
			body:      []string{`a\\b \}`},
			wantValue: `a\b }`,
			wantVars:  []models.Variable{},
		},
		{
			name:      "escaped selected text stays literal",
			body:      []string{`\${TM_SELECTED_TEXT}`},
			wantValue: `${TM_SELECTED_TEXT}`,
			wantVars:  []models.Variable{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := snippetSet(models.Entry{Name: "s", Snippet: models.Snippet{Prefix: "s", Body: tt.body}})
			templates := ToTemplates(set, XMLOptions{})
			require.Len(t, templates, 1)

			assert.Equal(t, tt.wantValue, templates[0].Value)
			if diff := cmp.Diff(tt.wantVars, templates[0].Variables); diff != "" {
				t.Errorf("variables mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToTemplatesNameAndContext(t *testing.T) {
	set := snippetSet(
		models.Entry{Name: "Log", Snippet: models.Snippet{Prefix: "clg", Body: []string{"x"}, Description: "d", Scope: "javascript, typescript"}},
		models.Entry{Name: "NoPrefix", Snippet: models.Snippet{Body: []string{"y"}}},
	)

	templates := ToTemplates(set, XMLOptions{})
	require.Len(t, templates, 2)

	assert.Equal(t, "clg", templates[0].Name)
	assert.Equal(t, "d", templates[0].Description)
	assert.Equal(t, []string{"javascript", "typescript"}, templates[0].ContextOptions)
	assert.Equal(t, "NoPrefix", templates[1].Name)
	assert.Equal(t, []string{}, templates[1].ContextOptions)

	upper := ToTemplates(set, XMLOptions{ContextCase: scope.CaseUpper})
	assert.Equal(t, []string{"JAVASCRIPT", "TYPESCRIPT"}, upper[0].ContextOptions)
}

func TestToTemplatesSortByName(t *testing.T) {
	set := snippetSet(
		models.Entry{Name: "beta", Snippet: models.Snippet{Prefix: "beta"}},
		models.Entry{Name: "Alpha", Snippet: models.Snippet{Prefix: "Alpha"}},
		models.Entry{Name: "gamma", Snippet: models.Snippet{Prefix: "gamma"}},
	)

	sorted := ToTemplates(set, XMLOptions{SortByName: true})
	names := []string{sorted[0].Name, sorted[1].Name, sorted[2].Name}
	assert.Equal(t, []string{"Alpha", "beta", "gamma"}, names)

	unsorted := ToTemplates(set, XMLOptions{})
	assert.Equal(t, "beta", unsorted[0].Name)
}

func TestToTemplatesNil(t *testing.T) {
	assert.Empty(t, ToTemplates(nil, XMLOptions{}))
}

func TestToTemplateXML(t *testing.T) {
	set := snippetSet(models.Entry{Name: "clg", Snippet: models.Snippet{
		Prefix:      "clg",
		Body:        []string{"console.log(${1:msg});", "$0"},
		Description: "Log",
		Scope:       "javascript",
	}})

	got := ToTemplateXML(set, XMLOptions{IncludeWrapper: true, GroupName: "JS"})
	want := `<templateSet group="JS">
  <template name="clg" value="console.log($msg$);&#10;$END$" description="Log" toReformat="false" toShortenFQNames="true">
    <variable name="msg" expression="" defaultValue="msg" alwaysStopAt="true" />
    <context>
      <option name="javascript" value="true" />
    </context>
  </template>
</templateSet>`
	assert.Equal(t, want, got)

	bare := ToTemplateXML(set, XMLOptions{})
	assert.NotContains(t, bare, "templateSet")
	assert.Contains(t, bare, `<template name="clg"`)
}

func TestRoundTripPreservesPlaceholderCount(t *testing.T) {
	templates := []models.Template{
		{
			Name:  "fn",
			Value: "function $NAME$($PARAMS$) {&#10;  $BODY$$END$&#10;}",
			Variables: []models.Variable{
				{Name: "NAME", DefaultValue: `"fn"`},
				{Name: "PARAMS"},
				{Name: "BODY", Expression: `enum("return;","throw e;")`, EnumValues: []string{"return;", "throw e;"}},
			},
			ContextOptions: []string{"JS_STATEMENT"},
		},
	}

	snippets := ToSnippets(templates)
	back := ToTemplates(snippets, XMLOptions{})
	require.Len(t, back, 1)

	before := len(placeholder.NamedRefs(placeholder.DecodeEntities(templates[0].Value)))
	after := len(placeholder.NamedRefs(back[0].Value))
	assert.Equal(t, before, after)

	body, _ := snippets.Get("fn")
	assert.Equal(t, before, placeholder.Count(body.Body))
}

func TestEnumSurvivesRoundTrip(t *testing.T) {
	templates := []models.Template{{
		Name:  "kind",
		Value: "$KIND$",
		Variables: []models.Variable{{
			Name:         "KIND",
			Expression:   `enum("const","let","var")`,
			DefaultValue: "const",
			EnumValues:   []string{"const", "let", "var"},
		}},
	}}

	back := ToTemplates(ToSnippets(templates), XMLOptions{})
	require.Len(t, back, 1)
	require.Len(t, back[0].Variables, 1)

	v := back[0].Variables[0]
	assert.Equal(t, `enum("const","let","var")`, v.Expression)
	assert.Equal(t, []string{"const", "let", "var"}, v.EnumValues)
	assert.Equal(t, "const", v.DefaultValue)
}

func TestXMLRoundTripThroughParser(t *testing.T) {
	set := snippetSet(models.Entry{Name: "if", Snippet: models.Snippet{
		Prefix: "if",
		Body:   []string{"if (${1:cond}) {", "\t$0", "}"},
		Scope:  "javascript,typescript",
	}})

	xml := ToTemplateXML(set, XMLOptions{IncludeWrapper: true})
	parsed, err := livetemplate.ParseTemplates(xml)
	require.NoError(t, err)

	again := ToSnippets(parsed)
	got, ok := again.Get("if")
	require.True(t, ok)
	assert.Equal(t, []string{"if (${1:cond}) {", "\t$0", "}"}, got.Body)
	assert.Equal(t, "javascript,typescript,typescript", got.Scope)
}

func TestEscapedTextRoundTripThroughParser(t *testing.T) {
	body := []string{`cost: \$x for ${1:item}`, `path \\ done$0`}
	set := snippetSet(models.Entry{Name: "cost", Snippet: models.Snippet{Prefix: "cost", Body: body}})

	xml := ToTemplateXML(set, XMLOptions{IncludeWrapper: true})
	assert.Contains(t, xml, `value="cost: $x for $item$&#10;path \ done$END$"`)

	parsed, err := livetemplate.ParseTemplates(xml)
	require.NoError(t, err)

	got, ok := ToSnippets(parsed).Get("cost")
	require.True(t, ok)
	assert.Equal(t, body, got.Body)
	assert.Equal(t, placeholder.Count(body), placeholder.Count(got.Body))
}

func TestToTemplatesLogsBlankScopeTokens(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	set := snippetSet(models.Entry{Name: "s", Snippet: models.Snippet{Prefix: "s", Body: []string{"x"}, Scope: "javascript,, ,vue"}})
	templates := ToTemplates(set, XMLOptions{}, WithLogger(logger))

	require.Len(t, templates, 1)
	assert.Equal(t, []string{"javascript", "vue"}, templates[0].ContextOptions)
	assert.Contains(t, buf.String(), `"skipped":2`)
	assert.Contains(t, buf.String(), "skipped blank scope tokens")
}
