package livetemplate

import (
	"strings"

	"github.com/opencode-ai/snipconv/internal/models"
	"github.com/opencode-ai/snipconv/internal/placeholder"
)

// DefaultGroup is the templateSet group used when none is given.
const DefaultGroup = "Custom"

// SetOptions controls how a list of templates is serialized.
type SetOptions struct {
	// IncludeWrapper wraps the templates in a templateSet element.
	IncludeWrapper bool
	// Group names the templateSet; empty means DefaultGroup.
	Group string
}

var whitespaceEscaper = strings.NewReplacer(
	"\r", "&#13;",
	"\n", "&#10;",
	"\t", "&#9;",
)

// escapeAttr escapes an attribute value. Line breaks and tabs are written as
// character references so attribute normalization cannot fold them.
func escapeAttr(s string) string {
	return whitespaceEscaper.Replace(placeholder.EscapeXMLAttr(s))
}

// Marshal serializes templates as live template XML.
func Marshal(templates []models.Template, opts SetOptions) string {
	indent := ""
	if opts.IncludeWrapper {
		indent = "  "
	}

	parts := make([]string, 0, len(templates))
	for _, tmpl := range templates {
		parts = append(parts, marshalTemplate(tmpl, indent))
	}
	body := strings.Join(parts, "\n")

	if !opts.IncludeWrapper {
		return body
	}

	group := opts.Group
	if group == "" {
		group = DefaultGroup
	}

	var b strings.Builder
	b.WriteString(`<templateSet group="` + escapeAttr(group) + `">`)
	b.WriteString("\n")
	if body != "" {
		b.WriteString(body)
		b.WriteString("\n")
	}
	b.WriteString("</templateSet>")
	return b.String()
}

func marshalTemplate(tmpl models.Template, indent string) string {
	var b strings.Builder

	b.WriteString(indent)
	b.WriteString(`<template name="` + escapeAttr(tmpl.Name) + `"`)
	b.WriteString(` value="` + escapeAttr(tmpl.Value) + `"`)
	b.WriteString(` description="` + escapeAttr(tmpl.Description) + `"`)
	b.WriteString(` toReformat="false" toShortenFQNames="true">`)
	b.WriteString("\n")

	for _, v := range tmpl.Variables {
		b.WriteString(indent + "  ")
		b.WriteString(`<variable name="` + escapeAttr(v.Name) + `"`)
		b.WriteString(` expression="` + escapeAttr(v.Expression) + `"`)
		b.WriteString(` defaultValue="` + escapeAttr(v.DefaultValue) + `"`)
		b.WriteString(` alwaysStopAt="true" />`)
		b.WriteString("\n")
	}

	if len(tmpl.ContextOptions) == 0 {
		b.WriteString(indent + "  <context />\n")
	} else {
		b.WriteString(indent + "  <context>\n")
		for _, option := range tmpl.ContextOptions {
			b.WriteString(indent + `    <option name="` + escapeAttr(option) + `" value="true" />`)
			b.WriteString("\n")
		}
		b.WriteString(indent + "  </context>\n")
	}

	b.WriteString(indent + "</template>")
	return b.String()
}
