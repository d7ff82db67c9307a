// Package livetemplate reads and writes the XML live template dialect
// (templateSet, template, variable, context, option).
package livetemplate

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/ianaindex"

	"github.com/opencode-ai/snipconv/internal/models"
	"github.com/opencode-ai/snipconv/internal/placeholder"
)

const (
	elemTemplateSet = "templateSet"
	elemTemplate    = "template"
	elemVariable    = "variable"
	elemContext     = "context"
	elemOption      = "option"
)

// element is a minimal DOM node; only element structure and attributes
// matter for live templates.
type element struct {
	name     string
	attrs    map[string]string
	children []*element
}

func (e *element) attr(name string) string {
	return e.attrs[name]
}

// descendants returns every descendant named name in document order.
func (e *element) descendants(name string) []*element {
	var found []*element
	var walk func(*element)
	walk = func(node *element) {
		for _, child := range node.children {
			if child.name == name {
				found = append(found, child)
			}
			walk(child)
		}
	}
	walk(e)
	return found
}

// ParseTemplates parses template XML into Template records in document
// order. Input without a templateSet root (a bare run of template elements)
// is wrapped before parsing. Malformed XML yields a *FormatError and no
// templates.
func ParseTemplates(text string) ([]models.Template, error) {
	roots, err := parseTree(wrapDocument(text))
	if err != nil {
		return nil, err
	}

	doc := &element{children: roots}
	nodes := doc.descendants(elemTemplate)

	templates := make([]models.Template, 0, len(nodes))
	for _, node := range nodes {
		templates = append(templates, buildTemplate(node))
	}
	return templates, nil
}

func wrapDocument(text string) string {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "<?xml") || strings.HasPrefix(trimmed, "<"+elemTemplateSet) {
		return text
	}
	return "<" + elemTemplateSet + ">" + text + "</" + elemTemplateSet + ">"
}

func buildTemplate(node *element) models.Template {
	tmpl := models.Template{
		Name:           node.attr("name"),
		Value:          node.attr("value"),
		Description:    node.attr("description"),
		Variables:      []models.Variable{},
		ContextOptions: []string{},
	}

	for _, v := range node.descendants(elemVariable) {
		expression := v.attr("expression")
		tmpl.Variables = append(tmpl.Variables, models.Variable{
			Name:         v.attr("name"),
			Expression:   expression,
			DefaultValue: v.attr("defaultValue"),
			EnumValues:   placeholder.ParseEnum(expression),
		})
	}

	if contexts := node.descendants(elemContext); len(contexts) > 0 {
		for _, option := range contexts[0].descendants(elemOption) {
			tmpl.ContextOptions = append(tmpl.ContextOptions, option.attr("name"))
		}
	}

	return tmpl
}

func parseTree(doc string) ([]*element, error) {
	dec := xml.NewDecoder(strings.NewReader(doc))
	dec.CharsetReader = charsetReader

	var (
		roots []*element
		stack []*element
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, formatError(dec, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			node := &element{name: t.Name.Local, attrs: make(map[string]string, len(t.Attr))}
			for _, attr := range t.Attr {
				node.attrs[attr.Name.Local] = attr.Value
			}
			if len(stack) == 0 {
				roots = append(roots, node)
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, node)
			}
			stack = append(stack, node)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	return roots, nil
}

func formatError(dec *xml.Decoder, err error) error {
	var syntax *xml.SyntaxError
	if errors.As(err, &syntax) {
		return &FormatError{Line: syntax.Line, Err: errors.New(syntax.Msg)}
	}
	line, _ := dec.InputPos()
	return &FormatError{Line: line, Err: err}
}

// charsetReader decodes documents that declare a non UTF-8 encoding.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", label, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}
