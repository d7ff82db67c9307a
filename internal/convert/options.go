// Package convert translates between live templates (named variables) and
// tabstop snippets (positional placeholders).
package convert

import (
	"github.com/rs/zerolog"

	"github.com/opencode-ai/snipconv/internal/scope"
)

// DefaultLabels maps well known variable names to friendly placeholder
// labels. A variable only gets a label when it has a default value.
var DefaultLabels = map[string]string{
	"NAME":           "name",
	"PARAMS":         "params",
	"ARRAY":          "array",
	"ITEM":           "item",
	"CONDITION":      "condition",
	"EXPRESSION":     "expression",
	"METHOD_NAME":    "methodName",
	"COMPONENT_NAME": "componentName",
}

// XMLOptions controls snippet to template serialization.
type XMLOptions struct {
	IncludeWrapper bool
	GroupName      string
	SortByName     bool
	ContextCase    scope.ContextCase
}

type settings struct {
	logger zerolog.Logger
	labels map[string]string
}

// Option configures a conversion call.
type Option func(*settings)

// WithLogger sets the logger used for debug diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithLabels adds or overrides entries of DefaultLabels.
func WithLabels(labels map[string]string) Option {
	return func(s *settings) {
		for name, label := range labels {
			s.labels[name] = label
		}
	}
}

func newSettings(options []Option) *settings {
	s := &settings{
		logger: zerolog.Nop(),
		labels: make(map[string]string, len(DefaultLabels)),
	}
	for name, label := range DefaultLabels {
		s.labels[name] = label
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}
