package scope

import (
	"fmt"
	"strings"
)

// ContextCase controls how scope tokens are written as context options.
type ContextCase string

const (
	// CasePreserve writes each token as it appears in the scope string.
	CasePreserve ContextCase = "preserve"
	// CaseUpper upper-cases each token.
	CaseUpper ContextCase = "upper"
)

// ParseContextCase validates a context case name; empty means CasePreserve.
func ParseContextCase(raw string) (ContextCase, error) {
	switch ContextCase(strings.ToLower(strings.TrimSpace(raw))) {
	case "", CasePreserve:
		return CasePreserve, nil
	case CaseUpper:
		return CaseUpper, nil
	default:
		return "", fmt.Errorf("unknown context case %q (want %s or %s)", raw, CasePreserve, CaseUpper)
	}
}

// Apply converts a single token according to the policy.
func (c ContextCase) Apply(token string) string {
	if c == CaseUpper {
		return strings.ToUpper(token)
	}
	return token
}

// ContextOptions splits a comma separated scope string into context option
// names. Tokens are trimmed and blank tokens skipped; duplicates are kept.
func ContextOptions(scope string, c ContextCase) []string {
	options := []string{}
	for _, token := range strings.Split(scope, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		options = append(options, c.Apply(token))
	}
	return options
}
