package placeholder

import (
	"regexp"
	"strings"
)

var enumPattern = regexp.MustCompile(`enum\((.*)\)`)

// ParseEnum extracts the choices of an enum(...) expression. Values are
// trimmed, stripped of double quotes, and empty results dropped. Expressions
// that are not enums yield an empty slice.
func ParseEnum(expression string) []string {
	values := []string{}
	if expression == "" {
		return values
	}

	match := enumPattern.FindStringSubmatch(expression)
	if match == nil {
		return values
	}

	for _, part := range strings.Split(match[1], ",") {
		part = strings.ReplaceAll(strings.TrimSpace(part), `"`, "")
		if part == "" {
			continue
		}
		values = append(values, part)
	}
	return values
}

// FormatEnum builds an enum(...) expression with each value quoted. The
// values are normalized the same way ParseEnum normalizes them, so
// ParseEnum(FormatEnum(v)) is stable after one pass.
func FormatEnum(values []string) string {
	quoted := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.ReplaceAll(strings.TrimSpace(value), `"`, "")
		if value == "" {
			continue
		}
		quoted = append(quoted, `"`+value+`"`)
	}
	return "enum(" + strings.Join(quoted, ",") + ")"
}
