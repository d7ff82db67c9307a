package placeholder

import "strings"

var (
	entityDecoder = strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
	)

	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"'", "&apos;",
		`"`, "&quot;",
	)

	labelEscaper = strings.NewReplacer(
		`\`, `\\`,
		"$", `\$`,
		"}", `\}`,
	)
)

// DecodeEntities decodes the five standard XML entities in a single pass.
func DecodeEntities(s string) string {
	return entityDecoder.Replace(s)
}

// EscapeXMLAttr escapes s for use inside a double quoted XML attribute.
func EscapeXMLAttr(s string) string {
	return attrEscaper.Replace(s)
}

// EscapeLabel escapes the characters that would terminate or nest inside a
// ${n:label} placeholder.
func EscapeLabel(s string) string {
	return labelEscaper.Replace(s)
}

// Piece is a run of tabstop dialect output. Raw pieces are emitted as is;
// the rest are escaped by JoinEscaped.
type Piece struct {
	Text string
	Raw  bool
}

// JoinEscaped concatenates pieces, escaping every non-raw piece so literal
// text is not read back as tabstop syntax:
//   - a lone backslash is doubled, a backslash pair is kept;
//   - inside a backtick pair "${" becomes "\${";
//   - a '$' not followed by a digit or '{' becomes "\$".
//
// Backticks are paired left to right across all text pieces; a trailing
// unpaired backtick opens no span.
func JoinEscaped(pieces []Piece) string {
	total := 0
	for _, piece := range pieces {
		if !piece.Raw {
			total += strings.Count(piece.Text, "`")
		}
	}

	var (
		out     strings.Builder
		seen    int
		inQuote bool
	)
	for _, piece := range pieces {
		if piece.Raw {
			out.WriteString(piece.Text)
			continue
		}
		s := piece.Text
		for i := 0; i < len(s); i++ {
			c := s[i]
			switch c {
			case '\\':
				if i+1 < len(s) && s[i+1] == '\\' {
					out.WriteString(`\\`)
					i++
					continue
				}
				out.WriteString(`\\`)

			case '`':
				seen++
				if inQuote {
					inQuote = false
				} else if seen < total {
					inQuote = true
				}
				out.WriteByte(c)

			case '$':
				var next byte
				if i+1 < len(s) {
					next = s[i+1]
				}
				switch {
				case next == '{' && inQuote:
					out.WriteString(`\$`)
				case next == '{' || isDigit(next):
					out.WriteByte(c)
				default:
					out.WriteString(`\$`)
				}

			default:
				out.WriteByte(c)
			}
		}
	}
	return out.String()
}

// EscapeSourceLine escapes one line of raw source code for a snippet body.
// Backticks toggle a template literal state: inside it "${" is escaped,
// outside it '$' survives only before '{' or a digit. Backslashes are
// always doubled.
func EscapeSourceLine(line string) string {
	var (
		out     strings.Builder
		inQuote bool
	)
	for i := 0; i < len(line); i++ {
		c := line[i]
		var next byte
		if i+1 < len(line) {
			next = line[i+1]
		}

		switch {
		case c == '`':
			inQuote = !inQuote
			out.WriteByte(c)
		case c == '$' && inQuote && next == '{':
			out.WriteString(`\$`)
		case c == '$' && !inQuote && (next == '{' || isDigit(next)):
			out.WriteByte(c)
		case c == '$':
			out.WriteString(`\$`)
		case c == '\\':
			out.WriteString(`\\`)
		default:
			out.WriteByte(c)
		}
	}
	return out.String()
}
