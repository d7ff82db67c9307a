package placeholder

import "strings"

// TokenizeNamed splits a live template value into text and $NAME$ tokens.
// Only names accepted by known become KindNamed; for any other candidate the
// opening '$' stays text and scanning resumes at the closing '$', so in
// "a$b$NAME$" the NAME reference is still found.
func TokenizeNamed(s string, known func(name string) bool) []Token {
	var (
		tokens []Token
		text   strings.Builder
	)

	flush := func() {
		if text.Len() == 0 {
			return
		}
		tokens = append(tokens, Token{Kind: KindText, Text: text.String()})
		text.Reset()
	}

	for i := 0; i < len(s); {
		if s[i] != '$' {
			text.WriteByte(s[i])
			i++
			continue
		}
		name, ok := scanName(s[i:])
		if ok && known(name) {
			flush()
			tokens = append(tokens, Token{Kind: KindNamed, Name: name, Text: "$" + name + "$"})
			i += len(name) + 2
			continue
		}
		text.WriteByte('$')
		i++
	}
	flush()

	return tokens
}

// NamedRefs returns every $NAME$ reference in s in order of appearance.
// Adjacent references such as "$A$$B$" are both reported.
func NamedRefs(s string) []string {
	var refs []string
	for i := 0; i < len(s); {
		if s[i] != '$' {
			i++
			continue
		}
		name, ok := scanName(s[i:])
		if !ok {
			i++
			continue
		}
		refs = append(refs, name)
		i += len(name) + 2
	}
	return refs
}

// scanName reads "$IDENT$" at the start of s.
func scanName(s string) (string, bool) {
	end := 1
	for end < len(s) && IsNameByte(s[end]) {
		end++
	}
	if end == 1 || end >= len(s) || s[end] != '$' {
		return "", false
	}
	return s[1:end], true
}

// IsNameByte reports whether c may appear in a $NAME$ reference.
func IsNameByte(c byte) bool {
	return c == '_' || isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// SanitizeName maps an arbitrary label onto a valid variable name.
func SanitizeName(label string) string {
	var b strings.Builder
	for i := 0; i < len(label); i++ {
		c := label[i]
		if IsNameByte(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('_')
	}
	return b.String()
}
