package placeholder

import (
	"strconv"
	"strings"
)

// Tokenize splits one line of tabstop syntax into text and placeholder
// tokens. A backslash escapes the following character, so `\$1` is text.
// Index 0 always yields KindEnd regardless of the form that carries it.
func Tokenize(s string) []Token {
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
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			text.WriteString(s[i : i+2])
			i += 2
			continue
		}
		if c == '$' {
			if tok, n, ok := scanTabstop(s[i:]); ok {
				flush()
				tokens = append(tokens, tok)
				i += n
				continue
			}
		}
		text.WriteByte(c)
		i++
	}
	flush()

	return tokens
}

// scanTabstop parses a placeholder at the start of s, which begins with '$'.
// It returns the token and the number of bytes consumed.
func scanTabstop(s string) (Token, int, bool) {
	if len(s) < 2 {
		return Token{}, 0, false
	}

	if isDigit(s[1]) {
		end := scanDigits(s, 1)
		index, err := strconv.Atoi(s[1:end])
		if err != nil {
			return Token{}, 0, false
		}
		return indexed(KindTabstop, index, s[:end]), end, true
	}

	if s[1] != '{' || len(s) < 3 || !isDigit(s[2]) {
		return Token{}, 0, false
	}
	end := scanDigits(s, 2)
	index, err := strconv.Atoi(s[2:end])
	if err != nil || end >= len(s) {
		return Token{}, 0, false
	}

	switch s[end] {
	case '}':
		return indexed(KindTabstop, index, s[:end+1]), end + 1, true

	case ':':
		label, n, ok := scanUntil(s[end+1:], "}")
		if !ok || label == "" {
			return Token{}, 0, false
		}
		consumed := end + 1 + n
		tok := indexed(KindLabeled, index, s[:consumed])
		if tok.Kind == KindLabeled {
			tok.Label = label
		}
		return tok, consumed, true

	case '|':
		body, n, ok := scanUntil(s[end+1:], "|}")
		if !ok {
			return Token{}, 0, false
		}
		choices := splitChoices(body)
		if len(choices) == 0 {
			return Token{}, 0, false
		}
		consumed := end + 1 + n
		tok := indexed(KindChoice, index, s[:consumed])
		if tok.Kind == KindChoice {
			tok.Choices = choices
		}
		return tok, consumed, true
	}

	return Token{}, 0, false
}

func indexed(kind Kind, index int, raw string) Token {
	if index == 0 {
		return Token{Kind: KindEnd, Text: raw}
	}
	return Token{Kind: kind, Index: index, Text: raw}
}

// scanUntil reads s up to the terminator, honouring backslash escapes, and
// returns the unescaped content plus the bytes consumed including the
// terminator.
func scanUntil(s, terminator string) (string, int, bool) {
	var out strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			out.WriteByte(s[i+1])
			i++
			continue
		}
		if strings.HasPrefix(s[i:], terminator) {
			return out.String(), i + len(terminator), true
		}
		out.WriteByte(s[i])
	}
	return "", 0, false
}

func splitChoices(body string) []string {
	parts := strings.Split(body, ",")
	choices := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		choices = append(choices, part)
	}
	return choices
}

func scanDigits(s string, from int) int {
	i := from
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return i
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Count returns the number of placeholder tokens in the given lines.
func Count(lines []string) int {
	total := 0
	for _, line := range lines {
		for _, tok := range Tokenize(line) {
			if tok.IsPlaceholder() {
				total++
			}
		}
	}
	return total
}
