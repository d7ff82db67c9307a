// Package placeholder implements the placeholder grammar shared by both
// snippet dialects: positional tabstops ($1, ${1}, ${1:label}, ${1|a,b|})
// and named variables ($NAME$).
package placeholder

// Kind identifies the syntactic form of a token.
type Kind int

const (
	KindText    Kind = iota // literal text between placeholders
	KindTabstop             // $1 or ${1}
	KindLabeled             // ${1:label}
	KindChoice              // ${1|a,b|}
	KindEnd                 // any tabstop form with index 0
	KindNamed               // $NAME$
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindTabstop:
		return "tabstop"
	case KindLabeled:
		return "labeled"
	case KindChoice:
		return "choice"
	case KindEnd:
		return "end"
	case KindNamed:
		return "named"
	default:
		return "unknown"
	}
}

// Token is a single unit produced by Tokenize or TokenizeNamed.
type Token struct {
	Kind    Kind
	Index   int      // tabstop index; 0 for KindEnd
	Label   string   // set for KindLabeled
	Choices []string // set for KindChoice
	Name    string   // set for KindNamed
	Text    string   // literal text for KindText, raw source otherwise
}

// IsPlaceholder reports whether the token is anything other than text.
func (t Token) IsPlaceholder() bool {
	return t.Kind != KindText
}

const (
	// EndMarker is the named dialect's final cursor position.
	EndMarker = "END"
	// SelectionMarker is the named dialect's selected text variable.
	SelectionMarker = "SELECTION"

	// TabstopEnd is the tabstop dialect's final cursor position.
	TabstopEnd = "$0"
	// TabstopSelection is the tabstop dialect's selected text variable.
	TabstopSelection = "${TM_SELECTED_TEXT}"
)
