package vscode

import (
	"errors"
	"fmt"
)

// ErrInvalidSnippet reports snippet JSON that cannot be turned into snippets.
var ErrInvalidSnippet = errors.New("invalid snippet")

// SnippetError describes a malformed snippet map or entry. Key and Field are
// empty when the problem is with the document itself.
type SnippetError struct {
	Key     string
	Field   string
	Message string
}

func (e *SnippetError) Error() string {
	switch {
	case e.Key != "" && e.Field != "":
		return fmt.Sprintf("invalid snippet %q: %s: %s", e.Key, e.Field, e.Message)
	case e.Key != "":
		return fmt.Sprintf("invalid snippet %q: %s", e.Key, e.Message)
	default:
		return "invalid snippet JSON: " + e.Message
	}
}

// Is matches ErrInvalidSnippet.
func (e *SnippetError) Is(target error) bool {
	return target == ErrInvalidSnippet
}
