package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// PreflightError is a user facing error with a hint and a suggested next
// command.
type PreflightError struct {
	Message  string
	Hint     string
	NextStep string
}

func (e *PreflightError) Error() string {
	return e.Message
}

// FormatError renders err for the terminal, including hints for
// preflight errors.
func FormatError(w io.Writer, err error) {
	var preflight *PreflightError
	if !errors.As(err, &preflight) {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Error: %s\n", preflight.Message)
	if preflight.Hint != "" {
		fmt.Fprintf(&b, "Hint: %s\n", preflight.Hint)
	}
	if preflight.NextStep != "" {
		fmt.Fprintf(&b, "Try: %s\n", preflight.NextStep)
	}
	fmt.Fprint(w, b.String())
}
