package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
)

const stdinArg = "-"

// readInput reads the named file, or stdin for "-". With no argument it
// falls back to stdin when stdin is not a terminal.
func readInput(in io.Reader, args []string, example string) (string, string, error) {
	path := ""
	if len(args) > 0 {
		path = strings.TrimSpace(args[0])
	}

	if path == "" {
		if stdinIsTerminal() {
			return "", "", &PreflightError{
				Message:  "no input given",
				Hint:     "Pass a file path, pipe text on stdin, or use --set",
				NextStep: example,
			}
		}
		path = stdinArg
	}

	if path == stdinArg {
		data, err := io.ReadAll(in)
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), "stdin", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", "", &PreflightError{
				Message:  fmt.Sprintf("input file %s does not exist", path),
				Hint:     "Check the path or pass - to read stdin",
				NextStep: example,
			}
		}
		return "", "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), path, nil
}
