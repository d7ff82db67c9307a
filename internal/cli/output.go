package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/opencode-ai/snipconv/internal/tui/styles"
)

// IsJSONOutput reports whether --json was given.
func IsJSONOutput() bool {
	return jsonOutput
}

// WriteOutput writes v as indented JSON.
func WriteOutput(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

// writeResult writes converted text to path, or to out when path is empty.
func writeResult(out io.Writer, path, text string) error {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if path == "" {
		_, err := io.WriteString(out, text)
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// printSummary writes a one line status message.
func printSummary(out io.Writer, ok bool, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	if noColor {
		fmt.Fprintln(out, message)
		return
	}
	styleSet := styles.BuildStyles(styles.ThemeByName(currentConfig().UI.Theme))
	if ok {
		fmt.Fprintln(out, styleSet.Success.Render(message))
		return
	}
	fmt.Fprintln(out, styleSet.Warning.Render(message))
}
