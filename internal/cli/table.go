package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode/utf8"
)

const (
	tablePadding = 2
	// maxCellWidth bounds free text columns such as descriptions.
	maxCellWidth = 48
)

// writeTable prints headers and rows as aligned columns. Tabs and newlines
// inside cells are flattened to spaces so they cannot break alignment.
func writeTable(out io.Writer, headers []string, rows [][]string) error {
	w := tabwriter.NewWriter(out, 0, 0, tablePadding, ' ', 0)
	if len(headers) > 0 {
		fmt.Fprintln(w, joinCells(headers))
	}
	for _, row := range rows {
		fmt.Fprintln(w, joinCells(row))
	}
	return w.Flush()
}

func joinCells(cells []string) string {
	clean := make([]string, len(cells))
	for i, cell := range cells {
		clean[i] = strings.NewReplacer("\t", " ", "\n", " ", "\r", "").Replace(cell)
	}
	return strings.Join(clean, "\t")
}

func truncateCell(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

func formatYesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
