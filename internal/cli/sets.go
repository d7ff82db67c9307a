package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/snipconv/internal/library"
)

func init() {
	rootCmd.AddCommand(setsCmd)
	setsCmd.AddCommand(setsListCmd)
	setsCmd.AddCommand(setsShowCmd)
}

var setsCmd = &cobra.Command{
	Use:   "sets",
	Short: "Browse named snippet and template sets",
	Long: `Sets are template (.xml) or snippet (.json, .code-snippets) files found in,
in order of precedence:

  <project>/.snipconv/sets
  ~/.config/snipconv/sets
  /usr/share/snipconv/sets
  the sets bundled with snipconv

A set found earlier shadows sets of the same name found later.`,
}

var setsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available sets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sets, err := library.LoadSetsFromSearchPaths(currentConfig().Library.ProjectDir)
		if err != nil {
			return err
		}

		if IsJSONOutput() {
			return WriteOutput(cmd.OutOrStdout(), sets)
		}
		return writeSetTable(cmd.OutOrStdout(), sets)
	},
}

func writeSetTable(out io.Writer, sets []*library.Set) error {
	rows := make([][]string, 0, len(sets))
	for _, set := range sets {
		rows = append(rows, []string{
			set.Name,
			formatName(set.Format),
			formatYesNo(set.Source == "builtin"),
			strings.Join(set.Tags, ","),
			truncateCell(set.Description, maxCellWidth),
		})
	}
	return writeTable(out, []string{"NAME", "FORMAT", "BUILTIN", "TAGS", "DESCRIPTION"}, rows)
}

// setDetail is the JSON shape of `sets show`.
type setDetail struct {
	*library.Set
	Content string `json:"content"`
}

var setsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print the contents of a set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := library.FindSet(currentConfig().Library.ProjectDir, args[0])
		if err != nil {
			if errors.Is(err, library.ErrSetNotFound) {
				return &PreflightError{
					Message:  err.Error(),
					Hint:     "List the available sets",
					NextStep: "snipconv sets list",
				}
			}
			return err
		}

		if IsJSONOutput() {
			return WriteOutput(cmd.OutOrStdout(), setDetail{Set: set, Content: set.Content})
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), set.Content)
		return err
	},
}
