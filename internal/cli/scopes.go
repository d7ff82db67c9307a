package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/snipconv/internal/scope"
	"github.com/opencode-ai/snipconv/internal/tui"
)

var scopesPickInitial []string

func init() {
	rootCmd.AddCommand(scopesCmd)
	scopesCmd.AddCommand(scopesListCmd)
	scopesCmd.AddCommand(scopesPickCmd)

	scopesPickCmd.Flags().StringSliceVar(&scopesPickInitial, "initial", nil, "live template ids checked at start")
}

var scopesCmd = &cobra.Command{
	Use:   "scopes",
	Short: "Inspect and pick snippet scopes",
}

var scopesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known contexts and their snippet scopes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if IsJSONOutput() {
			return WriteOutput(cmd.OutOrStdout(), scope.Catalog)
		}
		return writeTable(cmd.OutOrStdout(), []string{"GROUP", "CONTEXT", "SCOPE", "LABEL"}, catalogRows())
	},
}

func catalogRows() [][]string {
	var rows [][]string
	for _, group := range scope.Catalog {
		rows = append(rows, []string{group.Label, group.LiveTemplateID, group.SnippetID, group.Label})
		for _, item := range group.Items {
			rows = append(rows, []string{group.Label, item.LiveTemplateID, item.SnippetID, item.Label})
		}
	}
	return rows
}

var scopesPickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Pick contexts interactively and print the scope",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if IsNonInteractive() {
			return &PreflightError{
				Message:  "scope picker requires an interactive terminal",
				Hint:     "Use 'snipconv scopes list' to see the available contexts",
				NextStep: "snipconv scopes list",
			}
		}

		result, err := tui.PickScopes(tui.Config{
			Theme:   currentConfig().UI.Theme,
			Initial: scopesPickInitial,
			Logger:  commandLogger("picker"),
		})
		if err != nil {
			return err
		}
		if !result.Confirmed {
			return errAborted
		}

		if IsJSONOutput() {
			return WriteOutput(cmd.OutOrStdout(), result)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "scope:   %s\n", result.SnippetScope)
		fmt.Fprintf(cmd.OutOrStdout(), "context: %s\n", strings.Join(result.ContextOptions, ","))
		return nil
	},
}
