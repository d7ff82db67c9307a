package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/snipconv/internal/tui"
	"github.com/opencode-ai/snipconv/internal/vscode"
)

var (
	createSource      string
	createName        string
	createPrefix      string
	createDescription string
	createScope       string
	createPickScope   bool
	createOutput      string
	createKeepIndent  bool
	createEntryOnly   bool
)

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().StringVarP(&createSource, "source", "s", "-", "source code file, or - for stdin")
	createCmd.Flags().StringVar(&createName, "name", "", "snippet name")
	createCmd.Flags().StringVar(&createPrefix, "prefix", "", "snippet trigger prefix")
	createCmd.Flags().StringVar(&createDescription, "description", "", "snippet description")
	createCmd.Flags().StringVar(&createScope, "scope", "", "comma separated snippet scope")
	createCmd.Flags().BoolVar(&createPickScope, "pick-scope", false, "choose the scope interactively")
	createCmd.Flags().StringVarP(&createOutput, "output", "o", "", "write the snippet to a file")
	createCmd.Flags().BoolVar(&createKeepIndent, "keep-indent", false, "keep indentation relative to the first line")
	createCmd.Flags().BoolVar(&createEntryOnly, "entry-only", false, "print only the snippet fields, without the name")
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a snippet from source code",
	Long: `Create turns a block of source code into a JSON snippet. Indentation is
removed, blank lines are dropped, and literal dollar signs are escaped.`,
	Example: `  # From a file, prompting for name and prefix
  snipconv create --source component.vue

  # Fully specified, from stdin
  pbpaste | snipconv create --name "Log" --prefix clg --scope javascript

  # Keep nested indentation
  snipconv create --source block.js --keep-indent --name Block --prefix blk`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := readSnippetSource(cmd)
		if err != nil {
			return err
		}

		input := vscode.SnippetInput{
			Name:        createName,
			Prefix:      createPrefix,
			Description: createDescription,
			Scope:       createScope,
			SourceCode:  source,
			KeepIndent:  createKeepIndent,
		}
		if err := completeSnippetInput(&input); err != nil {
			return err
		}

		set := vscode.GenerateSnippet(input)
		if set.Len() == 0 {
			printSummary(cmd.ErrOrStderr(), false, "Source is empty, nothing to create")
			return nil
		}

		var out string
		if createEntryOnly {
			out, err = vscode.FormatSnippetJSON(set.Entries()[0].Snippet)
		} else {
			out, err = vscode.FormatSnippets(set, vscode.Options{IncludeBraces: currentConfig().Output.IncludeBraces})
		}
		if err != nil {
			return err
		}
		return writeResult(cmd.OutOrStdout(), createOutput, out)
	},
}

// readSnippetSource reads --source. Stdin attached to a terminal is
// replaced by a multi-line prompt.
func readSnippetSource(cmd *cobra.Command) (string, error) {
	if createSource == stdinArg && stdinIsTerminal() {
		if IsNonInteractive() {
			return "", &PreflightError{
				Message:  "no source code given",
				Hint:     "Pass --source FILE or pipe the code on stdin",
				NextStep: "snipconv create --source file.js",
			}
		}
		return newPrompter().Multiline("Source code", "Paste the code to turn into a snippet")
	}

	source, _, err := readInput(cmd.InOrStdin(), []string{createSource}, "snipconv create --source file.js")
	return source, err
}

// completeSnippetInput fills missing fields from prompts and the scope
// picker when the session is interactive.
func completeSnippetInput(input *vscode.SnippetInput) error {
	if IsNonInteractive() {
		if createPickScope {
			return &PreflightError{
				Message:  "--pick-scope requires an interactive terminal",
				Hint:     "Pass --scope instead",
				NextStep: "snipconv create --scope javascript",
			}
		}
		return nil
	}

	p := newPrompter()
	if strings.TrimSpace(input.Name) == "" {
		name, err := p.Input("Snippet name", "Key of the snippet in the snippets file", vscode.DefaultName)
		if err != nil {
			return err
		}
		input.Name = name
	}
	if strings.TrimSpace(input.Prefix) == "" {
		prefix, err := p.Input("Prefix", "Text that triggers the snippet", vscode.DefaultPrefix)
		if err != nil {
			return err
		}
		input.Prefix = prefix
	}

	if createPickScope {
		result, err := tui.PickScopes(tui.Config{
			Theme:  currentConfig().UI.Theme,
			Logger: commandLogger("picker"),
		})
		if err != nil {
			return err
		}
		if !result.Confirmed {
			return errAborted
		}
		input.Scope = result.SnippetScope
	}
	return nil
}
