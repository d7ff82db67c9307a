package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/snipconv/internal/detect"
)

func init() {
	rootCmd.AddCommand(detectCmd)
}

var detectCmd = &cobra.Command{
	Use:   "detect [file|-]",
	Short: "Print the format of the input (xml or json)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, source, err := readInput(cmd.InOrStdin(), args, "snipconv detect snippets.json")
		if err != nil {
			return err
		}

		format := detect.Format(text)
		if IsJSONOutput() {
			return WriteOutput(cmd.OutOrStdout(), map[string]string{
				"source": source,
				"format": string(format),
			})
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), formatName(format))
		return err
	},
}
