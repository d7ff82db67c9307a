package cli

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/opencode-ai/snipconv/internal/config"
	"github.com/opencode-ai/snipconv/internal/convert"
	"github.com/opencode-ai/snipconv/internal/detect"
	"github.com/opencode-ai/snipconv/internal/library"
	"github.com/opencode-ai/snipconv/internal/livetemplate"
	"github.com/opencode-ai/snipconv/internal/models"
	"github.com/opencode-ai/snipconv/internal/scope"
	"github.com/opencode-ai/snipconv/internal/vscode"
)

var (
	convertFrom        string
	convertBraces      bool
	convertSort        bool
	convertNoWrapper   bool
	convertGroup       string
	convertContextCase string
	convertOutput      string
	convertSet         string
)

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVar(&convertFrom, "from", "", "input format: xml or json (default: detect)")
	convertCmd.Flags().BoolVar(&convertBraces, "braces", false, "wrap JSON output in enclosing braces")
	convertCmd.Flags().BoolVar(&convertSort, "sort", false, "sort output entries by name")
	convertCmd.Flags().BoolVar(&convertNoWrapper, "no-wrapper", false, "omit the templateSet element from XML output")
	convertCmd.Flags().StringVar(&convertGroup, "group", "", "templateSet group name for XML output")
	convertCmd.Flags().StringVar(&convertContextCase, "context-case", "", "context option case for XML output: preserve or upper")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "write the result to a file")
	convertCmd.Flags().StringVar(&convertSet, "set", "", "convert a named set from the library")
}

var convertCmd = &cobra.Command{
	Use:   "convert [file|-]",
	Short: "Convert live templates to snippets or back",
	Long: `Convert reads live template XML or snippet JSON and writes the other format.

XML input produces a JSON snippet map; JSON input produces a live template set.`,
	Example: `  # Live templates to snippets
  snipconv convert templates.xml

  # Snippets to live templates, bare template elements
  snipconv convert snippets.code-snippets --no-wrapper

  # From stdin, sorted, with braces
  cat templates.xml | snipconv convert - --braces --sort

  # A bundled set
  snipconv convert --set vue`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := resolveConvertSettings(cmd, currentConfig())
		if err != nil {
			return err
		}

		text, source, format, err := loadConvertInput(cmd, args)
		if err != nil {
			return err
		}
		if convertFrom != "" {
			parsed, ok := models.ParseFormat(convertFrom)
			if !ok {
				return &PreflightError{
					Message:  fmt.Sprintf("unknown input format %q", convertFrom),
					Hint:     "Use --from xml or --from json",
					NextStep: "snipconv convert --from xml templates.xml",
				}
			}
			format = parsed
		}

		logger := commandLogger("convert")
		logger.Debug().Str("source", source).Str("format", string(format)).Msg("converting")

		result, err := convertText(text, format, settings, logger)
		if err != nil {
			return err
		}

		if err := writeResult(cmd.OutOrStdout(), convertOutput, result.Text); err != nil {
			return err
		}
		if convertOutput != "" {
			printSummary(cmd.ErrOrStderr(), true, "Converted %d %s to %s", result.Count, result.Noun, convertOutput)
		}
		return nil
	},
}

type convertSettings struct {
	IncludeBraces  bool
	Sort           bool
	IncludeWrapper bool
	Group          string
	ContextCase    scope.ContextCase
	Labels         map[string]string
}

type convertResult struct {
	Text  string
	Count int
	Noun  string
}

// resolveConvertSettings layers explicit flags over configuration.
func resolveConvertSettings(cmd *cobra.Command, cfg *config.Config) (convertSettings, error) {
	settings := convertSettings{
		IncludeBraces:  cfg.Output.IncludeBraces,
		Sort:           cfg.Output.Sort,
		IncludeWrapper: cfg.TemplateSet.IncludeWrapper,
		Group:          cfg.TemplateSet.Group,
		ContextCase:    cfg.ContextCase(),
		Labels:         cfg.Labels,
	}

	flags := cmd.Flags()
	if flags.Changed("braces") {
		settings.IncludeBraces = convertBraces
	}
	if flags.Changed("sort") {
		settings.Sort = convertSort
	}
	if flags.Changed("no-wrapper") {
		settings.IncludeWrapper = !convertNoWrapper
	}
	if flags.Changed("group") {
		settings.Group = convertGroup
	}
	if flags.Changed("context-case") {
		cc, err := scope.ParseContextCase(convertContextCase)
		if err != nil {
			return convertSettings{}, &PreflightError{
				Message:  err.Error(),
				Hint:     "Use --context-case preserve or --context-case upper",
				NextStep: "snipconv convert --context-case upper snippets.json",
			}
		}
		settings.ContextCase = cc
	}

	return settings, nil
}

func loadConvertInput(cmd *cobra.Command, args []string) (string, string, models.Format, error) {
	if convertSet != "" {
		if len(args) > 0 {
			return "", "", "", &PreflightError{
				Message:  "--set cannot be combined with an input file",
				Hint:     "Pass either a file or --set",
				NextStep: "snipconv convert --set " + convertSet,
			}
		}
		set, err := library.FindSet(currentConfig().Library.ProjectDir, convertSet)
		if err != nil {
			return "", "", "", &PreflightError{
				Message:  err.Error(),
				Hint:     "List the available sets",
				NextStep: "snipconv sets list",
			}
		}
		return set.Content, set.Source, set.Format, nil
	}

	text, source, err := readInput(cmd.InOrStdin(), args, "snipconv convert templates.xml")
	if err != nil {
		return "", "", "", err
	}
	return text, source, detect.Format(text), nil
}

// convertText converts text in the given format to the other format.
func convertText(text string, format models.Format, settings convertSettings, logger zerolog.Logger) (convertResult, error) {
	options := []convert.Option{
		convert.WithLogger(logger),
		convert.WithLabels(settings.Labels),
	}

	switch format {
	case models.FormatXML:
		templates, err := livetemplate.ParseTemplates(text)
		if err != nil {
			return convertResult{}, fmt.Errorf("failed to parse templates: %w", err)
		}
		set := convert.ToSnippets(templates, options...)
		out, err := vscode.FormatSnippets(set, vscode.Options{
			IncludeBraces: settings.IncludeBraces,
			Sort:          settings.Sort,
		})
		if err != nil {
			return convertResult{}, err
		}
		return convertResult{Text: out, Count: set.Len(), Noun: plural(set.Len(), "snippet")}, nil

	case models.FormatJSON:
		set, err := vscode.ParseSnippetSet(text)
		if err != nil {
			return convertResult{}, fmt.Errorf("failed to parse snippets: %w", err)
		}
		out := convert.ToTemplateXML(set, convert.XMLOptions{
			IncludeWrapper: settings.IncludeWrapper,
			GroupName:      settings.Group,
			SortByName:     settings.Sort,
			ContextCase:    settings.ContextCase,
		}, options...)
		return convertResult{Text: out, Count: set.Len(), Noun: plural(set.Len(), "template")}, nil

	default:
		return convertResult{}, fmt.Errorf("unsupported format %q", format)
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}

// formatName is the lower case label used in human output.
func formatName(format models.Format) string {
	return strings.ToLower(string(format))
}
