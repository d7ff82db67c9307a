package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/opencode-ai/snipconv/internal/config"
)

var initForce bool

// configDirFunc is replaced in tests.
var configDirFunc = defaultConfigDir

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		results := []initResult{createConfigFile()}

		if IsJSONOutput() {
			return WriteOutput(cmd.OutOrStdout(), results)
		}

		rows := make([][]string, 0, len(results))
		for _, r := range results {
			rows = append(rows, []string{r.name, r.status, r.message})
		}
		if err := writeTable(cmd.OutOrStdout(), []string{"STEP", "STATUS", "DETAIL"}, rows); err != nil {
			return err
		}

		for _, r := range results {
			if r.status == "failed" {
				return fmt.Errorf("init failed: %s", r.message)
			}
		}
		return nil
	},
}

type initResult struct {
	name    string
	status  string // done, skipped, failed
	message string
}

func (r initResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{
		"name":    r.name,
		"status":  r.status,
		"message": r.message,
	})
}

func defaultConfigDir() string {
	return config.DefaultConfigDir()
}

const configHeader = `# snipconv configuration file
#
# Values here are defaults for the command line flags. Environment variables
# override them: SNIPCONV_OUTPUT_SORT=true, SNIPCONV_TEMPLATE_SET_GROUP=Vue.
#
# Friendly tabstop labels per variable name can be added under "labels":
#
# labels:
#   NAME: name
#   PARAMS: params

`

func renderConfigTemplate() (string, error) {
	var buf bytes.Buffer
	buf.WriteString(configHeader)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(config.DefaultConfig()); err != nil {
		return "", fmt.Errorf("encode default config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode default config: %w", err)
	}
	return buf.String(), nil
}

func createConfigFile() initResult {
	result := initResult{name: "Config file"}

	dir := configDirFunc()
	if dir == "" {
		result.status = "failed"
		result.message = "cannot determine config directory"
		return result
	}
	path := filepath.Join(dir, "config.yaml")

	if _, err := os.Stat(path); err == nil && !initForce {
		result.status = "skipped"
		result.message = fmt.Sprintf("%s already exists (use --force to overwrite)", path)
		return result
	}

	content, err := renderConfigTemplate()
	if err != nil {
		result.status = "failed"
		result.message = err.Error()
		return result
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		result.status = "failed"
		result.message = fmt.Sprintf("create %s: %v", dir, err)
		return result
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		result.status = "failed"
		result.message = fmt.Sprintf("write %s: %v", path, err)
		return result
	}

	result.status = "done"
	result.message = path
	return result
}
