package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/opencode-ai/snipconv/internal/livetemplate"
	"github.com/opencode-ai/snipconv/internal/scope"
)

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

// executeCommand runs the root command with isolated config and home
// directories.
func executeCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	resetFlags(rootCmd)
	appConfig = nil
	t.Cleanup(func() {
		resetFlags(rootCmd)
		appConfig = nil
	})

	var stdout, stderr bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

const sampleXML = `<templateSet group="x">
  <template name="clg" value="console.log($VALUE$);$END$" description="Log">
    <variable name="VALUE" expression="" defaultValue="&quot;value&quot;" />
    <context>
      <option name="JS_STATEMENT" value="true" />
    </context>
  </template>
</templateSet>`

func TestConvertXMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.xml")
	if err := os.WriteFile(path, []byte(sampleXML), 0644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	out, _, err := executeCommand(t, "", "convert", path)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	want := `  "clg": {
    "prefix": "clg",
    "body": [
      "console.log(${1:value});$0"
    ],
    "description": "Log",
    "scope": "javascript,JS_STATEMENT"
  }
`
	if out != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", out, want)
	}
}

func TestConvertXMLWithBraces(t *testing.T) {
	out, _, err := executeCommand(t, sampleXML, "convert", "-", "--braces")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if !strings.HasPrefix(out, "{\n  \"clg\": {") || !strings.HasSuffix(out, "\n}\n") {
		t.Fatalf("expected braces, got:\n%s", out)
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
}

func TestConvertJSONStdin(t *testing.T) {
	input := `{"Log": {"prefix": "clg", "body": ["console.log(${1:msg});"], "scope": "javascript"}}`

	out, _, err := executeCommand(t, input, "convert", "-", "--no-wrapper", "--context-case", "upper")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	want := `<template name="clg" value="console.log($msg$);" description="" toReformat="false" toShortenFQNames="true">
  <variable name="msg" expression="" defaultValue="msg" alwaysStopAt="true" />
  <context>
    <option name="JAVASCRIPT" value="true" />
  </context>
</template>
`
	if out != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", out, want)
	}
}

func TestConvertJSONDefaultsFromConfig(t *testing.T) {
	input := `"Log": {"prefix": "clg", "body": "x", "scope": "javascript"}`

	out, _, err := executeCommand(t, input, "convert", "-", "--group", "Mine")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if !strings.HasPrefix(out, `<templateSet group="Mine">`) {
		t.Fatalf("expected wrapper with group, got:\n%s", out)
	}
	if !strings.Contains(out, `<option name="javascript" value="true" />`) {
		t.Fatalf("expected preserved context case, got:\n%s", out)
	}
}

func TestConvertForcedFormat(t *testing.T) {
	_, _, err := executeCommand(t, sampleXML, "convert", "-", "--from", "json")
	if err == nil {
		t.Fatalf("expected JSON parse error for XML input")
	}

	_, _, err = executeCommand(t, sampleXML, "convert", "-", "--from", "yaml")
	var preflight *PreflightError
	if !errors.As(err, &preflight) {
		t.Fatalf("expected PreflightError, got %v", err)
	}
}

func TestConvertMalformedXML(t *testing.T) {
	_, _, err := executeCommand(t, `<template name="a"`, "convert", "-")
	if !errors.Is(err, livetemplate.ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
}

func TestConvertOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	out, stderr, err := executeCommand(t, sampleXML, "convert", "-", "--output", path, "--no-color")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if out != "" {
		t.Fatalf("expected no stdout, got %q", out)
	}
	if !strings.Contains(stderr, "Converted 1 snippet to "+path) {
		t.Fatalf("unexpected summary %q", stderr)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), `"prefix": "clg"`) {
		t.Fatalf("unexpected file content:\n%s", data)
	}
}

func TestConvertBuiltinSet(t *testing.T) {
	out, _, err := executeCommand(t, "", "convert", "--set", "vue", "--sort")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if !strings.HasPrefix(out, `<templateSet group="Custom">`) {
		t.Fatalf("expected template set, got:\n%s", out)
	}
	if !strings.Contains(out, `name="vcomputed"`) {
		t.Fatalf("expected vue snippets, got:\n%s", out)
	}
}

func TestConvertUnknownSet(t *testing.T) {
	_, _, err := executeCommand(t, "", "convert", "--set", "nope")
	var preflight *PreflightError
	if !errors.As(err, &preflight) {
		t.Fatalf("expected PreflightError, got %v", err)
	}
	if preflight.NextStep != "snipconv sets list" {
		t.Fatalf("unexpected next step %q", preflight.NextStep)
	}
}

func TestDetect(t *testing.T) {
	out, _, err := executeCommand(t, `"a": {"body": "x"}`, "detect", "-")
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if out != "json\n" {
		t.Fatalf("expected json, got %q", out)
	}

	out, _, err = executeCommand(t, sampleXML, "--json", "detect", "-")
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	var payload map[string]string
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload["format"] != "xml" || payload["source"] != "stdin" {
		t.Fatalf("unexpected payload %v", payload)
	}
}

func TestCreateFromStdin(t *testing.T) {
	source := "  const total = `${a} costs $5`;\n\n  return total;\n"

	out, _, err := executeCommand(t, source, "--non-interactive", "create", "--name", "Total", "--prefix", "tot", "--scope", "javascript")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	want := `  "Total": {
    "prefix": "tot",
    "body": [
      "const total = ` + "`" + `\\${a} costs \\$5` + "`" + `;",
      "return total;"
    ],
    "description": "",
    "scope": "javascript"
  }
`
	if out != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", out, want)
	}
}

func TestCreateEntryOnlyKeepIndent(t *testing.T) {
	source := "  if (ok) {\n    run();\n  }\n"

	out, _, err := executeCommand(t, source, "--non-interactive", "create", "--prefix", "iff", "--keep-indent", "--entry-only")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	want := `"prefix": "iff",
  "body": [
    "if (ok) {",
    "  run();",
    "}"
  ],
  "description": "",
  "scope": ""
`
	if out != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", out, want)
	}
}

func TestCreateEmptySource(t *testing.T) {
	out, stderr, err := executeCommand(t, "  \n", "--non-interactive", "--no-color", "create")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if out != "" {
		t.Fatalf("expected no output, got %q", out)
	}
	if !strings.Contains(stderr, "nothing to create") {
		t.Fatalf("expected empty notice, got %q", stderr)
	}
}

func TestCreatePickScopeNonInteractive(t *testing.T) {
	_, _, err := executeCommand(t, "x", "--non-interactive", "create", "--pick-scope")
	var preflight *PreflightError
	if !errors.As(err, &preflight) {
		t.Fatalf("expected PreflightError, got %v", err)
	}
}

func TestScopesList(t *testing.T) {
	out, _, err := executeCommand(t, "", "scopes", "list")
	if err != nil {
		t.Fatalf("scopes list: %v", err)
	}
	for _, want := range []string{"GROUP", "JS_EXPRESSION", "VUE_TEMPLATE_TAG", "typescript"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}

	out, _, err = executeCommand(t, "", "--json", "scopes", "list")
	if err != nil {
		t.Fatalf("scopes list --json: %v", err)
	}
	var groups []scope.Group
	if err := json.Unmarshal([]byte(out), &groups); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(groups) != len(scope.Catalog) {
		t.Fatalf("expected %d groups, got %d", len(scope.Catalog), len(groups))
	}
}

func TestScopesPickNonInteractive(t *testing.T) {
	_, _, err := executeCommand(t, "", "--non-interactive", "scopes", "pick")
	var preflight *PreflightError
	if !errors.As(err, &preflight) {
		t.Fatalf("expected PreflightError, got %v", err)
	}
}

func TestSetsListAndShow(t *testing.T) {
	out, _, err := executeCommand(t, "", "sets", "list")
	if err != nil {
		t.Fatalf("sets list: %v", err)
	}
	if !strings.Contains(out, "javascript") || !strings.Contains(out, "vue") {
		t.Fatalf("expected builtin sets in output:\n%s", out)
	}

	out, _, err = executeCommand(t, "", "sets", "show", "javascript")
	if err != nil {
		t.Fatalf("sets show: %v", err)
	}
	if !strings.HasPrefix(out, "<templateSet") {
		t.Fatalf("expected set content, got:\n%s", out)
	}

	out, _, err = executeCommand(t, "", "--json", "sets", "show", "vue")
	if err != nil {
		t.Fatalf("sets show --json: %v", err)
	}
	var detail map[string]any
	if err := json.Unmarshal([]byte(out), &detail); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if detail["name"] != "vue" || detail["format"] != "json" || detail["content"] == "" {
		t.Fatalf("unexpected detail %v", detail)
	}
}

func TestSetsShowMissing(t *testing.T) {
	_, _, err := executeCommand(t, "", "sets", "show", "missing")
	var preflight *PreflightError
	if !errors.As(err, &preflight) {
		t.Fatalf("expected PreflightError, got %v", err)
	}
}

func TestVersion(t *testing.T) {
	out, _, err := executeCommand(t, "", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "snipconv "+Version) {
		t.Fatalf("unexpected version output %q", out)
	}
}

func TestInvalidConfigFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("log:\n  format: xml\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, _, err := executeCommand(t, "", "--config", path, "version"); err == nil {
		t.Fatalf("expected config error")
	}
}

func TestFormatError(t *testing.T) {
	var buf bytes.Buffer
	FormatError(&buf, &PreflightError{Message: "no input given", Hint: "pipe something", NextStep: "snipconv convert a.xml"})

	want := "Error: no input given\nHint: pipe something\nTry: snipconv convert a.xml\n"
	if buf.String() != want {
		t.Fatalf("unexpected output %q", buf.String())
	}

	buf.Reset()
	FormatError(&buf, errors.New("boom"))
	if buf.String() != "Error: boom\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
