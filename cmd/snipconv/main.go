// Command snipconv converts live templates to tabstop snippets and back.
package main

import (
	"os"

	"github.com/opencode-ai/snipconv/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	cli.Version = version
	cli.Commit = commit

	if err := cli.Execute(); err != nil {
		cli.FormatError(os.Stderr, err)
		os.Exit(1)
	}
}
