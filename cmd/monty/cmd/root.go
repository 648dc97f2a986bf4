package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "monty",
	Short: "Monty interpreter for a safe, deterministic Python subset",
	Long: `Monty is an embedded, sandboxed interpreter for a safe subset of
Python. A host hands Monty a source string and a set of named input
values; Monty parses, evaluates, and returns the value of the script's
final expression.

This CLI drives the same pkg/monty embedding API a Go host would link
directly: run a script file or inline expression, start a REPL, or list
the vendored type stubs the static checker uses.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
