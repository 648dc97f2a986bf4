package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/mwildehahn/monty/pkg/monty"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Monty session",
	Long: `Read expressions from standard input one at a time, evaluating each
as a standalone script and printing its result. Each line is an
independent run — there is no shared state across lines, matching the
evaluator's "one module per run" model (§6).`,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(_ *cobra.Command, _ []string) error {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Fprint(os.Stderr, ">>> ")
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			fmt.Fprint(os.Stderr, ">>> ")
			continue
		}
		m, err := monty.New(line, nil, "<repl>")
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			fmt.Fprint(os.Stderr, ">>> ")
			continue
		}
		result, err := m.Run(nil, monty.RunOptions{Limits: monty.DefaultConfig().Limits(), OS: realOSAccess()})
		if err != nil {
			if scriptErr, ok := err.(*monty.ScriptError); ok {
				fmt.Fprintln(os.Stderr, scriptErr.Exc.String())
			} else {
				fmt.Fprintf(os.Stderr, "%v\n", err)
			}
		} else if result != nil {
			fmt.Println(result)
		}
		fmt.Fprint(os.Stderr, ">>> ")
	}
	fmt.Fprintln(os.Stderr)
	return scanner.Err()
}
