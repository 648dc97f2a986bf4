// Command monty is the CLI front end to pkg/monty: run a script file or
// inline expression, start a REPL, or list the vendored type stubs.
package main

import (
	"fmt"
	"os"

	"github.com/mwildehahn/monty/cmd/monty/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
