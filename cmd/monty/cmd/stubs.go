package cmd

import (
	"fmt"

	"github.com/maruel/natural"
	"github.com/mwildehahn/monty/stubs"
	"github.com/spf13/cobra"
)

var stubsCmd = &cobra.Command{
	Use:   "stubs",
	Short: "List the vendored type stub files",
	Long: `List the vendored .pyi stub files the static checker uses (§6),
in natural sort order so a mix of plain names and numbered variants
reads the way a human expects rather than plain lexical order.`,
	Run: func(cmd *cobra.Command, args []string) {
		names := append([]string(nil), stubs.Names()...)
		natural.Sort(names)
		for _, n := range names {
			fmt.Println(n)
		}
	},
}

func init() {
	rootCmd.AddCommand(stubsCmd)
}
