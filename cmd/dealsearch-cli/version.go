package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version and commit are set via -ldflags at build time; they default to
// "dev"/"none" for local builds.
var (
	version = "dev"
	commit  = "none"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the CLI version",
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonOutput {
				fmt.Printf(`{"version":%q,"commit":%q}`+"\n", version, commit)
				return nil
			}
			fmt.Printf("dealsearch-cli %s (%s)\n", version, commit)
			return nil
		},
	}
}
