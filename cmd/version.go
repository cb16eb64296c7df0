package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pulumi/schema-diff/version"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of schema-diff",
		Run: func(command *cobra.Command, args []string) {
			fmt.Fprintln(command.OutOrStdout(), version.Version)
		},
	}
}
