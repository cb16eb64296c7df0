package cmd

import (
	"fmt"
	"os"

	"github.com/pulumi/pulumi/sdk/v3/go/common/util/logging"
	"github.com/spf13/cobra"
)

func rootCmd() *cobra.Command {
	var verbose int
	var logToStderr bool

	command := &cobra.Command{
		Use:   "schema-diff",
		Short: "schema-diff compares two versions of a structural schema",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.InitLogging(logToStderr, verbose, false)
		},
		SilenceUsage: true,
	}

	command.PersistentFlags().IntVarP(&verbose, "verbose", "v", 0,
		"enable verbose logging (e.g., v=3); anything >3 is very verbose")
	command.PersistentFlags().BoolVar(&logToStderr, "logtostderr", false,
		"log to stderr instead of to files")

	command.AddCommand(compareCmd())
	command.AddCommand(statsCmd())
	command.AddCommand(versionCmd())

	return command
}

func Execute() {
	if err := rootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
