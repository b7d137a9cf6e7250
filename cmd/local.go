package cmd

import (
	"github.com/spf13/cobra"

	"github.com/phkaiser13/phgit/internal/status"
)

// localCmd passes every argument through to the local-dev worker
// unmodified, without any cobra-level flag parsing: the worker owns its
// own argument grammar entirely.
var localCmd = &cobra.Command{
	Use:                "local",
	Short:              "Local development cluster lifecycle",
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return finishStatus(status.INVALID_ARGS, "local requires a subcommand")
		}
		res := a.Worker.RunLocalDev(cmd.Context(), args)
		return finishWorker("local "+args[0]+" complete", res)
	},
}

func init() {
	rootCmd.AddCommand(localCmd)
}
