package cmd

import (
	"github.com/josephlewis42/pipesh/core"
	"github.com/spf13/cobra"
)

// stageCmd runs one pipeline stage. The interpreter re-executes itself with
// this command for every stage because the stage has to rebind its standard
// streams before it replaces itself with the stage's program.
var stageCmd = &cobra.Command{
	Use:                core.StageCommand + " [flags] -- SEGMENT",
	Short:              "Run a single pipeline stage (internal use only)",
	Hidden:             true,
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		if status := core.StageMain(args); status != 0 {
			return &ExitError{Code: status}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stageCmd)
}
