package cmd

import (
	"fmt"

	"github.com/josephlewis42/pipesh/core"
	"github.com/josephlewis42/pipesh/core/shell"
	"github.com/spf13/cobra"
)

var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the commands the shell runs without starting a program.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, kind := range shell.InternalKinds {
			if _, ok := core.AllBuiltins[kind]; !ok {
				continue
			}
			fmt.Fprintln(cmd.OutOrStdout(), "shell:"+kind.String())
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
