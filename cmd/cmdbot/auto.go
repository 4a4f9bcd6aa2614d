package main

import (
	"github.com/aretw0/cmdbot/internal/cli"
	"github.com/spf13/cobra"
)

var autoCmd = &cobra.Command{
	Use:   "auto",
	Short: "Simulate the autonomous routine and print its trace",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, debug := globalFlags(cmd)
		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		_, err := cli.RunAutonomous(ctx, cli.AutoOptions{ConfigPath: path, Debug: debug}, cmd.OutOrStdout())
		return err
	},
}

func init() {
	rootCmd.AddCommand(autoCmd)
}
