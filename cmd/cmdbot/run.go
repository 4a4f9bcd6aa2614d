package main

import (
	"github.com/aretw0/cmdbot/internal/cli"
	"github.com/aretw0/cmdbot/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulated robot in real time",
	Long: `Starts the control loop against simulated hardware. The HTTP dashboard and
Redis telemetry start when their addresses are configured. With --console an
interactive console presses board buttons and switches modes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, debug := globalFlags(cmd)
		console, _ := cmd.Flags().GetBool("console")
		mode, _ := cmd.Flags().GetString("mode")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		if !console {
			tui.PrintBanner(cmd.OutOrStdout())
		}
		return cli.RunSimulation(ctx, cli.RunOptions{
			ConfigPath: path,
			Debug:      debug,
			Console:    console,
			Mode:       mode,
			Out:        cmd.OutOrStdout(),
		})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("console", false, "Open the interactive operator console")
	runCmd.Flags().String("mode", "disabled", "Initial mode (disabled, autonomous, teleop, test)")
}
