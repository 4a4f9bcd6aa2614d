package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cmdbot",
	Short: "cmdbot runs a command-based robot in simulation",
	Long: `cmdbot wires operator controls to robot commands through a binding table,
runs them on a periodic command scheduler and simulates the autonomous routine.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("config", "c", "cmdbot.yaml", "Config file (.yaml or .hcl)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}

func globalFlags(cmd *cobra.Command) (string, bool) {
	path, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")
	return path, debug
}
