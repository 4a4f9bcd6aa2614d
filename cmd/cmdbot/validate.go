package main

import (
	"fmt"

	"github.com/aretw0/cmdbot/internal/cli"
	"github.com/aretw0/cmdbot/internal/config"
	"github.com/aretw0/cmdbot/internal/logging"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the config, the bindings and the autonomous routine",
	Long: `Loads the config, builds every binding once and builds the autonomous routine.
Port, button and constant errors are reported without starting the robot.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := globalFlags(cmd)
		cfg, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		rig, err := cli.NewRig(cfg, logging.NewNop(), nil)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		if _, err := rig.Container.Autonomous(); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Config is valid! %d bindings, %d hazards\n",
			len(rig.Container.Bindings()), len(rig.Container.Hazards()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
