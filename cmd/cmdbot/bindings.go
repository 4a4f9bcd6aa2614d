package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/cmdbot/internal/cli"
	"github.com/aretw0/cmdbot/internal/config"
	"github.com/aretw0/cmdbot/internal/logging"
	"github.com/aretw0/cmdbot/internal/presentation/graph"
	"github.com/aretw0/cmdbot/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var bindingsCmd = &cobra.Command{
	Use:   "bindings",
	Short: "Print the binding table and its hazards",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := globalFlags(cmd)
		asJSON, _ := cmd.Flags().GetBool("json")
		asMermaid, _ := cmd.Flags().GetBool("mermaid")

		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		rig, err := cli.NewRig(cfg, logging.NewNop(), nil)
		if err != nil {
			return err
		}

		bindings, hazards := rig.Container.Bindings(), rig.Container.Hazards()
		if asMermaid {
			_, err := fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(bindings, nil))
			return err
		}
		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{"bindings": bindings, "hazards": hazards})
		}
		return tui.WriteMarkdown(cmd.OutOrStdout(), tui.BindingsMarkdown(bindings, hazards))
	},
}

func init() {
	rootCmd.AddCommand(bindingsCmd)

	bindingsCmd.Flags().Bool("json", false, "Print JSON instead of a table")
	bindingsCmd.Flags().Bool("mermaid", false, "Print a Mermaid flowchart instead of a table")
}
