package main

import (
	"fmt"

	"github.com/aretw0/cmdbot"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of cmdbot",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "cmdbot version %s\n", cmdbot.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
