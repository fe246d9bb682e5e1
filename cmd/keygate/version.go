package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keygate-dev/keygate/internal/version"
)

// versionCmd implements the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of keygate",
	Run: func(_ *cobra.Command, _ []string) {
		info := version.Get()
		fmt.Printf("keygate version %s\n", info.Full())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
