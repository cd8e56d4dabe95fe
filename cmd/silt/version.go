package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/silt"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of silt",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("silt version %s\n", strings.TrimSpace(silt.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
