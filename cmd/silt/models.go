package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models [name]",
	Short: "List preprocessing models, or show one by name",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		service := openService(false)

		if len(args) == 1 {
			info, err := service.ModelInfo(args[0])
			if err != nil {
				fatal("Error retrieving model", err)
			}
			fmt.Printf("%s\n", info.Name)
			fmt.Printf("  strategies: %s\n", strings.Join(info.Strategies, " -> "))
			fmt.Printf("  %s\n", info.Description)
			return
		}

		for _, info := range service.Models() {
			fmt.Printf("%-18s %s\n", info.Name, strings.Join(info.Strategies, " -> "))
		}
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
