package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a document by ID",
	Long: `Delete a document by ID. Deleting an unknown ID is a no-op, so the
command is safe to re-run.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		service := openService(true)

		if err := service.Delete(context.Background(), args[0]); err != nil {
			fatal("Error deleting document", err)
		}

		fmt.Printf("Deleted %s\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
