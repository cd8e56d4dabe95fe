package main

import (
	"context"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
)

var getJSON bool

var getCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Retrieve a document by ID",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		service := openService(true)

		doc, err := service.Get(context.Background(), args[0])
		if err != nil {
			fatal("Error retrieving document", err)
		}

		if getJSON {
			data, err := sonic.MarshalIndent(doc, "", "  ")
			if err != nil {
				fatal("Error encoding document", err)
			}
			os.Stdout.Write(data)
			fmt.Println()
			return
		}

		fmt.Printf("ID:      %s\n", doc.ID)
		fmt.Printf("Title:   %s\n", doc.Title)
		if len(doc.Tags) > 0 {
			fmt.Printf("Tags:    %v\n", doc.Tags)
		}
		fmt.Printf("Created: %s\n", doc.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Printf("Updated: %s\n", doc.UpdatedAt.Format("2006-01-02 15:04:05"))
		fmt.Println("---")
		if doc.ProcessedContent != "" {
			fmt.Println(doc.ProcessedContent)
		} else {
			fmt.Println(doc.Content)
		}
	},
}

func init() {
	getCmd.Flags().BoolVar(&getJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(getCmd)
}
