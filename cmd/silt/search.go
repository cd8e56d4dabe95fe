package main

import (
	"context"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/aretw0/silt"
)

var (
	searchTags []string
	searchJSON bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Find documents carrying every given tag",
	Long: `Find documents whose tags include every --tag given (AND semantics).
Without any --tag, all documents are returned.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		service := openService(true)

		docs, err := service.Search(context.Background(), silt.SearchQuery{Tags: searchTags})
		if err != nil {
			fatal("Error searching documents", err)
		}

		if searchJSON {
			data, err := sonic.MarshalIndent(docs, "", "  ")
			if err != nil {
				fatal("Error encoding documents", err)
			}
			os.Stdout.Write(data)
			fmt.Println()
			return
		}

		for _, doc := range docs {
			fmt.Printf("%s  %s  %v\n", doc.ID, doc.Title, doc.Tags)
		}
		fmt.Printf("(%d matches)\n", len(docs))
	},
}

func init() {
	searchCmd.Flags().StringArrayVar(&searchTags, "tag", nil, "Tag that must be present (repeatable)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(searchCmd)
}
