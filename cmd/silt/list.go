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
	listJSON   bool
	listLimit  int
	listOffset int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents in creation order",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		service := openService(true)

		docs, err := service.List(context.Background(), silt.ListOptions{
			Limit:  listLimit,
			Offset: listOffset,
		})
		if err != nil {
			fatal("Error listing documents", err)
		}

		if listJSON {
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
		fmt.Printf("(%d documents)\n", len(docs))
	},
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum number of documents (0 = all)")
	listCmd.Flags().IntVar(&listOffset, "offset", 0, "Number of documents to skip")
	rootCmd.AddCommand(listCmd)
}
