package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/silt"
)

var (
	saveID      string
	saveTitle   string
	saveContent string
	saveTags    []string
	saveMeta    []string
	saveModel   string
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save a document to the store",
	Long: `Save a document to the store. Content comes from --content, or from
stdin when the flag is omitted. Pass --model to run a preprocessing
pipeline over the content (see 'silt models').`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		content := saveContent
		if content == "" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				fatal("Error reading stdin", err)
			}
			content = string(data)
		}

		metadata := make(silt.Metadata, len(saveMeta))
		for _, pair := range saveMeta {
			k, v, ok := strings.Cut(pair, "=")
			if !ok {
				fatal("Invalid metadata", fmt.Errorf("expected key=value, got %q", pair))
			}
			metadata[k] = v
		}

		service := openService(false)

		doc, err := service.Save(context.Background(), silt.Draft{
			ID:       saveID,
			Title:    saveTitle,
			Content:  content,
			Tags:     saveTags,
			Metadata: metadata,
		}, saveModel)
		if err != nil {
			fatal("Error saving document", err)
		}

		fmt.Printf("Saved %s (%s)\n", doc.ID, doc.Title)
		if doc.ProcessedContent != "" {
			fmt.Printf("Processed with model %q\n", saveModel)
		}
	},
}

func init() {
	saveCmd.Flags().StringVar(&saveID, "id", "", "Overwrite an existing document by ID")
	saveCmd.Flags().StringVarP(&saveTitle, "title", "t", "", "Document title (required)")
	saveCmd.Flags().StringVarP(&saveContent, "content", "c", "", "Document content (stdin if omitted)")
	saveCmd.Flags().StringArrayVar(&saveTags, "tag", nil, "Tag to attach (repeatable)")
	saveCmd.Flags().StringArrayVar(&saveMeta, "meta", nil, "Metadata entry as key=value (repeatable)")
	saveCmd.Flags().StringVarP(&saveModel, "model", "m", "", "Preprocessing model to apply")
	saveCmd.MarkFlagRequired("title")

	rootCmd.AddCommand(saveCmd)
}
