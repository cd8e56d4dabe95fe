package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
)

var watchPattern string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream document change events until interrupted",
	Long: `Stream document change events until interrupted. Pass --pattern to
restrict events to matching document IDs (doublestar glob).`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		service := openService(true)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		events, err := service.Watch(ctx, watchPattern)
		if err != nil {
			fatal("Error starting watcher", err)
		}

		fmt.Fprintln(os.Stderr, "watching... (Ctrl-C to stop)")
		for e := range events {
			fmt.Printf("%s  %-6s  %s\n", time.Unix(e.Timestamp, 0).Format("15:04:05"), e.Type, e.ID)
		}
	},
}

func init() {
	watchCmd.Flags().StringVarP(&watchPattern, "pattern", "p", "", "Doublestar glob on document IDs")
	rootCmd.AddCommand(watchCmd)
}
