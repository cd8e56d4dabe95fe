package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/silt"
	"github.com/aretw0/silt/pkg/core"
)

var (
	verbose  bool
	storeDir string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "silt",
	Short: "A flat-file context store with deterministic preprocessing pipelines",
	Long: `Silt persists text documents with tags and metadata as one file per
document, and can run named preprocessing models (filler removal, keyword
extraction, link detection) over content at save time.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&storeDir, "dir", "d", "./contexts", "Store root directory")
}

// openService builds a service over the configured store directory.
func openService(mustExist bool) *core.Service {
	service, err := silt.New(storeDir,
		silt.WithMustExist(mustExist),
		silt.WithLogger(slog.Default()),
	)
	if err != nil {
		fatal("Error initializing silt", err)
	}
	return service
}
