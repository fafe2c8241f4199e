package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/PakBeast/PakBeast/internal/app"
)

var (
	logLevel  string
	logFormat string
	workers   int

	application *app.App
)

var rootCmd = &cobra.Command{
	Use:   "pakbeast",
	Short: "Inspect, search, diff, and rebuild game data archives",
	Long: `pakbeast reads game data archives, understands the script files
inside them, and rebuilds archives with targeted edits while carrying
every untouched entry over byte-for-byte.

It provides commands to list, extract, search, diff, and build
archives.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		cfg, err := app.NewConfig(app.Config{
			LogLevel:  logLevel,
			LogFormat: logFormat,
			Workers:   workers,
		})
		if err != nil {
			return err
		}
		application = app.New(os.Stderr, cfg)
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, or error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text or json")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "workers for parallel phases (0 uses every CPU)")
}
