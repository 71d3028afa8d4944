package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/spherical-ai/dealsearch-engine/internal/config"
	"github.com/spherical-ai/dealsearch-engine/internal/observability"
)

var (
	cfgPath    string
	jsonOutput bool
	noColor    bool
	verbose    bool

	cfg    *config.Config
	logger *observability.Logger
	ui     *UI
)

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "dealsearch-cli",
		Short:         "Query the deal search engine from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(cfgPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfg = loaded

			level := cfg.Observability.LogLevel
			if verbose {
				level = "debug"
			}
			logger = observability.NewLogger(observability.LogConfig{
				Level:       level,
				Format:      cfg.Observability.LogFormat,
				ServiceName: "dealsearch-cli",
			})
			ui = NewUI(jsonOutput, noColor)
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (YAML)")
	root.PersistentFlags().BoolVar(&jsonOutput, "json", false, "emit machine-readable JSON instead of formatted output")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newSearchCmd())
	root.AddCommand(newWarmCacheCmd())
	root.AddCommand(newVersionCmd())

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
