package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/spherical-ai/dealsearch-engine/pkg/engine"
)

func newWarmCacheCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "warm-cache",
		Short: "Load the catalog and compute (or refresh) the embedding cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s := ui.NewSpinner(fmt.Sprintf("computing embeddings into %s", cfg.Embedding.CachePath))
			start := time.Now()

			idx, err := engine.Build(ctx, cfg, logger)

			if s != nil {
				s.Stop()
			}
			if err != nil {
				ui.Error("warm-cache failed: %v", err)
				return err
			}

			elapsed := time.Since(start)
			if jsonOutput {
				fmt.Printf(`{"record_count":%d,"elapsed_ms":%d,"cache_path":%q}`+"\n",
					idx.RecordCount(), elapsed.Milliseconds(), cfg.Embedding.CachePath)
				return nil
			}

			ui.Success("embedding cache warm")
			ui.KeyValue("records", idx.RecordCount())
			ui.KeyValue("cache_path", cfg.Embedding.CachePath)
			ui.KeyValue("elapsed", FormatDuration(elapsed))
			return nil
		},
	}
}
