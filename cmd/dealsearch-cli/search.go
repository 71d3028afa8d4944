package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/spherical-ai/dealsearch-engine/internal/ranker"
	"github.com/spherical-ai/dealsearch-engine/pkg/engine"
)

func newSearchCmd() *cobra.Command {
	var topK int
	var expand bool
	var stream bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Rank deals against a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := joinArgs(args)
			requestID := uuid.New().String()
			requestLogger := logger.With().Str("request_id", requestID).Logger()

			ctx := cmd.Context()
			start := time.Now()

			requestLogger.Info().Str("query", query).Msg("building index")
			idx, err := engine.Build(ctx, cfg, requestLogger)
			if err != nil {
				return fmt.Errorf("build index: %w", err)
			}
			ui.Info("indexed %d records in %s", idx.RecordCount(), FormatDuration(time.Since(start)))

			var results []ranker.DealResult
			searchStart := time.Now()

			switch {
			case stream:
				results, err = runStreamed(ctx, idx, query, topK)
			case expand:
				results, err = runExpanded(ctx, idx, query, topK)
			default:
				results, err = idx.Search(ctx, query, topK)
			}
			if err != nil {
				return fmt.Errorf("search: %w", err)
			}
			requestLogger.Info().Int("result_count", len(results)).Dur("elapsed", time.Since(searchStart)).Msg("search complete")

			return renderResults(query, results)
		},
	}

	cmd.Flags().IntVarP(&topK, "top-k", "k", 0, "maximum number of deals to return (0 uses the configured default)")
	cmd.Flags().BoolVar(&expand, "expand", false, "rank every expanded term independently and merge by offer")
	cmd.Flags().BoolVar(&stream, "stream", false, "emit results in batches instead of all at once")

	return cmd
}

func joinArgs(args []string) string {
	query := args[0]
	for _, a := range args[1:] {
		query += " " + a
	}
	return query
}

func runExpanded(ctx context.Context, idx *engine.Index, query string, topK int) ([]ranker.DealResult, error) {
	terms, err := idx.ExpandTerms(ctx, query)
	if err != nil {
		return nil, err
	}

	progress := ui.NewTermProgress(len(terms))
	results, err := idx.SearchExpandedWithProgress(ctx, query, topK, func(i int, term string) {
		progress.Done()
	})
	progress.Wait()
	return results, err
}

func runStreamed(ctx context.Context, idx *engine.Index, query string, topK int) ([]ranker.DealResult, error) {
	batches, err := idx.SearchStream(ctx, query, topK)
	if err != nil {
		return nil, err
	}
	var all []ranker.DealResult
	batchNum := 0
	for batch := range batches {
		batchNum++
		ui.Info("batch %d: %d deals", batchNum, len(batch))
		all = append(all, batch...)
	}
	return all, nil
}

func renderResults(query string, results []ranker.DealResult) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	ui.Section(fmt.Sprintf("results for %q", query))
	if len(results) == 0 {
		ui.Warning("no matching deals")
		return nil
	}

	headers := []string{"offer_id", "name", "score", "products", "program"}
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			r.Offer.OfferID,
			truncate(r.Offer.Name, 40),
			strconv.FormatFloat(r.Score, 'f', 4, 64),
			strconv.Itoa(len(r.MatchingProducts)),
			string(r.Offer.Program),
		})
	}
	ui.Table(headers, rows)
	ui.Newline()
	ui.Success("%d deals ranked", len(results))
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
