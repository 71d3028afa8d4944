package engine

import (
	"context"
	"strings"
	"sync"

	"github.com/spherical-ai/dealsearch-engine/internal/embeddingindex"
	"github.com/spherical-ai/dealsearch-engine/internal/ranker"
	"github.com/spherical-ai/dealsearch-engine/internal/scoring"
)

// Search ranks the index against query and returns at most topK deals
// (spec §6's search(query, top_k) -> list<DealResult> contract). A zero
// topK uses the configured default. An empty query or a gibberish query
// both return a nil slice with a nil error (spec §7: query is never an
// error).
func (idx *Index) Search(ctx context.Context, query string, topK int) ([]ranker.DealResult, error) {
	if topK <= 0 {
		topK = idx.defaultTopK
	}
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	if idx.resultCache != nil {
		if cached, err := idx.resultCache.Get(ctx, idx.indexHash(), query, topK); err == nil {
			return cached, nil
		}
	}

	keyword, fuzzy, semantic, err := idx.scoreQuery(ctx, query)
	if err != nil {
		idx.logger.Warn().Err(err).Str("query", query).Msg("semantic scoring unavailable, ranking on keyword and fuzzy only")
		semantic = make([]float64, len(idx.records))
	}

	results := ranker.Rank(query, idx.records, keyword, fuzzy, semantic, idx.words, topK)

	if idx.resultCache != nil {
		_ = idx.resultCache.Set(ctx, idx.indexHash(), query, topK, results)
	}

	return results, nil
}

// SearchStream runs Search and re-emits its sorted result in
// fixed-size batches over a channel (spec §6's search_stream contract).
// The channel closes once every batch is sent or ctx is cancelled.
func (idx *Index) SearchStream(ctx context.Context, query string, topK int) (<-chan []ranker.DealResult, error) {
	results, err := idx.Search(ctx, query, topK)
	if err != nil {
		return nil, err
	}
	return ranker.Stream(ctx, results, idx.streamBatchSize), nil
}

// SearchExpanded runs the configured QueryExpander over query, ranks each
// expanded term independently, and merges the results by offer_id (spec
// §4.8). With the default PassthroughExpander this is equivalent to
// Search.
func (idx *Index) SearchExpanded(ctx context.Context, query string, topK int) ([]ranker.DealResult, error) {
	return idx.SearchExpandedWithProgress(ctx, query, topK, nil)
}

// SearchExpandedWithProgress behaves like SearchExpanded, additionally
// invoking onTerm after each expanded term finishes ranking so a caller can
// render per-term progress. onTerm may be nil.
func (idx *Index) SearchExpandedWithProgress(ctx context.Context, query string, topK int, onTerm func(i int, term string)) ([]ranker.DealResult, error) {
	if topK <= 0 {
		topK = idx.defaultTopK
	}

	terms, err := idx.expander.Expand(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(terms) == 0 {
		return nil, nil
	}
	if len(terms) == 1 {
		res, err := idx.Search(ctx, terms[0], topK)
		if onTerm != nil {
			onTerm(0, terms[0])
		}
		return res, err
	}

	perTerm := make([][]ranker.DealResult, len(terms))
	for i, term := range terms {
		res, err := idx.Search(ctx, term, topK)
		if err != nil {
			return nil, err
		}
		perTerm[i] = res
		if onTerm != nil {
			onTerm(i, term)
		}
	}

	return ranker.MergeMultiQuery(perTerm, topK), nil
}

// ExpandTerms runs the configured QueryExpander over query and returns its
// terms without ranking them, so a caller can size a progress display
// before invoking SearchExpandedWithProgress.
func (idx *Index) ExpandTerms(ctx context.Context, query string) ([]string, error) {
	return idx.expander.Expand(ctx, query)
}

// scoreQuery fans a query out to the three independent scorers across a
// fixed-size worker pool of three (spec §5): each scorer reads the
// immutable record set and returns a freshly allocated score vector, with
// no shared mutable state between them.
func (idx *Index) scoreQuery(ctx context.Context, query string) (keyword, fuzzy, semantic []float64, err error) {
	var wg sync.WaitGroup
	var semanticErr error

	wg.Add(3)

	go func() {
		defer wg.Done()
		keyword = scoring.Keyword(query, idx.records)
	}()

	go func() {
		defer wg.Done()
		fuzzy = scoring.Fuzzy(query, idx.records)
	}()

	go func() {
		defer wg.Done()
		queryVector, e := embeddingindex.QueryVector(ctx, idx.embedder, query)
		if e != nil {
			semanticErr = e
			return
		}
		semantic = scoring.Semantic(queryVector, idx.vectors.Vectors)
	}()

	wg.Wait()

	if semanticErr != nil {
		return keyword, fuzzy, nil, semanticErr
	}
	return keyword, fuzzy, semantic, nil
}
