// Package engine is the public SDK for the deal search engine: build an
// Index from a deals/products snapshot pair, then run ranked or streamed
// queries against it.
package engine

import (
	"context"
	"fmt"
	"os"

	"github.com/spherical-ai/dealsearch-engine/internal/cache"
	"github.com/spherical-ai/dealsearch-engine/internal/catalog"
	"github.com/spherical-ai/dealsearch-engine/internal/config"
	"github.com/spherical-ai/dealsearch-engine/internal/corpus"
	"github.com/spherical-ai/dealsearch-engine/internal/embeddingindex"
	"github.com/spherical-ai/dealsearch-engine/internal/observability"
)

// Index is the built, queryable search engine: the joined record set, its
// embedding vectors, and the corpus word set, all immutable after Build.
type Index struct {
	records  []catalog.Record
	words    corpus.WordSet
	vectors  *embeddingindex.Index
	embedder embeddingindex.Embedder

	defaultTopK     int
	streamBatchSize int

	logger      *observability.Logger
	expander    QueryExpander
	resultCache *cache.ResultCache
}

// Build loads the deals and products snapshots named in cfg, joins them,
// computes (or loads from cache) the embedding index, and builds the
// corpus word set. The returned Index is ready to serve queries.
func Build(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Index, error) {
	dealsRaw, err := os.ReadFile(cfg.Data.DealsPath)
	if err != nil {
		return nil, &catalog.LoadError{Source: "deals", Reason: err.Error()}
	}
	productsRaw, err := os.ReadFile(cfg.Data.ProductsPath)
	if err != nil {
		return nil, &catalog.LoadError{Source: "products", Reason: err.Error()}
	}

	_, records, err := catalog.Load(dealsRaw, productsRaw)
	if err != nil {
		return nil, err
	}
	logger.Info().Int("record_count", len(records)).Msg("catalog loaded")

	embedder, err := newEmbedder(cfg.Embedding)
	if err != nil {
		return nil, err
	}

	vectors, integrityErr, err := embeddingindex.Build(ctx, embedder, records, cfg.Embedding.CachePath)
	if err != nil {
		return nil, &embeddingindex.EmbeddingBackendError{Err: err}
	}
	if integrityErr != nil {
		logger.Warn().Str("reason", integrityErr.Reason).Msg("embedding cache recomputed")
	}

	words := corpus.Build(records)

	idx := &Index{
		records:         records,
		words:           words,
		vectors:         vectors,
		embedder:        embedder,
		defaultTopK:     cfg.Retrieval.DefaultTopK,
		streamBatchSize: cfg.Retrieval.StreamBatchSize,
		logger:          logger,
		expander:        PassthroughExpander{},
	}

	if rc, err := newResultCache(cfg.Cache); err == nil {
		idx.resultCache = rc
	} else {
		logger.Warn().Err(err).Msg("result cache disabled")
	}

	return idx, nil
}

// WithExpander replaces the query expander used by SearchExpanded.
func (idx *Index) WithExpander(expander QueryExpander) {
	if expander == nil {
		expander = PassthroughExpander{}
	}
	idx.expander = expander
}

// RecordCount returns the number of searchable records in the index.
func (idx *Index) RecordCount() int { return len(idx.records) }

func newEmbedder(cfg config.EmbeddingConfig) (embeddingindex.Embedder, error) {
	switch cfg.Backend {
	case "http":
		return embeddingindex.NewHTTPClient(embeddingindex.HTTPClientConfig{
			BaseURL:   cfg.BaseURL,
			APIKey:    cfg.APIKey,
			Model:     cfg.Model,
			Dimension: cfg.Dimension,
		})
	case "local", "":
		dim := cfg.Dimension
		if dim <= 0 {
			dim = embeddingindex.DefaultDimension
		}
		return embeddingindex.NewLocalEmbedder(dim), nil
	default:
		return nil, fmt.Errorf("unknown embedding backend: %s", cfg.Backend)
	}
}

func newResultCache(cfg config.CacheConfig) (*cache.ResultCache, error) {
	switch cfg.Driver {
	case "redis":
		client, err := cache.NewRedisClient(cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			return nil, err
		}
		return cache.NewResultCache(client, cfg.TTL), nil
	case "memory", "":
		return cache.NewResultCache(cache.NewMemoryClient(cfg.MaxEntries), cfg.TTL), nil
	default:
		return nil, fmt.Errorf("unknown cache driver: %s", cfg.Driver)
	}
}

// indexHash derives the cache namespace for this Index's record set, so a
// rebuilt index with a different record set never serves stale entries.
func (idx *Index) indexHash() string {
	return fmt.Sprintf("%x", idx.vectors.Hash)
}
