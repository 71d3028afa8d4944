package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/spherical-ai/dealsearch-engine/internal/ranker"
)

// ResultCache wraps a Client with typed marshaling for search results,
// keyed by the index's content hash so a rebuilt index can't serve stale
// entries from a prior record set.
type ResultCache struct {
	client Client
	ttl    time.Duration
}

// NewResultCache wraps client for caching ranked search results.
func NewResultCache(client Client, ttl time.Duration) *ResultCache {
	return &ResultCache{client: client, ttl: ttl}
}

// Get returns the cached results for (indexHash, query, topK), or
// ErrCacheMiss.
func (rc *ResultCache) Get(ctx context.Context, indexHash, query string, topK int) ([]ranker.DealResult, error) {
	raw, err := rc.client.Get(ctx, QueryCacheKey(indexHash, query, topK))
	if err != nil {
		return nil, err
	}

	var results []ranker.DealResult
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil, errors.New("cache: corrupt result entry")
	}
	return results, nil
}

// Set stores results for (indexHash, query, topK).
func (rc *ResultCache) Set(ctx context.Context, indexHash, query string, topK int, results []ranker.DealResult) error {
	raw, err := json.Marshal(results)
	if err != nil {
		return err
	}
	return rc.client.Set(ctx, QueryCacheKey(indexHash, query, topK), raw, rc.ttl)
}
