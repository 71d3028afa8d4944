package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spherical-ai/dealsearch-engine/internal/catalog"
	"github.com/spherical-ai/dealsearch-engine/internal/ranker"
)

func sampleResults() []ranker.DealResult {
	return []ranker.DealResult{
		{
			Offer: catalog.Offer{OfferID: "O1", Name: "Chocolate Bar Deal"},
			Score: 0.81,
		},
	}
}

func TestResultCache_SetThenGetRoundTrips(t *testing.T) {
	rc := NewResultCache(NewMemoryClient(10), time.Minute)
	ctx := context.Background()

	want := sampleResults()
	require.NoError(t, rc.Set(ctx, "hash1", "chocolate", 40, want))

	got, err := rc.Get(ctx, "hash1", "chocolate", 40)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, want[0].Offer.OfferID, got[0].Offer.OfferID)
	assert.Equal(t, want[0].Score, got[0].Score)
}

func TestResultCache_GetMissReturnsError(t *testing.T) {
	rc := NewResultCache(NewMemoryClient(10), time.Minute)
	_, err := rc.Get(context.Background(), "hash1", "nothing-cached", 40)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestResultCache_DifferentIndexHashIsAMiss(t *testing.T) {
	rc := NewResultCache(NewMemoryClient(10), time.Minute)
	ctx := context.Background()
	require.NoError(t, rc.Set(ctx, "hash1", "chocolate", 40, sampleResults()))

	_, err := rc.Get(ctx, "hash2", "chocolate", 40)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestResultCache_DifferentTopKIsAMiss(t *testing.T) {
	rc := NewResultCache(NewMemoryClient(10), time.Minute)
	ctx := context.Background()
	require.NoError(t, rc.Set(ctx, "hash1", "chocolate", 40, sampleResults()))

	_, err := rc.Get(ctx, "hash1", "chocolate", 10)
	assert.ErrorIs(t, err, ErrCacheMiss)
}
