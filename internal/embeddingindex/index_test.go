package embeddingindex

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spherical-ai/dealsearch-engine/internal/catalog"
)

func loadFixtureRecords(t *testing.T) []catalog.Record {
	t.Helper()
	_, records, err := catalog.Load(
		[]byte(`[{"offer_id":"D1","name":"Chocolate Bar Deal","description":"save now"},{"offer_id":"D2","name":"Milk Deal"}]`),
		[]byte(`[]`),
	)
	require.NoError(t, err)
	return records
}

func TestBuild_VectorsAreUnitNormalized(t *testing.T) {
	records := loadFixtureRecords(t)
	embedder := NewLocalEmbedder(32)

	idx, cacheErr, err := Build(context.Background(), embedder, records, "")
	require.NoError(t, err)
	assert.Nil(t, cacheErr)
	require.Len(t, idx.Vectors, len(records))

	for _, v := range idx.Vectors {
		var sumSq float64
		for _, x := range v {
			sumSq += float64(x) * float64(x)
		}
		assert.InDelta(t, 1.0, math.Sqrt(sumSq), 1e-4)
	}
}

func TestBuild_CacheRoundTrip(t *testing.T) {
	records := loadFixtureRecords(t)
	embedder := NewLocalEmbedder(32)
	cachePath := filepath.Join(t.TempDir(), "embeddings.cache")

	first, cacheErr, err := Build(context.Background(), embedder, records, cachePath)
	require.NoError(t, err)
	assert.Nil(t, cacheErr)

	second, cacheErr2, err := Build(context.Background(), embedder, records, cachePath)
	require.NoError(t, err)
	assert.Nil(t, cacheErr2)

	require.Equal(t, len(first.Vectors), len(second.Vectors))
	for i := range first.Vectors {
		assert.Equal(t, first.Vectors[i], second.Vectors[i])
	}
}

func TestBuild_CacheInvalidatedOnRecordChange(t *testing.T) {
	records := loadFixtureRecords(t)
	embedder := NewLocalEmbedder(32)
	cachePath := filepath.Join(t.TempDir(), "embeddings.cache")

	_, _, err := Build(context.Background(), embedder, records, cachePath)
	require.NoError(t, err)

	_, differentRecords, err := catalog.Load(
		[]byte(`[{"offer_id":"D3","name":"Completely Different Offer"}]`),
		[]byte(`[]`),
	)
	require.NoError(t, err)

	idx, cacheErr, err := Build(context.Background(), embedder, differentRecords, cachePath)
	require.NoError(t, err)
	require.NotNil(t, cacheErr)
	assert.Len(t, idx.Vectors, 1)
}

func TestQueryVector_Normalized(t *testing.T) {
	embedder := NewLocalEmbedder(32)
	v, err := QueryVector(context.Background(), embedder, "chocolate")
	require.NoError(t, err)

	var sumSq float64
	for _, x := range v {
		sumSq += float64(x) * float64(x)
	}
	assert.InDelta(t, 1.0, math.Sqrt(sumSq), 1e-4)
}
