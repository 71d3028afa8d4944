package embeddingindex

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalEmbedder_Deterministic(t *testing.T) {
	e := NewLocalEmbedder(64)
	v1, err := e.EmbedSingle(context.Background(), "chocolate bar deal")
	require.NoError(t, err)
	v2, err := e.EmbedSingle(context.Background(), "chocolate bar deal")
	require.NoError(t, err)
	assert.Equal(t, v1, v2)
}

func TestLocalEmbedder_DifferentTextsDiffer(t *testing.T) {
	e := NewLocalEmbedder(64)
	v1, err := e.EmbedSingle(context.Background(), "chocolate bar deal")
	require.NoError(t, err)
	v2, err := e.EmbedSingle(context.Background(), "completely unrelated allergy medicine")
	require.NoError(t, err)
	assert.NotEqual(t, v1, v2)
}

func TestLocalEmbedder_DefaultDimension(t *testing.T) {
	e := NewLocalEmbedder(0)
	assert.Equal(t, DefaultDimension, e.Dimension())
}
