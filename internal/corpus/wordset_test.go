package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spherical-ai/dealsearch-engine/internal/catalog"
)

func TestBuild_ContainsCorpusWords(t *testing.T) {
	_, records, err := catalog.Load([]byte(`[{"offer_id":"D1","name":"Milk Deal"}]`), []byte(`[{"offer_id":"D1","name":"Whole Milk Gallon"}]`))
	require.NoError(t, err)

	ws := Build(records)
	assert.True(t, ws.Contains("milk"))
	assert.True(t, ws.Contains("gallon"))
	assert.False(t, ws.Contains("zzzzz"))
}

func TestAnyPresent(t *testing.T) {
	ws := WordSet{"milk": {}, "deal": {}}
	assert.True(t, ws.AnyPresent([]string{"zzzzz", "milk"}))
	assert.False(t, ws.AnyPresent([]string{"zzzzz", "qwerty"}))
}
