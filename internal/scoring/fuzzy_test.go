package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartialRatio_Identical(t *testing.T) {
	assert.Equal(t, 100.0, partialRatio("chocolate", "chocolate"))
}

func TestPartialRatio_TypoRecovery(t *testing.T) {
	r := partialRatio("choclate", "chocolate bar")
	assert.Greater(t, r, 60.0)
}

func TestPartialRatio_Unrelated(t *testing.T) {
	r := partialRatio("zzzzz", "chocolate bar deal")
	assert.Less(t, r, 60.0)
}

func TestFuzzy_BelowThresholdIsZero(t *testing.T) {
	records := mustLoad(t, `[{"offer_id":"D1","name":"Chocolate Bar Deal"}]`, `[]`)
	scores := Fuzzy("zzzzz", records)
	assert.Equal(t, 0.0, scores[0])
}

func TestFuzzy_TypoMatchesOfferOrProductName(t *testing.T) {
	records := mustLoad(t, `[{"offer_id":"D1","name":"Coffee Beans"}]`,
		`[{"offer_id":"D1","name":"Dark Roast Coffee"}]`)
	scores := Fuzzy("cofee", records)
	assert.Greater(t, scores[0], 0.0)
}

func TestLevenshteinDistance(t *testing.T) {
	assert.Equal(t, 0, levenshteinDistance("milk", "milk"))
	assert.Equal(t, 1, levenshteinDistance("milk", "mlk"))
	assert.Equal(t, 4, levenshteinDistance("", "milk"))
}
