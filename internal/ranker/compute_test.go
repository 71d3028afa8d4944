package ranker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeKeyword_DividesByMaxWhenAboveOne(t *testing.T) {
	out := normalizeKeyword([]float64{4.0, 2.0, 0.0})
	assert.Equal(t, []float64{1.0, 0.5, 0.0}, out)
}

func TestNormalizeKeyword_LeavesFractionalScoresAlone(t *testing.T) {
	out := normalizeKeyword([]float64{0.5, 0.25})
	assert.Equal(t, []float64{0.5, 0.25}, out)
}

func TestComputeComposite_SemanticOnlyDiscount(t *testing.T) {
	out := computeComposite([]float64{0}, []float64{0}, []float64{0.8})
	assert.InDelta(t, 0.125*0.8, out[0].composite, 1e-9)
}

func TestComputeComposite_FuzzyCappedAtKeyword(t *testing.T) {
	// keyword=0.2, fuzzy raw=100 (normalized 1.0) -> capped to 0.2 in the
	// fused term since fz > kw and both are non-zero.
	out := computeComposite([]float64{0.2}, []float64{100}, []float64{0})
	expected := 0.50*0.2 + 0.25*0.2 // fuzzy capped at keyword
	// multi-source bonus: keyword>0 and fuzzyRaw>=60 -> k=2 -> bonus 0.1
	expected += 0.1
	assert.InDelta(t, expected, out[0].composite, 1e-9)
}

func TestComputeComposite_MultiSourceBonusCapped(t *testing.T) {
	out := computeComposite([]float64{0.5}, []float64{80}, []float64{0.5})
	// all three sources present -> k=3, bonus = min(0.2, 0.1*2) = 0.2
	fzForComposite := 0.5
	if 0.8 > 0.5 {
		fzForComposite = 0.5
	}
	expected := 0.50*0.5 + 0.25*fzForComposite + 0.25*0.5 + 0.2
	assert.InDelta(t, expected, out[0].composite, 1e-9)
}

func TestComputeComposite_NoSourcesZeroComposite(t *testing.T) {
	out := computeComposite([]float64{0}, []float64{0}, []float64{0})
	assert.Equal(t, 0.0, out[0].composite)
	assert.Empty(t, out[0].sources)
}
