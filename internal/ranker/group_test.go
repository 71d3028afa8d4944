package ranker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spherical-ai/dealsearch-engine/internal/catalog"
)

func mustLoadRecords(t *testing.T, deals, products string) []catalog.Record {
	t.Helper()
	_, records, err := catalog.Load([]byte(deals), []byte(products))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return records
}

func TestBuildDensityStats_OfferOnlyCountsAsOne(t *testing.T) {
	records := mustLoadRecords(t, `[{"offer_id":"D1","name":"No Products Deal"}]`, `[]`)
	perRecord := []perRecordScores{{keywordRaw: 1, composite: 0.5}}

	stats := buildDensityStats(records, perRecord)
	assert.Equal(t, 1, stats["D1"].total)
}

func TestBuildDensityStats_TracksMatchedOutOfTotal(t *testing.T) {
	records := mustLoadRecords(t,
		`[{"offer_id":"D1","name":"Chocolate Deal"}]`,
		`[{"offer_id":"D1","name":"Bar A"},{"offer_id":"D1","name":"Bar B"}]`,
	)
	perRecord := []perRecordScores{
		{keywordRaw: 1},
		{keywordRaw: 0},
	}

	stats := buildDensityStats(records, perRecord)
	assert.Equal(t, 2, stats["D1"].total)
	assert.Equal(t, 1, stats["D1"].keywordMatched)
}

func TestGroupDeals_SkipsNonMatchingRecords(t *testing.T) {
	records := mustLoadRecords(t, `[{"offer_id":"D1","name":"Deal"}]`, `[]`)
	perRecord := []perRecordScores{{composite: 0}}

	deals := groupDeals(records, perRecord)
	assert.Empty(t, deals)
}

func TestGroupDeals_TakesMaxCompositeAcrossProducts(t *testing.T) {
	records := mustLoadRecords(t,
		`[{"offer_id":"D1","name":"Deal"}]`,
		`[{"offer_id":"D1","name":"Low"},{"offer_id":"D1","name":"High"}]`,
	)
	perRecord := []perRecordScores{
		{composite: 0.2, keywordRaw: 0.2},
		{composite: 0.8, keywordRaw: 0.8},
	}

	deals := groupDeals(records, perRecord)
	assert.InDelta(t, 0.8, deals["D1"].Score, 1e-9)
	assert.Len(t, deals["D1"].MatchingProducts, 2)
}

func TestApplyOfferNameBoost_ExactSubstringHit(t *testing.T) {
	deal := &DealResult{Offer: catalog.Offer{Name: "Chocolate Bar Blowout"}, Score: 1.0}
	applyOfferNameBoost(deal, []string{"chocolate"}, "chocolate")
	assert.InDelta(t, 1.2, deal.Score, 1e-9)
}

func TestApplyOfferNameBoost_NoHitLeavesScoreUnchanged(t *testing.T) {
	deal := &DealResult{Offer: catalog.Offer{Name: "Totally Unrelated"}, Score: 1.0}
	applyOfferNameBoost(deal, []string{"chocolate"}, "chocolate")
	assert.Equal(t, 1.0, deal.Score)
}

func TestApplyDensityPenalty_OfferOnlyExempt(t *testing.T) {
	deal := &DealResult{Offer: catalog.Offer{OfferID: "D1"}, Score: 1.0}
	stats := map[string]*offerDensityStats{"D1": {total: 1}}
	applyDensityPenalty(deal, stats)
	assert.Equal(t, 1.0, deal.Score)
}

func TestApplyDensityPenalty_PartialMatchScaled(t *testing.T) {
	deal := &DealResult{
		Offer:            catalog.Offer{OfferID: "D1"},
		Score:            1.0,
		MatchingProducts: []ProductMatch{{}},
	}
	stats := map[string]*offerDensityStats{"D1": {total: 20, keywordMatched: 1}}
	applyDensityPenalty(deal, stats)
	assert.InDelta(t, 0.3+0.7*(1.0/20.0), deal.Score, 1e-9)
}

func TestDensityMonotonicity_FullMatchBeatsPartialMatch(t *testing.T) {
	// Offer A: 2 products, both match. Offer B: 1 of 20 matches.
	dealA := &DealResult{Offer: catalog.Offer{OfferID: "A"}, Score: 1.0, MatchingProducts: []ProductMatch{{}, {}}}
	dealB := &DealResult{Offer: catalog.Offer{OfferID: "B"}, Score: 1.0, MatchingProducts: []ProductMatch{{}}}
	stats := map[string]*offerDensityStats{
		"A": {total: 2, keywordMatched: 2},
		"B": {total: 20, keywordMatched: 1},
	}

	applyDensityPenalty(dealA, stats)
	applyDensityPenalty(dealB, stats)

	assert.Greater(t, dealA.Score, dealB.Score)
}
