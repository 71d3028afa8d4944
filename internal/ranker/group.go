package ranker

import (
	"strings"

	"github.com/spherical-ai/dealsearch-engine/internal/catalog"
	"github.com/spherical-ai/dealsearch-engine/internal/scoring"
)

const offerNameBoostFactor = 1.2

// offerDensityStats carries the counts spec §4.6 step 5 needs per offer:
// total qualifying products (offer-only deals count as 1, per spec §9's
// density-denominator open question) and how many of them the keyword
// scorer matched, falling back to the fuzzy-matched count when keyword
// found nothing anywhere for that offer.
type offerDensityStats struct {
	total          int
	keywordMatched int
	fuzzyMatched   int
}

func buildDensityStats(records []catalog.Record, perRecord []perRecordScores) map[string]*offerDensityStats {
	stats := make(map[string]*offerDensityStats)

	for i := range records {
		rec := &records[i]
		s, ok := stats[rec.Offer.OfferID]
		if !ok {
			s = &offerDensityStats{}
			stats[rec.Offer.OfferID] = s
		}
		if !rec.HasProduct {
			continue
		}
		s.total++
		if perRecord[i].keywordRaw > 0 {
			s.keywordMatched++
		}
		if perRecord[i].fuzzyRaw100 > 0 {
			s.fuzzyMatched++
		}
	}

	for _, s := range stats {
		if s.total == 0 {
			s.total = 1
		}
	}

	return stats
}

// groupDeals groups matching records (composite > 0) by offer_id into
// DealResults, each scored as the max composite among its records (spec
// §4.6 step 3).
func groupDeals(records []catalog.Record, perRecord []perRecordScores) map[string]*DealResult {
	deals := make(map[string]*DealResult)

	for i := range records {
		if perRecord[i].composite <= 0 {
			continue
		}
		rec := &records[i]
		oid := rec.Offer.OfferID

		deal, ok := deals[oid]
		if !ok {
			deal = &DealResult{Offer: *rec.Offer}
			deals[oid] = deal
		}

		sc := ScoreComponents{
			Keyword:   perRecord[i].keywordRaw,
			Fuzzy:     perRecord[i].fuzzyRaw100 / 100.0,
			Semantic:  perRecord[i].semantic,
			Composite: perRecord[i].composite,
			Sources:   perRecord[i].sources,
		}

		if perRecord[i].composite > deal.Score {
			deal.Score = perRecord[i].composite
			deal.ScoreComponents = sc
		}

		if rec.HasProduct {
			deal.MatchingProducts = append(deal.MatchingProducts, ProductMatch{
				Product: rec.Product,
				Score:   sc,
			})
		}
	}

	return deals
}

// applyOfferNameBoost multiplies a deal's score by 1.2 when the query
// exactly or fuzzily matches the offer name (spec §4.6 step 4).
func applyOfferNameBoost(deal *DealResult, queryWords []string, queryLower string) {
	nameLower := strings.ToLower(deal.Offer.Name)

	exactHit := false
	for _, w := range queryWords {
		if strings.Contains(nameLower, w) {
			exactHit = true
			break
		}
	}

	fuzzyHit := false
	if !exactHit {
		fuzzyHit = scoring.PartialRatio(queryLower, nameLower) >= 80
	}

	if exactHit || fuzzyHit {
		deal.Score *= offerNameBoostFactor
	}
}

// applyDensityPenalty multiplies a deal's score by 0.3 + 0.7*(n_matched /
// n_total) (spec §4.6 step 5). n_matched falls back to this offer's
// fuzzy-matched count only when keyword produced zero matches anywhere for
// *this* offer (spec §4.6 step 5) — the fallback is per-offer, not a
// query-wide condition.
func applyDensityPenalty(deal *DealResult, stats map[string]*offerDensityStats) {
	s, ok := stats[deal.Offer.OfferID]
	if !ok {
		return
	}

	if s.total == 1 && len(deal.MatchingProducts) == 0 {
		// Offer-only match: no penalty (spec §9).
		return
	}

	matched := s.keywordMatched
	if matched == 0 {
		matched = s.fuzzyMatched
	}

	density := float64(matched) / float64(s.total)
	deal.Score *= 0.3 + 0.7*density
}
