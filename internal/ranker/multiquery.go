package ranker

// mergedDeal tracks, while merging per-term ranked results, the best raw
// deal score seen for an offer and how many distinct terms matched it.
type mergedDeal struct {
	deal         DealResult
	termsMatched int
}

// MergeMultiQuery implements spec §4.8: perTerm holds the independently
// ranked results for each expanded query term (already passed through
// Rank). Results are merged by offer_id, keeping the maximum deal score
// per offer, multiplied by min(1.3, 1.0 + 0.05*(distinct_terms_matched-1)).
// A stricter cutoff τ = 0.45*top is applied over the merged set.
func MergeMultiQuery(perTerm [][]DealResult, topK int) []DealResult {
	merged := make(map[string]*mergedDeal)

	for _, termResults := range perTerm {
		for _, d := range termResults {
			oid := d.Offer.OfferID
			m, ok := merged[oid]
			if !ok {
				dCopy := d
				merged[oid] = &mergedDeal{deal: dCopy, termsMatched: 1}
				continue
			}
			m.termsMatched++
			if d.Score > m.deal.Score {
				m.deal.Score = d.Score
				m.deal.ScoreComponents = d.ScoreComponents
				m.deal.MatchingProducts = d.MatchingProducts
			}
		}
	}

	if len(merged) == 0 {
		return nil
	}

	results := make([]*DealResult, 0, len(merged))
	for _, m := range merged {
		multiplier := 1.0 + 0.05*float64(m.termsMatched-1)
		if multiplier > 1.3 {
			multiplier = 1.3
		}
		m.deal.Score *= multiplier
		results = append(results, &m.deal)
	}

	return sortAndCutoffWithFactor(results, topK, 0.45)
}
