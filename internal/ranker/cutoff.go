package ranker

import "sort"

// adaptiveCutoff computes the threshold τ for a sorted (descending) deal
// slice: 0.40*top when top >= 0.5, else 0.70*top (spec §4.6 step 6).
func adaptiveCutoff(topScore float64) float64 {
	if topScore >= 0.5 {
		return 0.40 * topScore
	}
	return 0.70 * topScore
}

// sortAndCutoff sorts deals by score descending (ties broken by offer-name
// length ascending, then offer_id ascending), applies the adaptive
// cutoff, and truncates to topK (spec §4.6 steps 6–7).
func sortAndCutoff(deals []*DealResult, topK int) []DealResult {
	return sortAndFilter(deals, topK, adaptiveCutoff)
}

// sortAndCutoffWithFactor is sortAndCutoff with a flat τ = factor*top
// cutoff instead of the two-branch adaptive formula, used by the
// multi-query merge's stricter cutoff (spec §4.8).
func sortAndCutoffWithFactor(deals []*DealResult, topK int, factor float64) []DealResult {
	return sortAndFilter(deals, topK, func(top float64) float64 { return factor * top })
}

func sortAndFilter(deals []*DealResult, topK int, tauFor func(topScore float64) float64) []DealResult {
	if len(deals) == 0 {
		return nil
	}

	sort.Slice(deals, func(i, j int) bool {
		if deals[i].Score != deals[j].Score {
			return deals[i].Score > deals[j].Score
		}
		if len(deals[i].Offer.Name) != len(deals[j].Offer.Name) {
			return len(deals[i].Offer.Name) < len(deals[j].Offer.Name)
		}
		return deals[i].Offer.OfferID < deals[j].Offer.OfferID
	})

	topScore := deals[0].Score
	tau := tauFor(topScore)

	kept := make([]*DealResult, 0, len(deals))
	for _, d := range deals {
		if d.Score >= tau {
			kept = append(kept, d)
		}
	}

	if topK > 0 && len(kept) > topK {
		kept = kept[:topK]
	}

	out := make([]DealResult, len(kept))
	for i, d := range kept {
		out[i] = *d
	}
	return out
}
