package ranker

import (
	"strings"

	"github.com/spherical-ai/dealsearch-engine/internal/catalog"
	"github.com/spherical-ai/dealsearch-engine/internal/corpus"
)

// DefaultTopK is the default number of deals search() returns (spec §6).
const DefaultTopK = 40

// isGibberish implements spec §4.7: reject the query outright when the
// keyword scorer found nothing, no record fuzzy-matched at >=80, and none
// of the query's words appear anywhere in the corpus.
func isGibberish(queryWords []string, keyword, fuzzyRaw100 []float64, words corpus.WordSet) bool {
	hasKeyword := false
	for _, v := range keyword {
		if v > 0 {
			hasKeyword = true
			break
		}
	}
	if hasKeyword {
		return false
	}

	hasStrongFuzzy := false
	for _, v := range fuzzyRaw100 {
		if v >= 80 {
			hasStrongFuzzy = true
			break
		}
	}
	if hasStrongFuzzy {
		return false
	}

	if words.AnyPresent(queryWords) {
		return false
	}

	return true
}

// Rank fuses keyword/fuzzy/semantic scores for a single query into ranked
// DealResults (spec §4.6). keyword is raw (unnormalized) keyword scorer
// output; fuzzyRaw100 is raw [0,100] fuzzy scorer output; semantic is
// [0,1]. Returns nil when the gibberish gate rejects the query (spec
// §4.7) — never an error (spec §7).
func Rank(query string, records []catalog.Record, keyword, fuzzyRaw100, semantic []float64, words corpus.WordSet, topK int) []DealResult {
	queryLower := strings.ToLower(query)
	queryWords := strings.Fields(queryLower)
	if len(queryWords) == 0 {
		return nil
	}

	if isGibberish(queryWords, keyword, fuzzyRaw100, words) {
		return nil
	}

	keywordNorm := normalizeKeyword(keyword)
	perRecord := computeComposite(keywordNorm, fuzzyRaw100, semantic)

	densityStats := buildDensityStats(records, perRecord)

	deals := groupDeals(records, perRecord)
	if len(deals) == 0 {
		return nil
	}

	dealSlice := make([]*DealResult, 0, len(deals))
	for _, d := range deals {
		applyOfferNameBoost(d, queryWords, queryLower)
		applyDensityPenalty(d, densityStats)
		dealSlice = append(dealSlice, d)
	}

	if topK <= 0 {
		topK = DefaultTopK
	}
	return sortAndCutoff(dealSlice, topK)
}
