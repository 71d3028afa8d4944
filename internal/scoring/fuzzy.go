package scoring

import (
	"strings"

	"github.com/spherical-ai/dealsearch-engine/internal/catalog"
)

// FuzzyRejectThreshold is the raw 0-100 partial-ratio floor below which a
// record scores 0 (spec §4.4).
const FuzzyRejectThreshold = 60.0

// Fuzzy scores every record by the best substring-alignment ratio between
// the query and either the offer name or the product name. Returns raw
// scores in [0, 100]; the ranker normalizes to [0, 1] before fusing (spec
// §4.4, §9 open question on fuzzy normalization).
func Fuzzy(query string, records []catalog.Record) []float64 {
	scores := make([]float64, len(records))
	queryLower := strings.ToLower(query)
	if queryLower == "" {
		return scores
	}

	for i := range records {
		rec := &records[i]
		best := partialRatio(queryLower, rec.OfferNameLower())
		if rec.HasProduct {
			if pr := partialRatio(queryLower, rec.ProductNameLower()); pr > best {
				best = pr
			}
		}
		if best < FuzzyRejectThreshold {
			best = 0
		}
		scores[i] = best
	}

	return scores
}

// PartialRatio exposes partialRatio for callers outside this package (the
// ranker's offer-name boost needs the same substring-alignment ratio used
// here).
func PartialRatio(a, b string) float64 {
	return partialRatio(strings.ToLower(a), strings.ToLower(b))
}

// partialRatio approximates rapidfuzz's partial_ratio: the best Levenshtein
// alignment ratio of the shorter string against every equal-length window of
// the longer string, scaled to [0, 100]. Grounded on the Levenshtein
// primitive in rohan-darji-MacroLens's matching_service.go — no rapidfuzz
// equivalent exists in the Go ecosystem surveyed, so the ratio is
// hand-derived the same way that repo derives fuzzy token matching.
func partialRatio(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 100
	}

	shorter, longer := a, b
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}

	if len(longer) <= len(shorter) {
		return ratio(shorter, longer)
	}

	best := 0.0
	windowLen := len(shorter)
	for start := 0; start+windowLen <= len(longer); start++ {
		window := longer[start : start+windowLen]
		if r := ratio(shorter, window); r > best {
			best = r
		}
	}
	return best
}

// ratio converts a Levenshtein edit distance into a 0-100 similarity score,
// the same normalization rapidfuzz's plain ratio() uses:
// (1 - distance / max(len(a), len(b))) * 100.
func ratio(a, b string) float64 {
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 100
	}
	dist := levenshteinDistance(a, b)
	r := (1.0 - float64(dist)/float64(maxLen)) * 100.0
	if r < 0 {
		return 0
	}
	return r
}

// levenshteinDistance calculates the edit distance between two strings
// using a two-row space-efficient matrix, grounded on
// rohan-darji-MacroLens's matching_service.go.
func levenshteinDistance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)
	m, n := len(r1), len(r2)
	if m == 0 {
		return n
	}
	if n == 0 {
		return m
	}

	prev := make([]int, n+1)
	curr := make([]int, n+1)
	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = minInt(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}

func minInt(vals ...int) int {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
