package ranker

// Composite fusion weights (spec §4.6 step 1).
const (
	keywordWeight  = 0.50
	fuzzyWeight    = 0.25
	semanticWeight = 0.25

	fuzzyRawThreshold    = 60.0 // pre-normalization fuzzy cutoff
	fuzzyNormThreshold   = fuzzyRawThreshold / 100.0
	semanticOnlyDiscount = 0.5
	multiSourceStep      = 0.1
	multiSourceCap       = 0.2
)

// perRecordScores is every adjustment's working set for one record: the
// scorer outputs (keyword already normalized to [0,1], fuzzy raw in
// [0,100], semantic in [0,1]) plus the running composite.
type perRecordScores struct {
	keywordRaw  float64
	fuzzyRaw100 float64 // [0, 100], pre-normalization
	semantic    float64
	composite   float64
	sources     []string
}

// normalizeKeyword divides keyword scores by their per-query max, but only
// when that max exceeds 1 (spec §4.6 step 1).
func normalizeKeyword(keyword []float64) []float64 {
	max := 0.0
	for _, v := range keyword {
		if v > max {
			max = v
		}
	}
	out := make([]float64, len(keyword))
	if max <= 1 {
		copy(out, keyword)
		return out
	}
	for i, v := range keyword {
		out[i] = v / max
	}
	return out
}

// computeComposite runs spec §4.6 steps 1–2 over every record: composite
// fusion, the fuzzy cap, the semantic-only discount, and the multi-source
// bonus. keywordNorm is already normalized to [0,1]; fuzzyRaw100 is the raw
// [0,100] fuzzy scorer output (normalized to [0,1] internally, per spec
// §9's fuzzy-normalization open question); semantic is already [0,1].
func computeComposite(keywordNorm, fuzzyRaw100, semantic []float64) []perRecordScores {
	n := len(keywordNorm)
	out := make([]perRecordScores, n)

	for i := 0; i < n; i++ {
		kw := keywordNorm[i]
		fzRaw := fuzzyRaw100[i]
		fz := fzRaw / 100.0
		sm := semantic[i]

		var sources []string
		if kw > 0 {
			sources = append(sources, "keyword")
		}
		if fzRaw > 0 {
			sources = append(sources, "fuzzy")
		}
		if sm > 0 {
			sources = append(sources, "semantic")
		}

		// a. Fuzzy cap: fuzzy must not amplify records that already have
		// exact keyword matches.
		fzForComposite := fz
		if kw > 0 && fz > 0 && fz > kw {
			fzForComposite = kw
		}

		composite := keywordWeight*kw + fuzzyWeight*fzForComposite + semanticWeight*sm

		// b. Semantic-only discount.
		if sm > 0 && kw == 0 && fz == 0 {
			composite *= semanticOnlyDiscount
		}

		// c. Multi-source bonus.
		k := 0
		if kw > 0 {
			k++
		}
		if fzRaw >= fuzzyRawThreshold {
			k++
		}
		if sm > 0 {
			k++
		}
		bonus := multiSourceStep * float64(k-1)
		if bonus < 0 {
			bonus = 0
		}
		if bonus > multiSourceCap {
			bonus = multiSourceCap
		}
		composite += bonus

		out[i] = perRecordScores{
			keywordRaw:  kw,
			fuzzyRaw100: fzRaw,
			semantic:    sm,
			composite:   composite,
			sources:     sources,
		}
	}

	return out
}
