// Package scoring implements the three independent per-record scorers —
// keyword, fuzzy, and semantic (spec §4.3–§4.5).
package scoring

import (
	"regexp"
	"strings"

	"github.com/spherical-ai/dealsearch-engine/internal/catalog"
)

// Field weights for keyword scoring (spec §4.3).
const (
	offerNameWeight   = 3.0
	productNameWeight = 2.0
	descriptionWeight = 1.0
	otherFieldWeight  = 0.5
	wholeWordBonus    = 1.5
	substringBonus    = 1.0
)

// weightedField pairs a record's lowercased text for one field with that
// field's weight.
type weightedField struct {
	text   string
	weight float64
}

// Keyword scores every record against a lowercased, whitespace-split query.
// All query words must appear somewhere in the record's combined text; a
// record missing any word scores 0 (spec §4.3). Scores are raw (not
// normalized) — the ranker normalizes to [0,1] before fusing.
func Keyword(query string, records []catalog.Record) []float64 {
	words := strings.Fields(strings.ToLower(query))
	scores := make([]float64, len(records))
	if len(words) == 0 {
		return scores
	}

	patterns := make([]*regexp.Regexp, len(words))
	for i, w := range words {
		patterns[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(w) + `\b`)
	}

	for i := range records {
		rec := &records[i]
		text := rec.SearchTextLower()

		missing := false
		for _, w := range words {
			if !strings.Contains(text, w) {
				missing = true
				break
			}
		}
		if missing {
			continue
		}

		fields := []weightedField{
			{rec.OfferNameLower(), offerNameWeight},
			{rec.ProductNameLower(), productNameWeight},
			{rec.OfferDescriptionLower(), descriptionWeight},
			{rec.ProductDescriptionLower(), descriptionWeight},
			{rec.OfferCategoryLower(), otherFieldWeight},
			{rec.ProductDepartmentLower(), otherFieldWeight},
			{rec.ProductAisleLower(), otherFieldWeight},
			{rec.ProductShelfLower(), otherFieldWeight},
		}

		// Sum every (word, field) contribution — a word matching in three
		// fields contributes three times, rewarding multi-field coverage
		// (spec §4.3).
		var total float64
		for wi, w := range words {
			for _, f := range fields {
				if f.text == "" || !strings.Contains(f.text, w) {
					continue
				}
				bonus := substringBonus
				if patterns[wi].MatchString(f.text) {
					bonus = wholeWordBonus
				}
				total += f.weight * bonus
			}
		}
		scores[i] = total
	}

	return scores
}
