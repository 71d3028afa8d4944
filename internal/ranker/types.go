// Package ranker fuses the three per-record scorer outputs into a single
// composite score, applies the ranking adjustments, groups records into
// deals, and applies the adaptive cutoff (spec §4.6).
package ranker

import "github.com/spherical-ai/dealsearch-engine/internal/catalog"

// ScoreComponents is the per-record score breakdown that fed a deal's
// final composite score.
type ScoreComponents struct {
	Keyword   float64
	Fuzzy     float64
	Semantic  float64
	Composite float64
	Sources   []string
}

// ProductMatch pairs a qualifying product with the score of the record it
// came from.
type ProductMatch struct {
	Product catalog.Product
	Score   ScoreComponents
}

// DealResult is the ephemeral per-query output entity: an Offer plus the
// subset of its products that explain the match (spec §3).
type DealResult struct {
	Offer            catalog.Offer
	MatchingProducts []ProductMatch
	Score            float64
	ScoreComponents  ScoreComponents
}
