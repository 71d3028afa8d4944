// Package corpus builds the set of all tokens appearing anywhere in the
// record set, used by the gibberish gate (spec §4.7).
package corpus

import "github.com/spherical-ai/dealsearch-engine/internal/catalog"

// WordSet is the set of all lowercased tokens appearing in any record's
// combined text. Built once at index-build time and read-only thereafter.
type WordSet map[string]struct{}

// Build constructs a WordSet from a record set.
func Build(records []catalog.Record) WordSet {
	ws := make(WordSet)
	for _, rec := range records {
		for _, tok := range rec.Tokens {
			ws[tok] = struct{}{}
		}
	}
	return ws
}

// Contains reports whether the word set contains w.
func (ws WordSet) Contains(w string) bool {
	_, ok := ws[w]
	return ok
}

// AnyPresent reports whether any of words appears in the word set.
func (ws WordSet) AnyPresent(words []string) bool {
	for _, w := range words {
		if ws.Contains(w) {
			return true
		}
	}
	return false
}
