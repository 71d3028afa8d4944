package ranker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spherical-ai/dealsearch-engine/internal/catalog"
	"github.com/spherical-ai/dealsearch-engine/internal/corpus"
	"github.com/spherical-ai/dealsearch-engine/internal/scoring"
)

const groceryDeals = `[
	{"offer_id":"D1","name":"Chocolate Bar Blowout","description":"Save big on chocolate","category":"Candy","offer_price":"$2.00 OFF","offer_pgm":"MF"},
	{"offer_id":"D2","name":"XYZAL Allergy 24ct","description":"Allergy relief","category":"Health","offer_price":"FREE","offer_pgm":"PD"},
	{"offer_id":"D3","name":"Morning Brew Coffee","description":"Whole bean coffee","category":"Beverages","offer_price":"$1.00 OFF","offer_pgm":"SC"}
]`

const groceryProducts = `[
	{"offer_id":"D1","name":"Hershey's Milk Chocolate","description":"Classic bar","department":"Candy"},
	{"offer_id":"D1","name":"Lindt Dark Chocolate","description":"70% cacao","department":"Candy"},
	{"offer_id":"D2","name":"XYZAL Tablets","description":"24 count","department":"Health"},
	{"offer_id":"D3","name":"Folgers Ground Coffee","description":"Medium roast","department":"Beverages"}
]`

func loadFixture(t *testing.T) []catalog.Record {
	t.Helper()
	_, records, err := catalog.Load([]byte(groceryDeals), []byte(groceryProducts))
	require.NoError(t, err)
	return records
}

// rankQuery runs the full keyword+fuzzy+semantic pipeline for a query
// against the fixture record set, exactly as the public search entry
// point would, without requiring an embedding backend: semantic scores
// are zeroed out since no vector index is built here.
func rankQuery(t *testing.T, query string, records []catalog.Record) []DealResult {
	t.Helper()
	words := corpus.Build(records)
	keyword := scoring.Keyword(query, records)
	fuzzy := scoring.Fuzzy(query, records)
	semantic := make([]float64, len(records))
	return Rank(query, records, keyword, fuzzy, semantic, words, DefaultTopK)
}

func TestRank_ChocolateQueryReturnsChocolateDealOnTop(t *testing.T) {
	records := loadFixture(t)
	results := rankQuery(t, "chocolate", records)
	require.NotEmpty(t, results)
	assert.Contains(t, strings.ToLower(results[0].Offer.Name), "chocolate")
	assert.Greater(t, results[0].Score, 0.8)
}

func TestRank_GibberishQueriesRejected(t *testing.T) {
	records := loadFixture(t)
	for _, q := range []string{"abcd", "asdf", "qwerty", "zzzzz"} {
		results := rankQuery(t, q, records)
		assert.Empty(t, results, "query %q should be rejected", q)
	}
}

func TestRank_CorpusWordAdmission(t *testing.T) {
	records := loadFixture(t)
	words := corpus.Build(records)
	for w := range words {
		results := rankQuery(t, w, records)
		assert.NotEmpty(t, results, "corpus word %q should admit a non-empty result", w)
	}
}

func TestRank_TypoRecoveryMonotonicity(t *testing.T) {
	records := loadFixture(t)
	pairs := [][2]string{
		{"chocolate", "choclate"},
		{"coffee", "cofee"},
	}
	for _, p := range pairs {
		correct := rankQuery(t, p[0], records)
		typo := rankQuery(t, p[1], records)
		require.NotEmpty(t, correct)
		if len(typo) > 0 {
			assert.GreaterOrEqual(t, correct[0].Score, typo[0].Score)
		}
	}
}

func TestRank_EmptyQueryReturnsEmpty(t *testing.T) {
	records := loadFixture(t)
	assert.Empty(t, rankQuery(t, "", records))
}

func TestRank_OfferNameMatchOutranksDescriptionOnlyMatch(t *testing.T) {
	records, err := catalogLoad(t,
		`[{"offer_id":"D1","name":"Coffee Deal","description":"general savings"},
		  {"offer_id":"D2","name":"General Savings","description":"good coffee here"}]`,
		`[]`,
	)
	require.NoError(t, err)

	results := rankQuery(t, "coffee", records)
	require.NotEmpty(t, results)
	assert.Equal(t, "D1", results[0].Offer.OfferID)
}

func catalogLoad(t *testing.T, deals, products string) ([]catalog.Record, error) {
	t.Helper()
	_, records, err := catalog.Load([]byte(deals), []byte(products))
	return records, err
}
