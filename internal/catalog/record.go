package catalog

import "strings"

// Record is the flat, searchable unit every scorer operates over. One
// Record is built per (Offer, Product) pair, or one per Offer when it has
// no qualifying products. RecordIndex is the stable, 0-based position of
// the record in the owning Index's record slice and is the key every scorer
// and the ranker use to align score vectors.
type Record struct {
	RecordIndex int
	Offer       *Offer
	HasProduct  bool
	Product     Product

	// SearchText is the space-joined concatenation used by the keyword
	// scorer's all-words-present check and, via Tokens, by the corpus word
	// set.
	SearchText string

	// Lowercased fields, precomputed at build time so query-time scoring
	// never re-lowercases the same text on every request. Mirrors the
	// original system's _prepare_records_for_search step.
	offerNameLower string
	productNameLower string
	offerDescLower string
	productDescLower string
	offerCategoryLower string
	productDeptLower string
	productAisleLower string
	productShelfLower string
	searchTextLower string

	// Tokens is the lowercased whitespace split of SearchText, used by the
	// corpus word set (spec §4.7).
	Tokens []string
}

// EmbeddingText is the text a Record contributes to the embedding index:
// offer name, description, category, then (if present) product name,
// description, and department, space-separated (spec §4.2).
func (r *Record) EmbeddingText() string {
	parts := []string{r.Offer.Name, r.Offer.Description, r.Offer.Category}
	if r.HasProduct {
		parts = append(parts, r.Product.Name, r.Product.Description, r.Product.Department)
	}
	return joinNonEmpty(parts)
}

// OfferNameLower returns the precomputed lowercase offer name.
func (r *Record) OfferNameLower() string { return r.offerNameLower }

// ProductNameLower returns the precomputed lowercase product name.
func (r *Record) ProductNameLower() string { return r.productNameLower }

// OfferDescriptionLower returns the precomputed lowercase offer description.
func (r *Record) OfferDescriptionLower() string { return r.offerDescLower }

// ProductDescriptionLower returns the precomputed lowercase product description.
func (r *Record) ProductDescriptionLower() string { return r.productDescLower }

// OfferCategoryLower returns the precomputed lowercase offer category.
func (r *Record) OfferCategoryLower() string { return r.offerCategoryLower }

// ProductDepartmentLower returns the precomputed lowercase product department.
func (r *Record) ProductDepartmentLower() string { return r.productDeptLower }

// ProductAisleLower returns the precomputed lowercase product aisle.
func (r *Record) ProductAisleLower() string { return r.productAisleLower }

// ProductShelfLower returns the precomputed lowercase product shelf.
func (r *Record) ProductShelfLower() string { return r.productShelfLower }

// SearchTextLower returns the precomputed lowercase search text.
func (r *Record) SearchTextLower() string { return r.searchTextLower }

// prepare fills in the precomputed lowercase fields and tokens. Called once
// by the loader when a Record is built.
func (r *Record) prepare() {
	r.offerNameLower = strings.ToLower(r.Offer.Name)
	r.offerDescLower = strings.ToLower(r.Offer.Description)
	r.offerCategoryLower = strings.ToLower(r.Offer.Category)
	if r.HasProduct {
		r.productNameLower = strings.ToLower(r.Product.Name)
		r.productDescLower = strings.ToLower(r.Product.Description)
		r.productDeptLower = strings.ToLower(r.Product.Department)
		r.productAisleLower = strings.ToLower(r.Product.Aisle)
		r.productShelfLower = strings.ToLower(r.Product.Shelf)
	}

	searchParts := []string{
		r.Offer.Name,
		r.Offer.Description,
		r.Offer.Category,
	}
	if r.HasProduct {
		searchParts = append(searchParts, r.Product.Name, r.Product.Description, r.Product.Department, r.Product.Shelf, r.Product.Aisle)
	}
	r.SearchText = joinNonEmpty(searchParts)
	r.searchTextLower = strings.ToLower(r.SearchText)
	r.Tokens = strings.Fields(r.searchTextLower)
}

func joinNonEmpty(parts []string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ")
}
