package catalog

import (
	"encoding/json"
	"fmt"
)

// LoadError is returned when either input snapshot is malformed or missing
// a required field. It is fatal to startup (spec §7).
type LoadError struct {
	Source string // "deals" or "products"
	Reason string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("catalog: load %s snapshot: %s", e.Source, e.Reason)
}

// rawOffer mirrors the deals-snapshot JSON shape (spec §6).
type rawOffer struct {
	OfferID        string      `json:"offer_id"`
	Name           string      `json:"name"`
	Description    string      `json:"description"`
	Category       string      `json:"category"`
	OfferPrice     string      `json:"offer_price"`
	OfferPgm       string      `json:"offer_pgm"`
	DealType       string      `json:"deal_type"`
	StartDate      json.Number `json:"start_date"`
	EndDate        json.Number `json:"end_date"`
	ImageURL       string      `json:"image_url"`
}

// rawProduct mirrors the qualifying-products-snapshot JSON shape (spec §6).
type rawProduct struct {
	OfferID      string   `json:"offer_id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Department   string   `json:"department"`
	Aisle        string   `json:"aisle"`
	Shelf        string   `json:"shelf"`
	MemberPrice  *float64 `json:"member_price"`
	BasePrice    *float64 `json:"base_price"`
	ImageURL     string   `json:"image_url"`
}

// Load parses the two input documents and builds the joined Offer/Product
// lists plus one Record per (Offer, Product) pair, or one offer-only Record
// when an Offer has no qualifying products (spec §4.1).
//
// Offers are enumerated in input order; for each, its products (if any) are
// enumerated in input order. That order is deterministic and becomes each
// Record's RecordIndex.
func Load(dealsJSON, productsJSON []byte) ([]Offer, []Record, error) {
	var rawOffers []rawOffer
	if err := json.Unmarshal(dealsJSON, &rawOffers); err != nil {
		return nil, nil, &LoadError{Source: "deals", Reason: err.Error()}
	}

	var rawProducts []rawProduct
	if err := json.Unmarshal(productsJSON, &rawProducts); err != nil {
		return nil, nil, &LoadError{Source: "products", Reason: err.Error()}
	}

	productsByOffer := make(map[string][]rawProduct)
	for _, p := range rawProducts {
		if p.OfferID == "" {
			return nil, nil, &LoadError{Source: "products", Reason: "product missing offer_id"}
		}
		productsByOffer[p.OfferID] = append(productsByOffer[p.OfferID], p)
	}

	// offers is allocated at its final length up front: records hold a
	// pointer into this slice, which would dangle if a later append
	// triggered reallocation.
	offers := make([]Offer, len(rawOffers))
	for i, ro := range rawOffers {
		if ro.OfferID == "" {
			return nil, nil, &LoadError{Source: "deals", Reason: "offer missing offer_id"}
		}
		if ro.Name == "" {
			return nil, nil, &LoadError{Source: "deals", Reason: fmt.Sprintf("offer %s missing name", ro.OfferID)}
		}

		offers[i] = Offer{
			OfferID:        ro.OfferID,
			Name:           ro.Name,
			Description:    ro.Description,
			Category:       ro.Category,
			OfferPriceText: ro.OfferPrice,
			Program:        Program(ro.OfferPgm),
			DealType:       ro.DealType,
			StartDate:      numberOrZero(ro.StartDate),
			EndDate:        numberOrZero(ro.EndDate),
			ImageURL:       ro.ImageURL,
		}
	}

	var records []Record
	for i := range offers {
		offerPtr := &offers[i]
		products := productsByOffer[offerPtr.OfferID]
		if len(products) == 0 {
			rec := Record{Offer: offerPtr, HasProduct: false}
			rec.prepare()
			records = append(records, rec)
			continue
		}

		for _, rp := range products {
			rec := Record{
				Offer:      offerPtr,
				HasProduct: true,
				Product: Product{
					OfferID:     rp.OfferID,
					Name:        rp.Name,
					Description: rp.Description,
					Department:  rp.Department,
					Aisle:       rp.Aisle,
					Shelf:       rp.Shelf,
					MemberPrice: rp.MemberPrice,
					BasePrice:   rp.BasePrice,
					ImageURL:    rp.ImageURL,
				},
			}
			rec.prepare()
			records = append(records, rec)
		}
	}

	for i := range records {
		records[i].RecordIndex = i
	}

	return offers, records, nil
}

func numberOrZero(n json.Number) int64 {
	if n == "" {
		return 0
	}
	v, err := n.Int64()
	if err != nil {
		return 0
	}
	return v
}
