// Package catalog builds the immutable Offer/Product/Record catalog that
// every scorer and the ranker read from.
package catalog

// Program is the small enum of offer programs a deal can belong to.
type Program string

const (
	ProgramManufacturer Program = "MF"
	ProgramPersonalized Program = "PD"
	ProgramStoreCoupon  Program = "SC"
	ProgramLoyalty      Program = "LO"
)

// Offer is a single promotional deal. Offers are created once at load time
// and never mutated afterward.
type Offer struct {
	OfferID        string
	Name           string
	Description    string
	Category       string
	OfferPriceText string
	Program        Program
	DealType       string
	StartDate      int64 // epoch milliseconds
	EndDate        int64 // epoch milliseconds
	ImageURL       string
}
