package domain

// PriceOffer is a single price quote attached to a catalog product.
// Promo is zero when the product is not on promotion.
type PriceOffer struct {
	Regular float64 `json:"regular"`
	Promo   float64 `json:"promo,omitempty"`
}

// CatalogProduct represents a grocery product returned by a retailer
// catalog search. It is read-only to the matching core: fetched fresh per
// run and never mutated.
type CatalogProduct struct {
	ProductID   string       `json:"productId"`
	UPC         string       `json:"upc,omitempty"`
	Description string       `json:"description"`
	Brand       string       `json:"brand,omitempty"`
	Categories  []string     `json:"categories,omitempty"`
	SizeLabel   string       `json:"sizeLabel,omitempty"`
	Offers      []PriceOffer `json:"offers,omitempty"`
	InStock     bool         `json:"inStock"`
}

// EffectivePrice returns the price a shopper would actually pay: the first
// offer's promo price when present, otherwise its regular price. ok is false
// when the product carries no resolvable price at this location.
func (p CatalogProduct) EffectivePrice() (float64, bool) {
	for _, offer := range p.Offers {
		if offer.Promo > 0 {
			return offer.Promo, true
		}
		if offer.Regular > 0 {
			return offer.Regular, true
		}
	}
	return 0, false
}

// OnPromo reports whether any offer carries a promotional price.
func (p CatalogProduct) OnPromo() bool {
	for _, offer := range p.Offers {
		if offer.Promo > 0 {
			return true
		}
	}
	return false
}
