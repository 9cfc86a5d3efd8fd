package grocer

import (
	"strings"

	"github.com/grocermatch/backend/internal/domain"
)

// The retailer's JSON shape is not stable: price can sit on the item
// entry or at the product root, size can be "size" or "customerFacingSize",
// and stock arrives as a level string. Everything is normalized here so
// the rest of the core never branches on source-specific shapes.

type searchResponse struct {
	Data []productPayload `json:"data"`
}

type productPayload struct {
	ProductID   string        `json:"productId"`
	UPC         string        `json:"upc"`
	Description string        `json:"description"`
	Brand       string        `json:"brand"`
	Categories  []string      `json:"categories"`
	Items       []itemEntry   `json:"items"`
	Price       *pricePayload `json:"price"` // legacy root-level shape
	Size        string        `json:"size"`  // legacy root-level shape
}

type itemEntry struct {
	Size               string            `json:"size"`
	CustomerFacingSize string            `json:"customerFacingSize"`
	Price              *pricePayload     `json:"price"`
	Inventory          *inventoryPayload `json:"inventory"`
}

type pricePayload struct {
	Regular float64 `json:"regular"`
	Promo   float64 `json:"promo"`
}

type inventoryPayload struct {
	StockLevel string `json:"stockLevel"`
}

// mapSearchResponse converts a raw catalog payload into the canonical
// product model. Products with no description are dropped; they cannot be
// scored and only pollute dedup.
func mapSearchResponse(payload searchResponse) []domain.CatalogProduct {
	products := make([]domain.CatalogProduct, 0, len(payload.Data))
	for _, raw := range payload.Data {
		if strings.TrimSpace(raw.Description) == "" {
			continue
		}
		products = append(products, mapProduct(raw))
	}
	return products
}

func mapProduct(raw productPayload) domain.CatalogProduct {
	product := domain.CatalogProduct{
		ProductID:   raw.ProductID,
		UPC:         raw.UPC,
		Description: strings.TrimSpace(raw.Description),
		Brand:       strings.TrimSpace(raw.Brand),
		Categories:  raw.Categories,
		SizeLabel:   firstSize(raw),
		InStock:     inStock(raw),
	}

	for _, item := range raw.Items {
		if offer, ok := mapOffer(item.Price); ok {
			product.Offers = append(product.Offers, offer)
		}
	}
	// Root-level price is the older payload shape; only used when no item
	// carried one.
	if len(product.Offers) == 0 {
		if offer, ok := mapOffer(raw.Price); ok {
			product.Offers = append(product.Offers, offer)
		}
	}
	return product
}

func mapOffer(price *pricePayload) (domain.PriceOffer, bool) {
	if price == nil || (price.Regular <= 0 && price.Promo <= 0) {
		return domain.PriceOffer{}, false
	}
	return domain.PriceOffer{Regular: price.Regular, Promo: price.Promo}, true
}

func firstSize(raw productPayload) string {
	for _, item := range raw.Items {
		if item.Size != "" {
			return item.Size
		}
		if item.CustomerFacingSize != "" {
			return item.CustomerFacingSize
		}
	}
	return raw.Size
}

// inStock treats a product as available unless the payload explicitly
// says otherwise; many listings omit inventory entirely.
func inStock(raw productPayload) bool {
	for _, item := range raw.Items {
		if item.Inventory == nil {
			continue
		}
		switch strings.ToUpper(item.Inventory.StockLevel) {
		case "TEMPORARILY_OUT_OF_STOCK", "OUT_OF_STOCK":
			return false
		}
	}
	return true
}
