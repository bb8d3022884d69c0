package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// EmbroideryType selects which tier table applies to a product.
type EmbroideryType string

const (
	EmbroideryFlat EmbroideryType = "flat"
	Embroidery3D   EmbroideryType = "3d"
)

// PriceTier is one quantity breakpoint. A tier applies to any order whose
// quantity is at least MinQuantity, until the next breakpoint takes over.
type PriceTier struct {
	MinQuantity int             `json:"min_quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// Product is one catalog row. Products are built once at load time and are
// never mutated afterwards, so they are safe to hand out by pointer.
type Product struct {
	ID              string                        `json:"product_id"`
	Title           string                        `json:"title"`
	Features        string                        `json:"features"`
	Sizing          string                        `json:"sizing"`
	AvailableColors []string                      `json:"available_colors"`
	Pricing         map[EmbroideryType][]PriceTier `json:"pricing"`

	// Lower-cased title+features, cached at load for substring search.
	searchText string
}

// EmbroideryTypes returns the types this product can be priced for,
// in a fixed flat-before-3d order.
func (p *Product) EmbroideryTypes() []EmbroideryType {
	types := make([]EmbroideryType, 0, 2)
	for _, t := range []EmbroideryType{EmbroideryFlat, Embroidery3D} {
		if len(p.Pricing[t]) > 0 {
			types = append(types, t)
		}
	}
	return types
}

// MatchesKeyword reports whether the normalized keyword occurs in the
// product's cached search text. The keyword must already be lower-cased.
func (p *Product) MatchesKeyword(keyword string) bool {
	return keyword != "" && strings.Contains(p.searchText, keyword)
}

// NormalizeID canonicalizes a product identifier. Catalog IDs carry an "i"
// prefix ("i3038"), but callers routinely pass the bare number ("3038").
func NormalizeID(raw string) string {
	id := strings.ToLower(strings.TrimSpace(raw))
	if id == "" {
		return ""
	}
	if !strings.HasPrefix(id, "i") {
		id = "i" + id
	}
	return id
}
