package tool

import (
	catalogx "github.com/tanpawarit/NexusFlow-Catalog-Agent/agent/catalog"
)

type ProductInfoOutput struct {
	ProductID       string                                           `json:"product_id"`
	Title           string                                           `json:"title"`
	Features        string                                           `json:"features"`
	Sizing          string                                           `json:"sizing"`
	Pricing         map[catalogx.EmbroideryType][]catalogx.PriceTier `json:"pricing"`
	AvailableColors []string                                         `json:"available_colors"`
}

// ProductSummary is the trimmed shape used in search results: features are
// cut to a snippet so the model gets a scannable list.
type ProductSummary struct {
	ProductID string `json:"product_id"`
	Title     string `json:"title"`
	Features  string `json:"features"`
}

type SearchOutput struct {
	Keyword  string           `json:"keyword"`
	Matches  int              `json:"matches"`
	Products []ProductSummary `json:"products,omitempty"`
}

type PricingOutput struct {
	ProductID      string                  `json:"product_id"`
	ProductTitle   string                  `json:"product_title"`
	EmbroideryType catalogx.EmbroideryType `json:"embroidery_type"`
	Quantity       int                     `json:"quantity"`
	UnitPrice      float64                 `json:"unit_price"`
	TotalPrice     float64                 `json:"total_price"`
	Currency       string                  `json:"currency"`
}

// ProductListing is the catalog-dump shape: full descriptive fields, no
// pricing tables (those are fetched per product).
type ProductListing struct {
	ProductID       string   `json:"product_id"`
	Title           string   `json:"title"`
	Features        string   `json:"features"`
	Sizing          string   `json:"sizing"`
	AvailableColors []string `json:"available_colors"`
}

type AllProductsOutput struct {
	TotalProducts int              `json:"total_products"`
	Products      []ProductListing `json:"products"`
}
