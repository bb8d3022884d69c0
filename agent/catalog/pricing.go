package catalog

import (
	"github.com/shopspring/decimal"
)

// Currency of every catalog price. There is no conversion.
const Currency = "USD"

// Quote is the result of a pricing resolution.
type Quote struct {
	ProductID      string          `json:"product_id"`
	ProductTitle   string          `json:"product_title"`
	EmbroideryType EmbroideryType  `json:"embroidery_type"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	Currency       string          `json:"currency"`
}

// Price resolves the unit and total price for a product, embroidery type,
// and quantity. Tier selection is a floor lookup: among breakpoints at or
// below the quantity, the largest wins, so any quantity between two
// breakpoints is priced at the lower tier and anything above the highest
// breakpoint is priced at the highest tier.
//
// Price is a pure function of its arguments and the read-only catalog.
func (h *Handle) Price(rawID string, embType EmbroideryType, quantity int) (*Quote, error) {
	product, err := h.GetByID(rawID)
	if err != nil {
		return nil, err
	}

	if quantity <= 0 {
		return nil, &InvalidQuantityError{Quantity: quantity}
	}

	tiers, ok := product.Pricing[embType]
	if !ok || len(tiers) == 0 {
		return nil, &InvalidEmbroideryTypeError{
			ID:        product.ID,
			Requested: string(embType),
			Valid:     product.EmbroideryTypes(),
		}
	}

	if quantity < tiers[0].MinQuantity {
		return nil, &BelowMinimumOrderError{
			ID:             product.ID,
			EmbroideryType: embType,
			Quantity:       quantity,
			Minimum:        tiers[0].MinQuantity,
		}
	}

	tier := tiers[0]
	for _, t := range tiers[1:] {
		if t.MinQuantity > quantity {
			break
		}
		tier = t
	}

	total := tier.UnitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
	return &Quote{
		ProductID:      product.ID,
		ProductTitle:   product.Title,
		EmbroideryType: embType,
		Quantity:       quantity,
		UnitPrice:      tier.UnitPrice,
		TotalPrice:     total,
		Currency:       Currency,
	}, nil
}
