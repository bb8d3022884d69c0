package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPriceFloorTierSelection(t *testing.T) {
	t.Parallel()

	h, err := LoadEmbedded()
	require.NoError(t, err)

	tests := []struct {
		name      string
		quantity  int
		unitPrice string
		total     string
	}{
		{"exact lowest breakpoint", 24, "17.50", "420.00"},
		{"between 48 and 96 floors to 48", 70, "15.75", "1102.50"},
		{"exact mid breakpoint", 96, "14.25", "1368.00"},
		{"one below next breakpoint", 143, "14.25", "2037.75"},
		{"exact top breakpoint", 2500, "11.90", "29750.00"},
		{"above top breakpoint stays at top tier", 5000, "11.90", "59500.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			quote, err := h.Price("i3038", EmbroideryFlat, tt.quantity)
			require.NoError(t, err)
			require.Equal(t, "i3038", quote.ProductID)
			require.Equal(t, EmbroideryFlat, quote.EmbroideryType)
			require.Equal(t, tt.quantity, quote.Quantity)
			require.Equal(t, tt.unitPrice, quote.UnitPrice.StringFixed(2))
			require.Equal(t, tt.total, quote.TotalPrice.StringFixed(2))
			require.Equal(t, "USD", quote.Currency)
		})
	}
}

func TestPriceBelowMinimumOrder(t *testing.T) {
	t.Parallel()

	h, err := LoadEmbedded()
	require.NoError(t, err)

	_, err = h.Price("i3038", EmbroideryFlat, 10)
	var belowMin *BelowMinimumOrderError
	require.ErrorAs(t, err, &belowMin)
	require.Equal(t, "i3038", belowMin.ID)
	require.Equal(t, 10, belowMin.Quantity)
	require.Equal(t, 24, belowMin.Minimum)
}

func TestPriceInvalidQuantity(t *testing.T) {
	t.Parallel()

	h, err := LoadEmbedded()
	require.NoError(t, err)

	for _, qty := range []int{0, -5} {
		_, err := h.Price("i3038", EmbroideryFlat, qty)
		var invalidQty *InvalidQuantityError
		require.ErrorAs(t, err, &invalidQty)
		require.Equal(t, qty, invalidQty.Quantity)
	}
}

func TestPriceInvalidEmbroideryType(t *testing.T) {
	t.Parallel()

	h, err := LoadEmbedded()
	require.NoError(t, err)

	// i7041 carries both embroidery types; "4d" is not one of them.
	_, err = h.Price("i7041", EmbroideryType("4d"), 48)
	var invalidType *InvalidEmbroideryTypeError
	require.ErrorAs(t, err, &invalidType)
	require.Equal(t, "i7041", invalidType.ID)
	require.Equal(t, "4d", invalidType.Requested)
	require.Equal(t, []EmbroideryType{EmbroideryFlat, Embroidery3D}, invalidType.Valid)
}

func TestPriceFlatOnlyProductRejects3D(t *testing.T) {
	t.Parallel()

	h, err := LoadEmbedded()
	require.NoError(t, err)

	// i2310 has no 3d tiers at all.
	_, err = h.Price("i2310", Embroidery3D, 48)
	var invalidType *InvalidEmbroideryTypeError
	require.ErrorAs(t, err, &invalidType)
	require.Equal(t, []EmbroideryType{EmbroideryFlat}, invalidType.Valid)
}

func TestPriceUnknownProduct(t *testing.T) {
	t.Parallel()

	h, err := LoadEmbedded()
	require.NoError(t, err)

	_, err = h.Price("i9999", EmbroideryFlat, 48)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestPriceNormalizesID(t *testing.T) {
	t.Parallel()

	h, err := LoadEmbedded()
	require.NoError(t, err)

	quote, err := h.Price("3038", EmbroideryFlat, 24)
	require.NoError(t, err)
	require.Equal(t, "i3038", quote.ProductID)
}

func TestPriceRoundsTotalHalfUp(t *testing.T) {
	t.Parallel()

	// Sub-cent unit prices must round away in the total, not accumulate.
	h := loadTestCatalog(t,
		"i100,Cap A,mesh,OSFM,Black,14.125,13.005,12.00,11.00,10.00,9.00,,,,,,",
	)

	quote, err := h.Price("i100", EmbroideryFlat, 25)
	require.NoError(t, err)
	// 14.125 * 25 = 353.125 -> 353.13
	require.Equal(t, "353.13", quote.TotalPrice.StringFixed(2))

	quote, err = h.Price("i100", EmbroideryFlat, 49)
	require.NoError(t, err)
	// 13.005 * 49 = 637.245 -> 637.25
	require.Equal(t, "637.25", quote.TotalPrice.StringFixed(2))
}
