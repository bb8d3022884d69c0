package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const testHeader = "id,title,features,sizing,available_colors," +
	"flat_embroidery_24,flat_embroidery_48,flat_embroidery_96,flat_embroidery_144,flat_embroidery_576,flat_embroidery_2500+," +
	"3d_embroidery_24,3d_embroidery_48,3d_embroidery_96,3d_embroidery_144,3d_embroidery_576,3d_embroidery_2500+"

func loadTestCatalog(t *testing.T, rows ...string) *Handle {
	t.Helper()
	src := testHeader + "\n" + strings.Join(rows, "\n") + "\n"
	h, err := Load(strings.NewReader(src))
	require.NoError(t, err)
	return h
}

func TestLoadEmbedded(t *testing.T) {
	t.Parallel()

	h, err := LoadEmbedded()
	require.NoError(t, err)
	require.Greater(t, h.Len(), 0)

	// Round-trip: every loaded product resolves back to itself by ID.
	for _, p := range h.All() {
		got, err := h.GetByID(p.ID)
		require.NoError(t, err)
		require.Same(t, p, got)
		require.NotEmpty(t, p.Title)
		require.NotEmpty(t, p.EmbroideryTypes())
	}
}

func TestGetByIDPrefixNormalization(t *testing.T) {
	t.Parallel()

	h, err := LoadEmbedded()
	require.NoError(t, err)

	withPrefix, err := h.GetByID("i3038")
	require.NoError(t, err)
	bare, err := h.GetByID("3038")
	require.NoError(t, err)
	require.Same(t, withPrefix, bare)

	padded, err := h.GetByID("  I3038 ")
	require.NoError(t, err)
	require.Same(t, withPrefix, padded)
}

func TestGetByIDNotFound(t *testing.T) {
	t.Parallel()

	h, err := LoadEmbedded()
	require.NoError(t, err)

	_, err = h.GetByID("i9999")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "i9999", notFound.ID)
}

func TestAllPreservesLoadOrder(t *testing.T) {
	t.Parallel()

	h := loadTestCatalog(t,
		"i300,Cap C,mesh back,OSFM,Black,10.00,9.00,8.00,7.50,7.00,6.50,,,,,,",
		"i100,Cap A,mesh back,OSFM,Black,10.00,9.00,8.00,7.50,7.00,6.50,,,,,,",
		"i200,Cap B,mesh back,OSFM,Black,10.00,9.00,8.00,7.50,7.00,6.50,,,,,,",
	)

	var ids []string
	for _, p := range h.All() {
		ids = append(ids, p.ID)
	}
	require.Equal(t, []string{"i300", "i100", "i200"}, ids)
	require.Equal(t, []string{"i300", "i100"}, h.SampleIDs(2))
}

func TestLoadSplitsColors(t *testing.T) {
	t.Parallel()

	h := loadTestCatalog(t,
		"i100,Cap A,mesh back,OSFM,Black; Navy ;;Red/White,10.00,9.00,8.00,7.50,7.00,6.50,,,,,,",
	)

	p, err := h.GetByID("i100")
	require.NoError(t, err)
	require.Equal(t, []string{"Black", "Navy", "Red/White"}, p.AvailableColors)
}

func TestLoadRejectsDuplicateID(t *testing.T) {
	t.Parallel()

	src := testHeader + "\n" +
		"i100,Cap A,mesh,OSFM,Black,10.00,9.00,8.00,7.50,7.00,6.50,,,,,,\n" +
		"100,Cap B,mesh,OSFM,Black,10.00,9.00,8.00,7.50,7.00,6.50,,,,,,\n"

	_, err := Load(strings.NewReader(src))
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	require.Contains(t, loadErr.Error(), "duplicate product id")
	require.Equal(t, 3, loadErr.Line)
}

func TestLoadRejectsMalformedPrice(t *testing.T) {
	t.Parallel()

	for name, price := range map[string]string{
		"non-numeric": "abc",
		"zero":        "0",
		"negative":    "-4.50",
	} {
		t.Run(name, func(t *testing.T) {
			src := testHeader + "\n" +
				"i100,Cap A,mesh,OSFM,Black," + price + ",9.00,8.00,7.50,7.00,6.50,,,,,,\n"
			_, err := Load(strings.NewReader(src))
			var loadErr *LoadError
			require.ErrorAs(t, err, &loadErr)
		})
	}
}

func TestLoadRejectsProductWithoutTiers(t *testing.T) {
	t.Parallel()

	src := testHeader + "\n" +
		"i100,Cap A,mesh,OSFM,Black,,,,,,,,,,,,\n"
	_, err := Load(strings.NewReader(src))
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	require.Contains(t, loadErr.Error(), "no pricing tiers")
}

func TestLoadRejectsMissingColumnsAndEmptySource(t *testing.T) {
	t.Parallel()

	_, err := Load(strings.NewReader("id,title\ni100,Cap A\n"))
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	require.Contains(t, loadErr.Error(), "missing required column")

	_, err = Load(strings.NewReader(testHeader + "\n"))
	require.ErrorAs(t, err, &loadErr)
	require.Contains(t, loadErr.Error(), "no products")
}

func TestLoadSkipsAbsentTierCells(t *testing.T) {
	t.Parallel()

	h := loadTestCatalog(t,
		"i100,Flat Only Visor,terry sweatband,OSFM,White,11.25,10.40,9.60,9.10,8.60,8.05,,,,,,",
	)

	p, err := h.GetByID("i100")
	require.NoError(t, err)
	require.Equal(t, []EmbroideryType{EmbroideryFlat}, p.EmbroideryTypes())
	require.Len(t, p.Pricing[EmbroideryFlat], 6)
	require.Empty(t, p.Pricing[Embroidery3D])
}
