package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSearchMatchesTitleAndFeatures(t *testing.T) {
	t.Parallel()

	h, err := LoadEmbedded()
	require.NoError(t, err)

	// "trucker" appears in two titles; "wicking" only in i3038's features.
	result := h.Search("trucker")
	require.Equal(t, 2, result.Matches)

	result = h.Search("wicking")
	require.Equal(t, 1, result.Matches)
	require.Equal(t, "i3038", result.Products[0].ID)
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	h, err := LoadEmbedded()
	require.NoError(t, err)

	lower := h.Search("wool")
	upper := h.Search("  WOOL ")
	require.Equal(t, lower.Matches, upper.Matches)
	require.Equal(t, "wool", upper.Keyword)
	require.Equal(t, 1, upper.Matches)
	require.Equal(t, "i7256", upper.Products[0].ID)
}

func TestSearchPreservesCatalogOrder(t *testing.T) {
	t.Parallel()

	h, err := LoadEmbedded()
	require.NoError(t, err)

	result := h.Search("performance")
	var ids []string
	for _, p := range result.Products {
		ids = append(ids, p.ID)
	}
	require.Equal(t, []string{"i3038", "i9010"}, ids)
}

func TestSearchCountAlwaysEqualsResults(t *testing.T) {
	t.Parallel()

	h, err := LoadEmbedded()
	require.NoError(t, err)

	for _, keyword := range []string{"cap", "mesh", "zzz-no-such-thing"} {
		result := h.Search(keyword)
		require.Equal(t, len(result.Products), result.Matches, "keyword %q", keyword)
	}
}

func TestSearchEmptyKeyword(t *testing.T) {
	t.Parallel()

	h, err := LoadEmbedded()
	require.NoError(t, err)

	for _, keyword := range []string{"", "   ", "\t"} {
		result := h.Search(keyword)
		require.Zero(t, result.Matches)
		require.Empty(t, result.Products)
	}
}

func TestSearchNoMatches(t *testing.T) {
	t.Parallel()

	h, err := LoadEmbedded()
	require.NoError(t, err)

	result := h.Search("fedora")
	require.Zero(t, result.Matches)
	require.Empty(t, result.Products)
}
