package catalog

import "strings"

// SearchResult carries the matched products in catalog load order plus the
// total match count. No truncation happens at this layer; Matches always
// equals len(Products).
type SearchResult struct {
	Keyword  string
	Matches  int
	Products []*Product
}

// Search resolves a keyword against the cached per-product search text
// (lower-cased title and features). Matching is a plain case-insensitive
// substring test with no relevance ranking, so results are deterministic.
// An empty or whitespace-only keyword yields an empty result, not an error.
func (h *Handle) Search(keyword string) SearchResult {
	normalized := strings.ToLower(strings.TrimSpace(keyword))
	result := SearchResult{Keyword: normalized}
	if normalized == "" {
		return result
	}

	for _, p := range h.products {
		if p.MatchesKeyword(normalized) {
			result.Products = append(result.Products, p)
		}
	}
	result.Matches = len(result.Products)
	return result
}
