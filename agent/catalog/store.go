package catalog

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

//go:embed data/products.csv
var embeddedProducts []byte

// tierQuantities are the breakpoint columns of the catalog source, ascending.
var tierQuantities = []int{24, 48, 96, 144, 576, 2500}

var requiredColumns = []string{"id", "title", "features", "sizing", "available_colors"}

// Handle is the immutable, process-wide catalog. It is constructed once by
// Load and read concurrently without locking for the rest of the process
// lifetime; no mutation operations exist after load.
type Handle struct {
	products []*Product
	byID     map[string]*Product
}

// Load ingests the tabular catalog source and builds the lookup and search
// structures. It is the sole ingestion and schema-validation point; any
// malformed row aborts the load with a *LoadError.
func Load(r io.Reader) (*Handle, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, &LoadError{Err: fmt.Errorf("read header: %w", err)}
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, &LoadError{Err: fmt.Errorf("missing required column %q", name)}
		}
	}

	h := &Handle{
		byID: make(map[string]*Product),
	}

	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &LoadError{Line: line, Err: err}
		}

		product, err := parseProduct(record, columns)
		if err != nil {
			return nil, &LoadError{Line: line, Err: err}
		}
		if _, exists := h.byID[product.ID]; exists {
			return nil, &LoadError{Line: line, Err: fmt.Errorf("duplicate product id %q", product.ID)}
		}

		h.products = append(h.products, product)
		h.byID[product.ID] = product
	}

	if len(h.products) == 0 {
		return nil, &LoadError{Err: errors.New("catalog source contains no products")}
	}
	return h, nil
}

// LoadEmbedded loads the dataset compiled into the binary.
func LoadEmbedded() (*Handle, error) {
	return Load(bytes.NewReader(embeddedProducts))
}

// GetByID resolves a product by identifier, accepting IDs with or without
// the "i" prefix. Returns *NotFoundError for unknown products.
func (h *Handle) GetByID(rawID string) (*Product, error) {
	id := NormalizeID(rawID)
	if p, ok := h.byID[id]; ok {
		return p, nil
	}
	return nil, &NotFoundError{ID: id}
}

// All returns every product in load order. The returned slice is shared;
// callers must treat it as read-only.
func (h *Handle) All() []*Product {
	return h.products
}

// Len reports the catalog size.
func (h *Handle) Len() int {
	return len(h.products)
}

// SampleIDs returns up to n product IDs in load order, used to make
// not-found errors actionable.
func (h *Handle) SampleIDs(n int) []string {
	if n > len(h.products) {
		n = len(h.products)
	}
	ids := make([]string, 0, n)
	for _, p := range h.products[:n] {
		ids = append(ids, p.ID)
	}
	return ids
}

func parseProduct(record []string, columns map[string]int) (*Product, error) {
	field := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	id := NormalizeID(field("id"))
	if id == "" {
		return nil, errors.New("product id is empty")
	}
	title := field("title")
	if title == "" {
		return nil, fmt.Errorf("product %s has no title", id)
	}

	p := &Product{
		ID:              id,
		Title:           title,
		Features:        field("features"),
		Sizing:          field("sizing"),
		AvailableColors: splitColors(field("available_colors")),
		Pricing:         make(map[EmbroideryType][]PriceTier, 2),
	}

	for _, embType := range []EmbroideryType{EmbroideryFlat, Embroidery3D} {
		tiers, err := parseTiers(embType, field, columns)
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", id, err)
		}
		if len(tiers) > 0 {
			p.Pricing[embType] = tiers
		}
	}
	if len(p.Pricing) == 0 {
		return nil, fmt.Errorf("product %s has no pricing tiers", id)
	}

	p.searchText = strings.ToLower(p.Title + " " + p.Features)
	return p, nil
}

func parseTiers(embType EmbroideryType, field func(string) string, columns map[string]int) ([]PriceTier, error) {
	tiers := make([]PriceTier, 0, len(tierQuantities))
	for _, qty := range tierQuantities {
		name := tierColumn(embType, qty)
		if _, ok := columns[name]; !ok {
			continue
		}
		raw := field(name)
		if raw == "" {
			continue
		}
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("column %s: price %q does not parse: %w", name, raw, err)
		}
		if !price.IsPositive() {
			return nil, fmt.Errorf("column %s: price must be positive, got %s", name, price)
		}
		tiers = append(tiers, PriceTier{MinQuantity: qty, UnitPrice: price})
	}
	return tiers, nil
}

func tierColumn(embType EmbroideryType, qty int) string {
	suffix := strconv.Itoa(qty)
	if qty == tierQuantities[len(tierQuantities)-1] {
		suffix += "+"
	}
	return fmt.Sprintf("%s_embroidery_%s", embType, suffix)
}

func splitColors(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ";")
	colors := make([]string, 0, len(parts))
	for _, part := range parts {
		if c := strings.TrimSpace(part); c != "" {
			colors = append(colors, c)
		}
	}
	return colors
}
