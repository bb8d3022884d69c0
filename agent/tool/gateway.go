package tool

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	catalogx "github.com/tanpawarit/NexusFlow-Catalog-Agent/agent/catalog"
	contractx "github.com/tanpawarit/NexusFlow-Catalog-Agent/agent/contract"
)

// featureSnippetLength bounds the features text in search summaries; the
// full text is only returned by get_product_info and get_all_products.
const featureSnippetLength = 100

// sampleIDCount is how many known product IDs a not-found error suggests.
const sampleIDCount = 10

// Gateway exposes the closed set of catalog operations. Every operation is
// read-only against the catalog handle, so a single Gateway is safe for
// concurrent use.
type Gateway struct {
	catalog *catalogx.Handle
}

func NewGateway(h *catalogx.Handle) (*Gateway, error) {
	if h == nil {
		return nil, errors.New("catalog handle is required")
	}
	return &Gateway{catalog: h}, nil
}

// Executor adapts the gateway to the tool-invocation signature the
// assistant loop binds against. Failures stay in-band as ToolResult errors.
type Executor func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error)

func (g *Gateway) Executor() Executor {
	return func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error) {
		return g.Execute(ctx, contractx.ToolRequest{Tool: tool, Args: args}), nil
	}
}

// Execute dispatches one tool invocation. The operation set is closed;
// anything else is a validation error, as is a malformed argument record —
// malformed calls never reach the catalog components.
func (g *Gateway) Execute(ctx context.Context, req contractx.ToolRequest) contractx.ToolResult {
	switch req.Tool {
	case contractx.ToolGetProductInfo:
		return g.getProductInfo(req)
	case contractx.ToolSearchProducts:
		return g.searchProducts(req)
	case contractx.ToolGetProductPricing:
		return g.getProductPricing(req)
	case contractx.ToolGetAllProducts:
		return g.getAllProducts(req)
	default:
		return validationError(req.Tool, fmt.Sprintf("unknown tool %q", req.Tool), nil)
	}
}

func (g *Gateway) getProductInfo(req contractx.ToolRequest) contractx.ToolResult {
	productID, err := stringArg(req.Args, "product_id")
	if err != nil {
		return validationError(req.Tool, err.Error(), nil)
	}

	product, err := g.catalog.GetByID(productID)
	if err != nil {
		return g.catalogError(req.Tool, err)
	}

	return okResult(req.Tool, ProductInfoOutput{
		ProductID:       product.ID,
		Title:           product.Title,
		Features:        product.Features,
		Sizing:          product.Sizing,
		Pricing:         product.Pricing,
		AvailableColors: product.AvailableColors,
	})
}

func (g *Gateway) searchProducts(req contractx.ToolRequest) contractx.ToolResult {
	keyword, err := stringArg(req.Args, "keyword")
	if err != nil {
		return validationError(req.Tool, err.Error(), nil)
	}

	result := g.catalog.Search(keyword)
	out := SearchOutput{
		Keyword: result.Keyword,
		Matches: result.Matches,
	}
	for _, p := range result.Products {
		out.Products = append(out.Products, ProductSummary{
			ProductID: p.ID,
			Title:     p.Title,
			Features:  snippet(p.Features),
		})
	}
	return okResult(req.Tool, out)
}

func (g *Gateway) getProductPricing(req contractx.ToolRequest) contractx.ToolResult {
	productID, err := stringArg(req.Args, "product_id")
	if err != nil {
		return validationError(req.Tool, err.Error(), nil)
	}
	embType, err := embroideryArg(req.Args)
	if err != nil {
		return validationError(req.Tool, err.Error(), nil)
	}
	quantity, err := quantityArg(req.Args)
	if err != nil {
		return validationError(req.Tool, err.Error(), nil)
	}

	quote, err := g.catalog.Price(productID, embType, quantity)
	if err != nil {
		return g.catalogError(req.Tool, err)
	}

	return okResult(req.Tool, PricingOutput{
		ProductID:      quote.ProductID,
		ProductTitle:   quote.ProductTitle,
		EmbroideryType: quote.EmbroideryType,
		Quantity:       quote.Quantity,
		UnitPrice:      quote.UnitPrice.InexactFloat64(),
		TotalPrice:     quote.TotalPrice.InexactFloat64(),
		Currency:       quote.Currency,
	})
}

func (g *Gateway) getAllProducts(req contractx.ToolRequest) contractx.ToolResult {
	all := g.catalog.All()
	out := AllProductsOutput{
		TotalProducts: len(all),
		Products:      make([]ProductListing, 0, len(all)),
	}
	for _, p := range all {
		out.Products = append(out.Products, ProductListing{
			ProductID:       p.ID,
			Title:           p.Title,
			Features:        p.Features,
			Sizing:          p.Sizing,
			AvailableColors: p.AvailableColors,
		})
	}
	return okResult(req.Tool, out)
}

// catalogError converts the catalog error taxonomy into the stable external
// error shape. This is the single conversion point; lower components never
// swallow or rewrite their errors.
func (g *Gateway) catalogError(tool string, err error) contractx.ToolResult {
	var notFound *catalogx.NotFoundError
	if errors.As(err, &notFound) {
		return errorResult(tool, contractx.ErrorKindNotFound, err.Error(), map[string]any{
			"product_id":                   notFound.ID,
			"available_product_ids_sample": g.catalog.SampleIDs(sampleIDCount),
		})
	}

	var invalidType *catalogx.InvalidEmbroideryTypeError
	if errors.As(err, &invalidType) {
		return errorResult(tool, contractx.ErrorKindInvalidEmbroideryType, err.Error(), map[string]any{
			"product_id":             invalidType.ID,
			"requested_type":         invalidType.Requested,
			"valid_embroidery_types": invalidType.Valid,
		})
	}

	var invalidQty *catalogx.InvalidQuantityError
	if errors.As(err, &invalidQty) {
		return errorResult(tool, contractx.ErrorKindInvalidQuantity, err.Error(), map[string]any{
			"quantity": invalidQty.Quantity,
		})
	}

	var belowMin *catalogx.BelowMinimumOrderError
	if errors.As(err, &belowMin) {
		return errorResult(tool, contractx.ErrorKindBelowMinimumOrder, err.Error(), map[string]any{
			"product_id":       belowMin.ID,
			"embroidery_type":  belowMin.EmbroideryType,
			"quantity":         belowMin.Quantity,
			"minimum_quantity": belowMin.Minimum,
		})
	}

	return validationError(tool, err.Error(), nil)
}

func okResult(tool string, value any) contractx.ToolResult {
	return contractx.ToolResult{Tool: tool, OK: true, Value: value}
}

func errorResult(tool string, kind contractx.ErrorKind, msg string, details map[string]any) contractx.ToolResult {
	return contractx.ToolResult{
		Tool: tool,
		Error: &contractx.ToolError{
			Kind:    kind,
			Message: msg,
			Details: details,
		},
	}
}

func validationError(tool, msg string, details map[string]any) contractx.ToolResult {
	return errorResult(tool, contractx.ErrorKindValidation, msg, details)
}

func stringArg(args map[string]any, key string) (string, error) {
	raw, ok := args[key]
	if !ok {
		return "", fmt.Errorf("%s is required", key)
	}
	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string", key)
	}
	return value, nil
}

func embroideryArg(args map[string]any) (catalogx.EmbroideryType, error) {
	raw, ok := args["embroidery_type"]
	if !ok {
		return catalogx.EmbroideryFlat, nil
	}
	value, ok := raw.(string)
	if !ok {
		return "", errors.New("embroidery_type must be a string")
	}
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return catalogx.EmbroideryFlat, nil
	}
	return catalogx.EmbroideryType(value), nil
}

// quantityArg accepts the numeric shapes JSON decoding produces. A missing
// quantity defaults to the smallest standard tier.
func quantityArg(args map[string]any) (int, error) {
	raw, ok := args["quantity"]
	if !ok {
		return 24, nil
	}
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("quantity must be a whole number, got %v", v)
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("quantity must be a number, got %T", raw)
	}
}

// snippet truncates on rune boundaries; external catalogs may carry
// multibyte features that must never be split mid-character.
func snippet(s string) string {
	if utf8.RuneCountInString(s) <= featureSnippetLength {
		return s
	}
	return string([]rune(s)[:featureSnippetLength]) + "..."
}
