package contract

// Tool operation names. This is the closed set the orchestration loop may
// invoke; there is no runtime registration.
const (
	ToolGetProductInfo    = "get_product_info"
	ToolSearchProducts    = "search_products"
	ToolGetProductPricing = "get_product_pricing"
	ToolGetAllProducts    = "get_all_products"
)

// ErrorKind is the stable wire taxonomy for tool failures.
type ErrorKind string

const (
	ErrorKindValidation            ErrorKind = "validation_error"
	ErrorKindNotFound              ErrorKind = "not_found"
	ErrorKindInvalidEmbroideryType ErrorKind = "invalid_embroidery_type"
	ErrorKindInvalidQuantity       ErrorKind = "invalid_quantity"
	ErrorKindBelowMinimumOrder     ErrorKind = "below_minimum_order"
)

type ToolRequest struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args,omitempty"`
}

// ToolError carries enough structured detail (valid embroidery types,
// minimum order quantity, sample IDs) for the orchestration layer to
// explain the problem without re-querying the catalog.
type ToolError struct {
	Kind    ErrorKind      `json:"kind"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

type ToolResult struct {
	Tool  string     `json:"tool"`
	OK    bool       `json:"ok"`
	Value any        `json:"value,omitempty"`
	Error *ToolError `json:"error,omitempty"`
}
