package tool

import (
	"github.com/cloudwego/eino/schema"

	contractx "github.com/tanpawarit/NexusFlow-Catalog-Agent/agent/contract"
)

// Infos declares the closed tool set for model binding. The declarations
// must stay in lockstep with Execute's dispatch.
func (g *Gateway) Infos() []*schema.ToolInfo {
	return []*schema.ToolInfo{
		{
			Name: contractx.ToolGetProductInfo,
			Desc: "Get detailed information about a specific product: title, features, sizing, pricing tiers, and available colors. Accepts product IDs with or without the 'i' prefix (e.g. 'i3038' or '3038').",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"product_id": {Type: schema.String, Desc: "Product identifier, e.g. 'i3038'", Required: true},
			}),
		},
		{
			Name: contractx.ToolSearchProducts,
			Desc: "Search the catalog by keyword across product titles and features, e.g. 'trucker', 'mesh', 'wool', 'performance'.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"keyword": {Type: schema.String, Desc: "Search term", Required: true},
			}),
		},
		{
			Name: contractx.ToolGetProductPricing,
			Desc: "Calculate unit and total price for a product given embroidery type and order quantity. Tiers are selected by the largest breakpoint at or below the quantity.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"product_id":      {Type: schema.String, Desc: "Product identifier", Required: true},
				"embroidery_type": {Type: schema.String, Desc: "Embroidery type: 'flat' or '3d' (default 'flat')"},
				"quantity":        {Type: schema.Integer, Desc: "Number of units (default 24)"},
			}),
		},
		{
			Name: contractx.ToolGetAllProducts,
			Desc: "Return the complete product catalog with id, title, features, sizing, and available colors for every product.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
		},
	}
}
