package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	contractx "github.com/tanpawarit/NexusFlow-Catalog-Agent/agent/contract"
	toolx "github.com/tanpawarit/NexusFlow-Catalog-Agent/agent/tool"
)

const mcpServerVersion = "1.0.0"

// NewMCPServer exposes the four catalog operations over the Model Context
// Protocol, so external agent hosts can drive the same gateway the built-in
// assistant uses. Session operations are deliberately not registered.
func NewMCPServer(gateway *toolx.Gateway) *mcpserver.MCPServer {
	s := mcpserver.NewMCPServer(serviceName, mcpServerVersion)

	s.AddTool(mcp.NewTool(contractx.ToolGetProductInfo,
		mcp.WithDescription("Get detailed information about a specific product: title, features, sizing, pricing, and available colors."),
		mcp.WithString("product_id", mcp.Required(), mcp.Description("Product identifier, with or without the 'i' prefix (e.g. 'i3038' or '3038')")),
	), mcpHandler(gateway, contractx.ToolGetProductInfo))

	s.AddTool(mcp.NewTool(contractx.ToolSearchProducts,
		mcp.WithDescription("Search for products by keyword in titles and features."),
		mcp.WithString("keyword", mcp.Required(), mcp.Description("Search term, e.g. 'trucker', 'mesh', 'wool'")),
	), mcpHandler(gateway, contractx.ToolSearchProducts))

	s.AddTool(mcp.NewTool(contractx.ToolGetProductPricing,
		mcp.WithDescription("Calculate unit and total price for a product by embroidery type and order quantity."),
		mcp.WithString("product_id", mcp.Required(), mcp.Description("Product identifier")),
		mcp.WithString("embroidery_type", mcp.Description("'flat' or '3d' (default 'flat')")),
		mcp.WithNumber("quantity", mcp.Description("Number of units (default 24)")),
	), mcpHandler(gateway, contractx.ToolGetProductPricing))

	s.AddTool(mcp.NewTool(contractx.ToolGetAllProducts,
		mcp.WithDescription("Return the complete product catalog."),
	), mcpHandler(gateway, contractx.ToolGetAllProducts))

	return s
}

// ServeMCP blocks serving the MCP server on stdio.
func ServeMCP(s *mcpserver.MCPServer) error {
	return mcpserver.ServeStdio(s)
}

func mcpHandler(gateway *toolx.Gateway, tool string) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]any)

		result := gateway.Execute(ctx, contractx.ToolRequest{Tool: tool, Args: args})
		if result.Error != nil {
			detail, err := json.Marshal(result.Error)
			if err != nil {
				return mcp.NewToolResultError(result.Error.Message), nil
			}
			return mcp.NewToolResultError(string(detail)), nil
		}

		payload, err := json.Marshal(result.Value)
		if err != nil {
			return nil, fmt.Errorf("marshal %s result: %w", tool, err)
		}
		return mcp.NewToolResultText(string(payload)), nil
	}
}
