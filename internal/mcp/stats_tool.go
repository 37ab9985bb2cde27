package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/viperproject/viper-ide-sub004/internal/cache"
)

const statsToolName = "viperstate_stats"

// StatsResponse is the result of the viperstate_stats tool.
type StatsResponse struct {
	Cache cache.Stats    `json:"cache"`
	Tools []ToolSnapshot `json:"tools"`
}

// AddStatsTool registers the viperstate_stats tool with an MCP server.
func AddStatsTool(s *server.MCPServer, deps *toolDeps) {
	tool := mcp.NewTool(
		statsToolName,
		mcp.WithDescription("Report parse cache usage and per-tool call counts for this server."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return marshalToolResponse(&StatsResponse{
			Cache: deps.cache.Stats(),
			Tools: deps.metrics.Snapshot(),
		})
	})
}
