package mcp

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/viperproject/viper-ide-sub004/internal/cache"
	"github.com/viperproject/viper-ide-sub004/internal/view"
)

// marshalToolResponse marshals a response object to JSON and returns it as an MCP tool result.
func marshalToolResponse(response interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.Marshal(response)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// decodeCached decodes raw as kind, reusing an earlier result for identical input.
func decodeCached(c *cache.Cache[any], kind view.Kind, raw json.RawMessage) (any, error) {
	key := make([]byte, 0, len(kind)+1+len(raw))
	key = append(key, string(kind)...)
	key = append(key, 0)
	key = append(key, raw...)
	return c.GetOrParse(key, func([]byte) (any, error) {
		return view.Decode(kind, raw)
	})
}

// renderText renders v with opts into a string.
func renderText(v any, opts view.Options) (string, error) {
	var b strings.Builder
	if err := view.Render(&b, v, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}
