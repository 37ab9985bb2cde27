package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/viperproject/viper-ide-sub004/internal/cache"
	mcputils "github.com/viperproject/viper-ide-sub004/internal/mcp-utils"
	"github.com/viperproject/viper-ide-sub004/internal/model"
	"github.com/viperproject/viper-ide-sub004/internal/symbex"
	"github.com/viperproject/viper-ide-sub004/internal/view"
)

const (
	parseToolName = "viperstate_parse"
	diffToolName  = "viperstate_diff"
)

// ParseRequest holds the arguments of the viperstate_parse tool.
type ParseRequest struct {
	Kind    string          `json:"kind"`
	Input   json.RawMessage `json:"input"`
	Format  string          `json:"format,omitempty"`
	Include []string        `json:"include,omitempty"`
	Exclude []string        `json:"exclude,omitempty"`
}

// DiffRequest holds the arguments of the viperstate_diff tool.
type DiffRequest struct {
	Before json.RawMessage `json:"before"`
	After  json.RawMessage `json:"after"`
	Format string          `json:"format,omitempty"`
}

// toolDeps is what the tool handlers share.
type toolDeps struct {
	cache    *cache.Cache[any]
	defaults view.Options
	metrics  *ToolMetrics
}

func kindNames() []string {
	kinds := view.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return names
}

// AddParseTool registers the viperstate_parse tool with an MCP server.
func AddParseTool(s *server.MCPServer, deps *toolDeps) {
	tool := mcp.NewTool(
		parseToolName,
		mcp.WithDescription("Parse a message from the Viper symbolic-execution backend (a log, state, heap chunk, term or sort) and return a readable rendering. Malformed messages are reported with the offending key."),
		mcp.WithString("kind",
			mcp.Required(),
			mcp.Enum(kindNames()...),
			mcp.Description("Shape of the input: log, state, chunk, term or sort")),
		mcp.WithString("input",
			mcp.Required(),
			mcp.Description("The message as JSON text. An inline JSON object or array is accepted too.")),
		mcp.WithString("format",
			mcp.Enum(view.FormatText, view.FormatJSON, view.FormatYAML),
			mcp.Description("Output format (default: server configuration)")),
		mcp.WithArray("include",
			mcp.WithStringItems(),
			mcp.Description("Only show heap chunks whose field or predicate name matches one of these glob patterns")),
		mcp.WithArray("exclude",
			mcp.WithStringItems(),
			mcp.Description("Hide heap chunks whose resource matches one of these glob patterns")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createParseHandler(deps))
}

// createParseHandler creates the handler function for the viperstate_parse tool.
func createParseHandler(deps *toolDeps) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()

		if _, ok := request.GetRawArguments().(map[string]interface{}); !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		var req ParseRequest
		if err := mcputils.CoerceBindArguments(request, &req); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}
		if req.Kind == "" {
			return mcp.NewToolResultError("kind parameter is required"), nil
		}
		if len(req.Input) == 0 {
			return mcp.NewToolResultError("input parameter is required"), nil
		}

		kind, err := view.ParseKind(req.Kind)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		opts, err := deps.options(req.Format, req.Include, req.Exclude)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		v, err := decodeCached(deps.cache, kind, req.Input)
		deps.metrics.Record(parseToolName, time.Since(start), err)
		if err != nil {
			return parseErrorResult(err), nil
		}

		text, err := renderText(v, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", kind, err)
		}
		return mcp.NewToolResultText(text), nil
	}
}

// AddDiffTool registers the viperstate_diff tool with an MCP server.
func AddDiffTool(s *server.MCPServer, deps *toolDeps) {
	tool := mcp.NewTool(
		diffToolName,
		mcp.WithDescription("Compare two symbolic states and list the store variables, heap chunks and path conditions that were added or removed."),
		mcp.WithString("before",
			mcp.Required(),
			mcp.Description("The earlier state as JSON text or an inline object")),
		mcp.WithString("after",
			mcp.Required(),
			mcp.Description("The later state as JSON text or an inline object")),
		mcp.WithString("format",
			mcp.Enum(view.FormatText, view.FormatJSON, view.FormatYAML),
			mcp.Description("Output format (default: server configuration)")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createDiffHandler(deps))
}

// createDiffHandler creates the handler function for the viperstate_diff tool.
func createDiffHandler(deps *toolDeps) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()

		if _, ok := request.GetRawArguments().(map[string]interface{}); !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		var req DiffRequest
		if err := mcputils.CoerceBindArguments(request, &req); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}
		if len(req.Before) == 0 {
			return mcp.NewToolResultError("before parameter is required"), nil
		}
		if len(req.After) == 0 {
			return mcp.NewToolResultError("after parameter is required"), nil
		}

		opts, err := deps.options(req.Format, nil, nil)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		before, err := decodeCached(deps.cache, view.KindState, req.Before)
		if err != nil {
			deps.metrics.Record(diffToolName, time.Since(start), err)
			return parseErrorResult(fmt.Errorf("before: %w", err)), nil
		}
		after, err := decodeCached(deps.cache, view.KindState, req.After)
		deps.metrics.Record(diffToolName, time.Since(start), err)
		if err != nil {
			return parseErrorResult(fmt.Errorf("after: %w", err)), nil
		}

		d := symbex.CompareStates(before.(*symbex.State), after.(*symbex.State))
		text, err := renderText(d, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to render diff: %w", err)
		}
		return mcp.NewToolResultText(text), nil
	}
}

// options merges per-call overrides into the server defaults.
func (d *toolDeps) options(format string, include, exclude []string) (view.Options, error) {
	opts := d.defaults
	if format != "" {
		switch strings.ToLower(format) {
		case view.FormatText, view.FormatJSON, view.FormatYAML:
			opts.Format = format
		default:
			return opts, fmt.Errorf("unknown format %q (valid: text, json, yaml)", format)
		}
	}
	if len(include) > 0 || len(exclude) > 0 {
		f, err := symbex.NewChunkFilter(include, exclude)
		if err != nil {
			return opts, err
		}
		opts.Filter = f
	}
	return opts, nil
}

// parseErrorResult reports a decoding failure to the caller, naming its category.
func parseErrorResult(err error) *mcp.CallToolResult {
	switch {
	case errors.Is(err, model.ErrUnknownVariant):
		return mcp.NewToolResultError("unknown variant: " + err.Error())
	case errors.Is(err, model.ErrMalformedInput):
		return mcp.NewToolResultError("malformed input: " + err.Error())
	default:
		return mcp.NewToolResultError(err.Error())
	}
}
