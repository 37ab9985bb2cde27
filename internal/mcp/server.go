// Package mcp exposes the viperstate parsers as Model Context Protocol tools
// served over stdio.
package mcp

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/viperproject/viper-ide-sub004/internal/cache"
	"github.com/viperproject/viper-ide-sub004/internal/config"
	"github.com/viperproject/viper-ide-sub004/internal/symbex"
	"github.com/viperproject/viper-ide-sub004/internal/view"
)

// MCPServer manages the MCP server lifecycle.
type MCPServer struct {
	deps *toolDeps
	mcp  *server.MCPServer
}

// NewMCPServer creates a new MCP server with all viperstate tools registered.
func NewMCPServer(cfg *config.Config, version string) (*MCPServer, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	filter, err := symbex.NewChunkFilter(cfg.Filter.Include, cfg.Filter.Exclude)
	if err != nil {
		return nil, fmt.Errorf("failed to build chunk filter: %w", err)
	}

	parsed, err := cache.New[any](cfg.Cache.Capacity)
	if err != nil {
		return nil, fmt.Errorf("failed to create parse cache: %w", err)
	}

	deps := &toolDeps{
		cache: parsed,
		defaults: view.Options{
			Format: cfg.Output.Format,
			Filter: filter,
		},
		metrics: NewToolMetrics(),
	}

	mcpServer := server.NewMCPServer(
		cfg.MCP.Name,
		version,
		server.WithToolCapabilities(true),
	)

	AddParseTool(mcpServer, deps)
	AddDiffTool(mcpServer, deps)
	AddStatsTool(mcpServer, deps)

	return &MCPServer{deps: deps, mcp: mcpServer}, nil
}

// Serve starts the MCP server and blocks until shutdown.
func (s *MCPServer) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting MCP server on stdio...")
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
		}
	}()

	select {
	case <-sigCh:
		log.Printf("Received shutdown signal, stopping gracefully...")
		return nil
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases all resources.
func (s *MCPServer) Close() error {
	s.deps.cache.Close()
	return nil
}
