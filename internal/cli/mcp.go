package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viperproject/viper-ide-sub004/internal/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for inspecting verifier messages",
	Long: `Start the Model Context Protocol (MCP) server that lets LLM-powered assistants
decode and compare Viper symbolic-execution messages.

The MCP server:
- Provides the viperstate_parse, viperstate_diff and viperstate_stats tools
- Caches parse results for repeated inputs (cache.capacity entries)
- Communicates via stdio (standard MCP transport)

Example:
  viperstate mcp`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// stdout carries the protocol; everything else goes to stderr.
	errOut := cmd.ErrOrStderr()
	fmt.Fprintf(errOut, "viperstate MCP server %s\n", Version)
	fmt.Fprintf(errOut, "Server Name: %s\n", cfg.MCP.Name)
	fmt.Fprintf(errOut, "Cache Capacity: %d\n\n", cfg.Cache.Capacity)

	server, err := mcp.NewMCPServer(cfg, Version)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer server.Close()

	// Serve (blocks until shutdown)
	if err := server.Serve(cmd.Context()); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}

	return nil
}
