// Package main provides the entry point for the gitly CLI.
package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	gitlymcp "github.com/gitly/gitly/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run gitly as a Model Context Protocol (MCP) server over stdio.

This exposes the redirect store as MCP tools that any MCP-capable agent
environment can use.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "gitly": {
        "command": "gitly",
        "args": ["serve"]
      }
    }
  }

Available tools: add, get, list, sync`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := openStore(nil)
			if err != nil {
				return err
			}
			server := gitlymcp.NewServer(buildVersion(), st)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
