// Package mcp provides a Model Context Protocol server for gitly.
// It exposes the redirect store as MCP tools that any MCP-capable agent can use.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gitly/gitly/internal/store"
)

// NewServer creates an MCP server with all gitly tools registered.
func NewServer(version string, st *store.Store) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "gitly",
		Version: version,
	}, nil)
	registerTools(server, st)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations returns annotations for write tools (additive, not destructive).
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(false),
	}
}

// registerTools adds all gitly tools to the server.
func registerTools(server *mcp.Server, st *store.Store) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "add",
		Description: "Create a short link for a URL. Appends a record commit and returns the assigned ids.",
		Annotations: writeAnnotations(),
	}, handleAdd(st))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get",
		Description: "Look up a redirect by its canonical or short id.",
		Annotations: readOnlyAnnotations(),
	}, handleGet(st))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list",
		Description: "List all redirects in creation order, oldest first.",
		Annotations: readOnlyAnnotations(),
	}, handleList(st))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "sync",
		Description: "Push local records to the remote, reconciling once on a non-fast-forward rejection.",
		Annotations: writeAnnotations(),
	}, handleSync(st))
}
