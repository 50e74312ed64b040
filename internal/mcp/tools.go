package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gitly/gitly/internal/redirect"
	"github.com/gitly/gitly/internal/store"
)

// AddInput is the input for the add tool.
type AddInput struct {
	URL         string            `json:"url"                   jsonschema:"target URL to shorten (required, http/https/ftp)"`
	Description string            `json:"description,omitempty" jsonschema:"free-form description of the link"`
	Meta        map[string]string `json:"meta,omitempty"        jsonschema:"additional key/value metadata"`
}

// AddOutput is the output for the add tool.
type AddOutput struct {
	Redirect *redirect.Redirect `json:"redirect" jsonschema:"the created redirect with its assigned ids"`
}

func handleAdd(st *store.Store) mcp.ToolHandlerFor[AddInput, AddOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input AddInput) (*mcp.CallToolResult, AddOutput, error) {
		rec, err := st.Create(redirect.Fields{
			URL:         input.URL,
			Description: input.Description,
			Meta:        input.Meta,
		})
		if err != nil {
			return nil, AddOutput{}, err
		}
		return nil, AddOutput{Redirect: rec}, nil
	}
}

// GetInput is the input for the get tool.
type GetInput struct {
	ID string `json:"id" jsonschema:"canonical or short redirect id (required)"`
}

// GetOutput is the output for the get tool.
type GetOutput struct {
	Redirect *redirect.Redirect `json:"redirect" jsonschema:"the resolved redirect"`
}

func handleGet(st *store.Store) mcp.ToolHandlerFor[GetInput, GetOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input GetInput) (*mcp.CallToolResult, GetOutput, error) {
		if input.ID == "" {
			return nil, GetOutput{}, fmt.Errorf("id is required")
		}
		rec, err := st.Get(input.ID)
		if err != nil {
			return nil, GetOutput{}, err
		}
		return nil, GetOutput{Redirect: rec}, nil
	}
}

// ListInput is the input for the list tool.
type ListInput struct {
	From  string `json:"from,omitempty"  jsonschema:"list only records created after this commit (exclusive)"`
	Until string `json:"until,omitempty" jsonschema:"list records up to this commit, defaults to the branch tip"`
}

// ListOutput is the output for the list tool.
type ListOutput struct {
	Count     int                  `json:"count"     jsonschema:"number of redirects returned"`
	Redirects []*redirect.Redirect `json:"redirects" jsonschema:"redirects in creation order, oldest first"`
}

func handleList(st *store.Store) mcp.ToolHandlerFor[ListInput, ListOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ListInput) (*mcp.CallToolResult, ListOutput, error) {
		walker, err := st.Walk(store.WalkOptions{From: input.From, Until: input.Until})
		if err != nil {
			return nil, ListOutput{}, err
		}
		records, err := walker.All()
		if err != nil {
			return nil, ListOutput{}, err
		}
		return nil, ListOutput{Count: len(records), Redirects: records}, nil
	}
}

// SyncInput is the input for the sync tool.
type SyncInput struct{}

// SyncOutput is the output for the sync tool.
type SyncOutput struct {
	Synced bool `json:"synced" jsonschema:"true when the branch was pushed successfully"`
}

func handleSync(st *store.Store) mcp.ToolHandlerFor[SyncInput, SyncOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ SyncInput) (*mcp.CallToolResult, SyncOutput, error) {
		if err := st.Sync(); err != nil {
			return nil, SyncOutput{}, err
		}
		return nil, SyncOutput{Synced: true}, nil
	}
}
