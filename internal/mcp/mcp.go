// Package mcp provides the Anvil MCP server, exposing build, status,
// and inspection tools to model clients.
package mcp

import (
	"context"
	_ "embed"
	"net/url"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/deixis/anvil"
	"github.com/deixis/anvil/internal/config"
	"github.com/deixis/anvil/internal/pipeline"
	"github.com/deixis/anvil/internal/report"
)

//go:embed instructions.md
var Instructions string

// handler holds shared dependencies for all tool handlers.
type handler struct {
	pipe  *pipeline.Pipeline
	store report.Store
}

// NewServer creates an MCP server with all Anvil tools registered.
func NewServer(pipe *pipeline.Pipeline, store report.Store) *mcp.Server {
	h := &handler{pipe: pipe, store: store}

	opts := &mcp.ServerOptions{
		Instructions: Instructions,
		Capabilities: &mcp.ServerCapabilities{
			Tools: &mcp.ToolCapabilities{ListChanged: false},
		},
		InitializedHandler: func(ctx context.Context, req *mcp.InitializedRequest) {
			h.updateWorkspaceFromRoots(ctx, req.Session)
		},
	}
	s := mcp.NewServer(&mcp.Implementation{Name: "anvil", Version: anvil.Version}, opts)

	mcp.AddTool(s, &mcp.Tool{
		Name: "anvil_build",
		Description: `Build the configured targets, skipping any whose artifact is newer than its source.

Results are recorded per target and can be drilled into via anvil_inspect.`,
	}, h.buildHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "anvil_status",
		Description: "Report the freshness of every configured target without building anything.",
	}, h.statusHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "anvil_inspect",
		Description: `Fetch the record of a past target build by run ID.

Call without a run_id to list the IDs of recorded runs, oldest first.`,
	}, h.inspectHandler)

	return s
}

// updateWorkspaceFromRoots queries the client for MCP roots and repoints
// the pipeline at the first valid file root. Called during session
// initialization, before any tool calls.
func (h *handler) updateWorkspaceFromRoots(ctx context.Context, session *mcp.ServerSession) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	roots, err := session.ListRoots(ctx, &mcp.ListRootsParams{})
	if err != nil || len(roots.Roots) == 0 {
		return
	}

	u, err := url.Parse(roots.Roots[0].URI)
	if err != nil || u.Scheme != "file" {
		return
	}

	loaded, err := config.Load(u.Path)
	if err != nil {
		return
	}
	if loaded.Config.Compiler != "" {
		h.pipe.Engine.Compiler = loaded.Config.Compiler
	}
	h.pipe.Config = loaded.Config
	h.pipe.Root = loaded.Root
}

// textResult is a helper to build a text-only tool result.
func textResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil, nil
}

// errorResult is a helper to build an error tool result.
func errorResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}, nil, nil
}
