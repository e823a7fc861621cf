package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/deixis/anvil/internal/report"
)

type buildParams struct {
	Targets []string `json:"targets,omitempty" jsonschema:"Names of targets to build. Defaults to all configured targets."`
	Always  bool     `json:"always,omitempty" jsonschema:"Rebuild targets even when their artifact is already fresh."`
}

func (h *handler) buildHandler(ctx context.Context, req *mcp.CallToolRequest, params buildParams) (*mcp.CallToolResult, any, error) {
	results, err := h.pipe.Build(params.Targets, params.Always)
	if err != nil {
		if len(results) == 0 {
			return errorResult(fmt.Sprintf("build failed: %v", err))
		}
		return errorResult(formatBuild(results, err))
	}
	return textResult(formatBuild(results, nil))
}

func formatBuild(results []*report.BuildResult, buildErr error) string {
	var b strings.Builder
	if buildErr != nil {
		fmt.Fprintln(&b, "Status: FAIL")
	} else {
		fmt.Fprintln(&b, "Status: PASS")
	}
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "Targets:")
	for _, r := range results {
		fmt.Fprintf(&b, "  %s: %s (run %s)\n", r.Target, r.Status, r.ID)
		if r.Error != "" {
			fmt.Fprintf(&b, "    %s\n", r.Error)
		}
	}

	if buildErr != nil {
		fmt.Fprintln(&b)
		fmt.Fprintf(&b, "Error: %v\n", buildErr)
	}
	return b.String()
}

type statusParams struct{}

func (h *handler) statusHandler(ctx context.Context, req *mcp.CallToolRequest, params statusParams) (*mcp.CallToolResult, any, error) {
	statuses, err := h.pipe.Status()
	if err != nil {
		return errorResult(fmt.Sprintf("status failed: %v", err))
	}

	var b strings.Builder
	fmt.Fprintln(&b, "Targets:")
	for _, s := range statuses {
		state := "stale"
		if s.Fresh {
			state = "fresh"
		}
		fmt.Fprintf(&b, "  %s: %s (%s)\n", s.Name, state, s.Output)
	}
	return textResult(b.String())
}

type inspectParams struct {
	RunID string `json:"run_id,omitempty" jsonschema:"Run ID from a previous anvil_build. Omit to list recorded runs."`
}

func (h *handler) inspectHandler(ctx context.Context, req *mcp.CallToolRequest, params inspectParams) (*mcp.CallToolResult, any, error) {
	if params.RunID == "" {
		ids, err := h.store.List()
		if err != nil {
			return errorResult(fmt.Sprintf("listing runs: %v", err))
		}
		if len(ids) == 0 {
			return textResult("No recorded runs.")
		}
		return textResult("Runs (oldest first):\n  " + strings.Join(ids, "\n  ") + "\n")
	}

	r, err := h.store.Load(params.RunID)
	if err != nil {
		return errorResult(fmt.Sprintf("loading run %s: %v", params.RunID, err))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Run: %s\n", r.ID)
	fmt.Fprintf(&b, "Target: %s\n", r.Target)
	fmt.Fprintf(&b, "Status: %s\n", r.Status)
	if len(r.Argv) > 0 {
		fmt.Fprintf(&b, "Command: %s\n", strings.Join(r.Argv, " "))
	}
	if r.Output != "" {
		fmt.Fprintf(&b, "Artifact: %s\n", r.Output)
	}
	if r.Error != "" {
		fmt.Fprintf(&b, "Error: %s\n", r.Error)
	}
	fmt.Fprintf(&b, "Started: %s\n", r.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Duration: %s\n", r.Duration)
	return textResult(b.String())
}
