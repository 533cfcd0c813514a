// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"debtscan/internal/contract"
)

// NewMCPServer initializes and configures the debtscan MCP server
// without starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, client contract.GitClient) *server.MCPServer {
	s := server.NewMCPServer(
		"Debtscan Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		client:  client,
	}

	// --- 1. Tool: debt_scan ---
	s.AddTool(mcp.NewTool("debt_scan",
		mcp.WithDescription("Scan a repository and estimate technical debt in developer-hours across six categories."),
		mcp.WithString("repo_path", mcp.Description("Path to the repository (defaults to current directory if not specified).")),
		mcp.WithNumber("complexity_threshold", mcp.Description("Code lines above which a file counts as complex.")),
		mcp.WithNumber("stale_months", mcp.Description("Months without modification before a file counts as stale.")),
	), h.handleDebtScan)

	// --- 2. Tool: debt_hotspots ---
	s.AddTool(mcp.NewTool("debt_hotspots",
		mcp.WithDescription("Rank the files carrying the most estimated debt."),
		mcp.WithString("repo_path", mcp.Description("Path to the repository.")),
		mcp.WithNumber("top", mcp.Description("Limit the number of results returned.")),
	), h.handleDebtHotspots)

	// --- 3. Tool: debt_trend ---
	s.AddTool(mcp.NewTool("debt_trend",
		mcp.WithDescription("Track estimated debt across recent commits of a git repository, oldest first."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository.")),
		mcp.WithNumber("commits", mcp.Description("Number of commits to analyze.")),
	), h.handleDebtTrend)

	return s
}

// StartMCPServer starts the debtscan MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, client contract.GitClient) error {
	s := NewMCPServer(baseCfg, client)
	return server.ServeStdio(s)
}
