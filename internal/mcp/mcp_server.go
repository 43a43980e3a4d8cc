// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mfaulds/driftline/internal/contract"
)

// NewMCPServer initializes and configures the Driftline MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, sc contract.Scorer, store contract.RecordStore) *server.MCPServer {
	s := server.NewMCPServer(
		"Driftline Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		scorer:  sc,
		store:   store,
	}

	// --- 1. Tool: analyze_series ---
	s.AddTool(mcp.NewTool("analyze_series",
		mcp.WithDescription("Run anomaly analysis on a CSV time series and persist the flagged record."),
		mcp.WithString("csv", mcp.Description("The raw CSV text: a header row followed by label,value rows."), mcp.Required()),
		mcp.WithString("filename", mcp.Description("Name to store the series under. Defaults to 'series.csv'.")),
		mcp.WithNumber("threshold", mcp.Description("Confidence threshold in [0,1); samples scoring strictly above it are flagged.")),
	), h.handleAnalyzeSeries)

	// --- 2. Tool: list_records ---
	s.AddTool(mcp.NewTool("list_records",
		mcp.WithDescription("List the stored analysis records for the configured owner, most recent first."),
	), h.handleListRecords)

	// --- 3. Tool: download_record ---
	s.AddTool(mcp.NewTool("download_record",
		mcp.WithDescription("Download a stored record as annotated CSV with per-sample anomaly flags."),
		mcp.WithNumber("record_id", mcp.Description("The id of the record to download."), mcp.Required()),
	), h.handleDownloadRecord)

	return s
}

// StartMCPServer starts the Driftline MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, sc contract.Scorer, store contract.RecordStore) error {
	s := NewMCPServer(baseCfg, sc, store)
	return server.ServeStdio(s)
}
