package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mfaulds/driftline/core"
	"github.com/mfaulds/driftline/internal/contract"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	scorer  contract.Scorer
	store   contract.RecordStore
}

func (h *toolHandler) handleAnalyzeSeries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := contract.RequireOwner(h.baseCfg); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	raw := request.GetString("csv", "")
	if raw == "" {
		return mcp.NewToolResultError("csv is required"), nil
	}
	filename := request.GetString("filename", "series.csv")

	cfg := h.baseCfg.Clone()
	if threshold := request.GetFloat("threshold", -1); threshold >= 0 {
		if threshold >= 1 {
			return mcp.NewToolResultError("threshold must be in [0, 1)"), nil
		}
		cfg.Threshold = threshold
	}

	summary, err := core.RunAnalysis(ctx, h.scorer, h.store, cfg, cfg.OwnerToken, filename, []byte(raw))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(summary, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListRecords(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := contract.RequireOwner(h.baseCfg); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	summaries, err := h.store.ListByOwner(ctx, h.baseCfg.OwnerToken)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(summaries, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleDownloadRecord(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := contract.RequireOwner(h.baseCfg); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	recordID := request.GetInt("record_id", 0)
	if recordID <= 0 {
		return mcp.NewToolResultError("record_id must be a positive integer"), nil
	}

	data, err := core.DownloadRecord(ctx, h.store, h.baseCfg.OwnerToken, int64(recordID))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("download failed: %v", err)), nil
	}

	return mcp.NewToolResultText(string(data)), nil
}
