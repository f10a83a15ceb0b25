package mcp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/carmex/tierMCP/pkg/errors"
	"github.com/carmex/tierMCP/pkg/pipeline"
	"github.com/carmex/tierMCP/pkg/tierlist"
)

// ToolCallParams represents the parameters for a tools/call request.
type ToolCallParams struct {
	// Name is the tool to invoke.
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// toolResult is the MCP content envelope for a tool call.
type toolResult struct {
	Content []contentItem `json:"content"`
	IsError bool          `json:"isError,omitempty"`
}

// contentItem is one entry of a tool result.
type contentItem struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	Data     string `json:"data,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
}

// handleToolsCall processes a tools/call request.
//
// Malformed params and unknown tool names are protocol errors and use
// JSON-RPC error responses. Everything that goes wrong while actually
// rendering flows back as an isError tool result, so the client sees
// the message and can correct its config.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	switch params.Name {
	case "render_tier_list":
		return s.handleRenderTierList(ctx, req.ID, params.Arguments)
	default:
		return s.errorResponse(req.ID, -32602, "Unknown tool", params.Name)
	}
}

// handleRenderTierList renders the config in args and returns the PNG
// as base64 image content plus a one-line text summary.
func (s *Server) handleRenderTierList(ctx context.Context, id any, args json.RawMessage) *MCPResponse {
	callID := uuid.NewString()
	logger := s.logger.With("tool", "render_tier_list", "call_id", callID)

	cfg, err := tierlist.Parse(args)
	if err != nil {
		return s.toolError(id, err)
	}

	result, err := s.runner.Execute(ctx, pipeline.Options{Config: cfg, Logger: logger})
	if err != nil {
		logger.Warn("render failed", "code", errors.GetCode(err), "err", err)
		return s.toolError(id, err)
	}

	logger.Info("rendered tier list",
		"items", result.Stats.ItemCount,
		"bytes", len(result.PNG),
		"cached", result.CacheInfo.ArtifactHit)

	summary := fmt.Sprintf("Rendered %d items across %d tiers (%d byte PNG).",
		result.Stats.ItemCount, result.Stats.TierCount, len(result.PNG))

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result: toolResult{
			Content: []contentItem{
				{
					Type:     "image",
					Data:     base64.StdEncoding.EncodeToString(result.PNG),
					MimeType: "image/png",
				},
				{Type: "text", Text: summary},
			},
		},
	}
}

// toolError wraps a render failure as an isError tool result. The
// message includes the error code when one exists; UserMessage keeps
// internal faults opaque.
func (s *Server) toolError(id any, err error) *MCPResponse {
	text := errors.UserMessage(err)
	if code := errors.GetCode(err); code != "" {
		text = fmt.Sprintf("%s: %s", code, text)
	}
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result: toolResult{
			IsError: true,
			Content: []contentItem{{Type: "text", Text: text}},
		},
	}
}
