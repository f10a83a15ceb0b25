package mcp

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image/png"
	"strings"
	"testing"
)

// callTool routes a tools/call request for render_tier_list through
// handleRequest with the given arguments JSON.
func callTool(t *testing.T, s *Server, args string) *MCPResponse {
	t.Helper()
	params, err := json.Marshal(map[string]any{
		"name":      "render_tier_list",
		"arguments": json.RawMessage(args),
	})
	if err != nil {
		t.Fatalf("marshal params: %v", err)
	}
	return s.handleRequest(context.Background(), &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  params,
	})
}

func toolResultOf(t *testing.T, resp *MCPResponse) toolResult {
	t.Helper()
	if resp == nil {
		t.Fatal("nil response")
	}
	if resp.Error != nil {
		t.Fatalf("unexpected protocol error: %v", resp.Error)
	}
	result, ok := resp.Result.(toolResult)
	if !ok {
		t.Fatalf("Result is %T, want toolResult", resp.Result)
	}
	return result
}

func TestHandleToolsList(t *testing.T) {
	s := testMCPServer(t)
	resp := s.handleRequest(context.Background(), &MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/list"})
	if resp == nil || resp.Error != nil {
		t.Fatalf("tools/list failed: %+v", resp)
	}

	result, ok := resp.Result.(map[string]any)
	if !ok {
		t.Fatal("Result should be a map")
	}
	tools, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatalf("tools is %T, want []Tool", result["tools"])
	}
	if len(tools) != 1 {
		t.Fatalf("got %d tools, want 1", len(tools))
	}

	tool := tools[0]
	if tool.Name != "render_tier_list" {
		t.Errorf("Name: got %q", tool.Name)
	}
	if tool.Description == "" {
		t.Error("Description should not be empty")
	}
	required, ok := tool.InputSchema["required"].([]string)
	if !ok || len(required) != 1 || required[0] != "items" {
		t.Errorf("schema required: got %v, want [items]", tool.InputSchema["required"])
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := testMCPServer(t)
	resp := s.handleRequest(context.Background(), &MCPRequest{
		JSONRPC: "2.0",
		ID:      3,
		Method:  "tools/call",
		Params:  json.RawMessage(`["not","an","object"]`),
	})
	if resp == nil || resp.Error == nil {
		t.Fatal("malformed params should return a protocol error")
	}
	if resp.Error.Code != -32602 {
		t.Errorf("Error.Code: got %d, want -32602", resp.Error.Code)
	}
}

func TestHandleToolsCall_UnknownTool(t *testing.T) {
	s := testMCPServer(t)
	resp := s.handleRequest(context.Background(), &MCPRequest{
		JSONRPC: "2.0",
		ID:      4,
		Method:  "tools/call",
		Params:  json.RawMessage(`{"name":"resize_image","arguments":{}}`),
	})
	if resp == nil || resp.Error == nil {
		t.Fatal("unknown tool should return a protocol error")
	}
	if resp.Error.Code != -32602 {
		t.Errorf("Error.Code: got %d, want -32602", resp.Error.Code)
	}
}

func TestRenderTierListTool(t *testing.T) {
	s := testMCPServer(t)
	resp := callTool(t, s, `{
		"title": "Languages",
		"items": [
			{"id": "go", "tier": "S", "text": "Go"},
			{"id": "hs", "tier": "B", "text": "Haskell"}
		]
	}`)

	result := toolResultOf(t, resp)
	if result.IsError {
		t.Fatalf("unexpected tool error: %+v", result.Content)
	}
	if len(result.Content) != 2 {
		t.Fatalf("got %d content items, want 2", len(result.Content))
	}

	img := result.Content[0]
	if img.Type != "image" || img.MimeType != "image/png" {
		t.Errorf("first content item: got type %q mime %q", img.Type, img.MimeType)
	}
	data, err := base64.StdEncoding.DecodeString(img.Data)
	if err != nil {
		t.Fatalf("decode base64 image: %v", err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if cfg.Width != 1200 {
		t.Errorf("Width: got %d, want 1200", cfg.Width)
	}

	text := result.Content[1]
	if text.Type != "text" || !strings.Contains(text.Text, "2 items") {
		t.Errorf("summary: got %+v", text)
	}
}

func TestRenderTierListTool_MalformedArguments(t *testing.T) {
	s := testMCPServer(t)
	result := toolResultOf(t, callTool(t, s, `"just a string"`))
	if !result.IsError {
		t.Fatal("malformed arguments should produce an isError result")
	}
	if len(result.Content) == 0 || !strings.HasPrefix(result.Content[0].Text, "INVALID_INPUT:") {
		t.Errorf("error text: got %+v", result.Content)
	}
}

func TestRenderTierListTool_InvalidConfig(t *testing.T) {
	s := testMCPServer(t)
	result := toolResultOf(t, callTool(t, s, `{
		"tiers": [{"id": "s", "color": "red"}],
		"items": [{"id": "a", "tier": "s"}]
	}`))
	if !result.IsError {
		t.Fatal("invalid config should produce an isError result")
	}
	if len(result.Content) == 0 || !strings.HasPrefix(result.Content[0].Text, "INVALID_INPUT:") {
		t.Errorf("error text: got %+v", result.Content)
	}
}

func TestRenderTierListTool_UnsafeURL(t *testing.T) {
	s := testMCPServer(t)
	result := toolResultOf(t, callTool(t, s, `{
		"items": [{"id": "a", "tier": "S", "imageUrl": "http://127.0.0.1/x.png"}]
	}`))
	if !result.IsError {
		t.Fatal("loopback image URL should produce an isError result")
	}
	if len(result.Content) == 0 || !strings.HasPrefix(result.Content[0].Text, "UNSAFE_RESOURCE:") {
		t.Errorf("error text: got %+v", result.Content)
	}
}
