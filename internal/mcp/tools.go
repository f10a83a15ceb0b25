package mcp

// Tool represents an MCP tool definition.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// toolDefinitions returns all available tools. The render_tier_list
// schema mirrors the tier-list config model: arguments are the config
// itself, not a wrapper around it.
func toolDefinitions() []Tool {
	return []Tool{
		{
			Name: "render_tier_list",
			Description: "Render a tier list as a PNG image. Items are placed into tiers " +
				"by id or display label; each item shows its remote image when fetchable, " +
				"its text otherwise. Omitting tiers uses the standard S through F ladder.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title": map[string]any{
						"type":        "string",
						"description": "Optional board title rendered in a header band",
					},
					"backgroundColor": map[string]any{
						"type":        "string",
						"description": "Canvas background as #RGB or #RRGGBB",
					},
					"tiers": map[string]any{
						"type":        "array",
						"description": "Tier ladder, top row first. Omit for the default S-F ladder.",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"id":    map[string]any{"type": "string", "description": "Unique tier id"},
								"label": map[string]any{"type": "string", "description": "Row label (max 50 characters)"},
								"color": map[string]any{"type": "string", "description": "Row color as #RGB or #RRGGBB"},
							},
							"required": []string{"id", "color"},
						},
					},
					"items": map[string]any{
						"type":        "array",
						"description": "Entries to place on the board (max 50)",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"id":   map[string]any{"type": "string", "description": "Unique item id"},
								"tier": map[string]any{"type": "string", "description": "Target tier, matched by id first, then by label"},
								"imageUrl": map[string]any{
									"type":        "string",
									"description": "Optional http(s) image URL. Private and local addresses are rejected.",
								},
								"text": map[string]any{"type": "string", "description": "Optional display text (max 50 characters)"},
							},
							"required": []string{"id", "tier"},
						},
					},
				},
				"required": []string{"items"},
			},
		},
	}
}

// handleToolsList returns the list of available tools.
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]any{
			"tools": toolDefinitions(),
		},
	}
}
