package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var (
	pathProperty = map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the sketch image (PNG, JPEG, GIF or WebP)",
	}
	profileProperty = map[string]interface{}{
		"type":        "string",
		"enum":        []string{"basic", "enhanced", "local", "smart"},
		"description": "Scoring profile. basic: 19 everyday labels. enhanced: 50 QuickDraw labels plus primitive shapes. Defaults to the server configuration.",
	}
	topKProperty = map[string]interface{}{
		"type":        "integer",
		"description": "Number of guesses to return. 0 returns every label. Defaults to the server configuration (5).",
		"minimum":     0,
	}
	minProbabilityProperty = map[string]interface{}{
		"type":        "number",
		"description": "Hide guesses at or below this probability (0-1). Default 0",
		"minimum":     0,
		"maximum":     1,
	}
	targetProperty = map[string]interface{}{
		"type":        "string",
		"description": "Label the user was asked to draw (e.g. \"cat\"). The result reports its rank and whether it was guessed. Must be in the profile's vocabulary.",
	}
	freshProperty = map[string]interface{}{
		"type":        "boolean",
		"description": "Reload the file from disk instead of using the cached copy. Use when the sketch was redrawn in place.",
		"default":     false,
	}
)

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Guessing
		{
			Name:        "sketch_guess",
			Description: "Guess what a hand-drawn sketch depicts. Returns ranked labels with probabilities and a one-line summary such as \"I see: circle (23.9%), heart (22.3%)\". A blank canvas returns \"Draw something first!\".",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":            pathProperty,
					"profile":         profileProperty,
					"top_k":           topKProperty,
					"min_probability": minProbabilityProperty,
					"target":          targetProperty,
					"fresh":           freshProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "sketch_guess_pixels",
			Description: "Guess a sketch sent inline instead of as a file: either raw canvas RGBA bytes (4 per pixel, row-major, as returned by getImageData) with width and height, or an encoded PNG/JPEG/GIF/WebP image, both base64.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Canvas width in pixels",
						"minimum":     0,
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Canvas height in pixels",
						"minimum":     0,
					},
					"rgba_base64": map[string]interface{}{
						"type":        "string",
						"description": "Base64 of width*height*4 RGBA bytes",
					},
					"image_base64": map[string]interface{}{
						"type":        "string",
						"description": "Base64 of an encoded image (e.g. a canvas toDataURL payload without its prefix). Takes precedence over rgba_base64.",
					},
					"profile":         profileProperty,
					"top_k":           topKProperty,
					"min_probability": minProbabilityProperty,
					"target":          targetProperty,
				},
				"required": []string{},
			},
		},

		// Inspection
		{
			Name:        "sketch_describe",
			Description: "Extract the geometric descriptor the guesser scores: bounding box, centroid, aspect ratio, density, perimeter, circularity and, for the enhanced profile, corner, curve and stroke-lane counts.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":    pathProperty,
					"profile": profileProperty,
					"fresh":   freshProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "sketch_annotate",
			Description: "Render the sketch with its extracted geometry drawn on top (bounding box, centroid, edge, corner and curve pixels) and the guess as a caption. Returns a base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":    pathProperty,
					"profile": profileProperty,
					"crop": map[string]interface{}{
						"type":        "boolean",
						"description": "Crop to the ink bounding box plus padding. Default false",
						"default":     false,
					},
					"scale": map[string]interface{}{
						"type":        "integer",
						"description": "Integer upscale factor for small sketches. Default from configuration (1)",
						"minimum":     1,
						"maximum":     8,
					},
					"fresh": freshProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "sketch_labels",
			Description: "List the labels a profile can guess, in vocabulary order, with the names of its scoring rules.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"profile": profileProperty,
				},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
