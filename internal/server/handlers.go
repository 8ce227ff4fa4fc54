package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/ironsheep/doodle-guess-mcp/internal/imaging"
	"github.com/ironsheep/doodle-guess-mcp/internal/recognizer"
	"github.com/ironsheep/doodle-guess-mcp/internal/sketch"
)

// maxAnnotateScale bounds sketch_annotate's upscale factor.
const maxAnnotateScale = 8

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "sketch_guess").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.debugf("tool %s failed: %v", params.Name, err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies configured defaults for optional parameters
//  3. Loads the sketch and converts it to a bitmap
//  4. Extracts, scores or renders it
//  5. Returns the result or error
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Guessing
	case "sketch_guess":
		return s.handleSketchGuess(ctx, args)
	case "sketch_guess_pixels":
		return s.handleSketchGuessPixels(ctx, args)

	// Inspection
	case "sketch_describe":
		return s.handleSketchDescribe(args)
	case "sketch_annotate":
		return s.handleSketchAnnotate(ctx, args)
	case "sketch_labels":
		return s.handleSketchLabels(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Shared helpers ===

// profile resolves a per-call profile name, falling back to the configured one.
func (s *Server) profile(name string) (*recognizer.Profile, error) {
	if name == "" {
		name = s.cfg.Profile
	}
	return recognizer.ProfileByName(name)
}

// guessOptions applies the configured defaults to optional call arguments.
// A non-empty target must name a label in p's vocabulary.
func (s *Server) guessOptions(p *recognizer.Profile, topK *int, minProbability *float64, target string) (recognizer.GuessOptions, error) {
	opts := recognizer.GuessOptions{
		TopK:           s.cfg.TopK,
		MinProbability: s.cfg.MinProbability,
	}
	if topK != nil {
		if *topK < 0 {
			return opts, fmt.Errorf("top_k must be non-negative, got %d", *topK)
		}
		opts.TopK = *topK
	}
	if minProbability != nil {
		if *minProbability < 0 || *minProbability > 1 {
			return opts, fmt.Errorf("min_probability must be between 0 and 1, got %g", *minProbability)
		}
		opts.MinProbability = *minProbability
	}
	if target != "" {
		name, err := p.ResolveLabel(target)
		if err != nil {
			return opts, err
		}
		opts.Target = name
	}
	return opts, nil
}

// loadBitmap reads a sketch through the cache and converts it.
func (s *Server) loadBitmap(path string, fresh bool) (*sketch.Bitmap, error) {
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}
	if fresh {
		s.cache.Evict(path)
	}
	img, err := s.cache.Load(path)
	if err != nil {
		return nil, err
	}
	s.debugf("loaded %s (%d cached)", path, s.cache.Len())
	return imaging.ToBitmap(img, s.cfg.MaxSide), nil
}

// === Guessing Handlers ===

type sketchGuessArgs struct {
	Path           string   `json:"path"`
	Profile        string   `json:"profile"`
	TopK           *int     `json:"top_k"`
	MinProbability *float64 `json:"min_probability"`
	Target         string   `json:"target"`
	Fresh          bool     `json:"fresh"`
}

func (s *Server) handleSketchGuess(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a sketchGuessArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	p, err := s.profile(a.Profile)
	if err != nil {
		return nil, err
	}
	opts, err := s.guessOptions(p, a.TopK, a.MinProbability, a.Target)
	if err != nil {
		return nil, err
	}
	bm, err := s.loadBitmap(a.Path, a.Fresh)
	if err != nil {
		return nil, err
	}

	g, err := recognizer.MakeGuess(ctx, s.cfg.Classifier(p), p.Name(), bm, opts)
	if err != nil {
		return nil, err
	}
	s.debugf("guess %s: %s", a.Path, g.Summary)
	return g, nil
}

type sketchGuessPixelsArgs struct {
	Width          int      `json:"width"`
	Height         int      `json:"height"`
	RGBABase64     string   `json:"rgba_base64"`
	ImageBase64    string   `json:"image_base64"`
	Profile        string   `json:"profile"`
	TopK           *int     `json:"top_k"`
	MinProbability *float64 `json:"min_probability"`
	Target         string   `json:"target"`
}

func (s *Server) handleSketchGuessPixels(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a sketchGuessPixelsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	p, err := s.profile(a.Profile)
	if err != nil {
		return nil, err
	}
	opts, err := s.guessOptions(p, a.TopK, a.MinProbability, a.Target)
	if err != nil {
		return nil, err
	}

	var bm *sketch.Bitmap
	switch {
	case a.ImageBase64 == "" && a.RGBABase64 == "":
		return nil, fmt.Errorf("rgba_base64 or image_base64 is required")
	case a.ImageBase64 != "":
		data, err := base64.StdEncoding.DecodeString(a.ImageBase64)
		if err != nil {
			return nil, fmt.Errorf("failed to decode image_base64: %w", err)
		}
		img, err := imaging.Decode(data)
		if err != nil {
			return nil, err
		}
		bm = imaging.ToBitmap(img, s.cfg.MaxSide)
	default:
		pix, err := base64.StdEncoding.DecodeString(a.RGBABase64)
		if err != nil {
			return nil, fmt.Errorf("failed to decode rgba_base64: %w", err)
		}
		bm, err = sketch.NewBitmap(a.Width, a.Height, pix)
		if err != nil {
			return nil, err
		}
	}

	return recognizer.MakeGuess(ctx, s.cfg.Classifier(p), p.Name(), bm, opts)
}

// === Inspection Handlers ===

type sketchDescribeArgs struct {
	Path    string `json:"path"`
	Profile string `json:"profile"`
	Fresh   bool   `json:"fresh"`
}

// DescribeResult pairs a descriptor with the profile it was extracted for.
type DescribeResult struct {
	Profile string `json:"profile"`

	// Width and Height are the bitmap size after any MaxSide downscale.
	Width  int `json:"image_width"`
	Height int `json:"image_height"`

	// Source describes the file as it was decoded.
	Source     *imaging.ImageInfo `json:"source"`
	Descriptor sketch.Descriptor  `json:"descriptor"`

	// StraightLines sums the three lane counts (0 without shape detail).
	StraightLines int `json:"straight_lines"`
}

func (s *Server) handleSketchDescribe(args json.RawMessage) (interface{}, error) {
	var a sketchDescribeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	p, err := s.profile(a.Profile)
	if err != nil {
		return nil, err
	}
	bm, err := s.loadBitmap(a.Path, a.Fresh)
	if err != nil {
		return nil, err
	}
	info, err := imaging.LoadImageInfo(s.cache, a.Path)
	if err != nil {
		return nil, err
	}
	d := p.Describe(bm)
	return &DescribeResult{
		Profile:       p.Name(),
		Width:         bm.Width,
		Height:        bm.Height,
		Source:        info,
		Descriptor:    d,
		StraightLines: d.StraightLines(),
	}, nil
}

type sketchAnnotateArgs struct {
	Path    string `json:"path"`
	Profile string `json:"profile"`
	Crop    bool   `json:"crop"`
	Scale   int    `json:"scale"`
	Fresh   bool   `json:"fresh"`
}

// AnnotateResult is the overlay plus the data drawn on it.
type AnnotateResult struct {
	*imaging.OverlayResult
	Summary    string            `json:"summary"`
	Descriptor sketch.Descriptor `json:"descriptor"`
}

func (s *Server) handleSketchAnnotate(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a sketchAnnotateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale < 0 || a.Scale > maxAnnotateScale {
		return nil, fmt.Errorf("scale must be between 0 and %d (0 uses the configured scale), got %d", maxAnnotateScale, a.Scale)
	}
	p, err := s.profile(a.Profile)
	if err != nil {
		return nil, err
	}
	bm, err := s.loadBitmap(a.Path, a.Fresh)
	if err != nil {
		return nil, err
	}

	// Corners and curves are always traced so the overlay shows them.
	extract := p.Options()
	extract.ShapeDetail = true
	d, tr := sketch.ExtractTrace(bm, extract)

	opts, _ := s.guessOptions(p, nil, nil, "")
	if opts.TopK == 0 || opts.TopK > 3 {
		opts.TopK = 3
	}
	g, err := recognizer.MakeGuess(ctx, s.cfg.Classifier(p), p.Name(), bm, opts)
	if err != nil {
		return nil, err
	}

	style := s.cfg.Overlay
	style.Crop = style.Crop || a.Crop
	if a.Scale > 0 {
		style.Scale = a.Scale
	}
	style.Caption = g.Summary

	overlay, err := imaging.Annotate(bm, d, tr, style)
	if err != nil {
		return nil, err
	}
	return &AnnotateResult{OverlayResult: overlay, Summary: g.Summary, Descriptor: d}, nil
}

type sketchLabelsArgs struct {
	Profile string `json:"profile"`
}

// LabelsResult lists a profile's vocabulary and rules.
type LabelsResult struct {
	Profile string   `json:"profile"`
	Count   int      `json:"count"`
	Labels  []string `json:"labels"`
	Rules   []string `json:"rules"`
}

func (s *Server) handleSketchLabels(args json.RawMessage) (interface{}, error) {
	var a sketchLabelsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	p, err := s.profile(a.Profile)
	if err != nil {
		return nil, err
	}
	labels := p.Labels()
	return &LabelsResult{
		Profile: p.Name(),
		Count:   len(labels),
		Labels:  labels,
		Rules:   p.Rules(),
	}, nil
}
