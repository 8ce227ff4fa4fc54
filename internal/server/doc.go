// Package server implements the MCP (Model Context Protocol) server for the
// sketch guesser.
//
// This package provides a JSON-RPC 2.0 server that exposes heuristic sketch
// recognition through the MCP protocol, so an assistant can look at a
// doodle and play a drawing game.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Guessing:
//   - sketch_guess: Rank labels for a sketch file
//   - sketch_guess_pixels: Rank labels for a raw RGBA canvas buffer
//
// Inspection:
//   - sketch_describe: Return the geometric descriptor
//   - sketch_annotate: Render the descriptor over the sketch
//   - sketch_labels: List a profile's vocabulary
//
// # Defaults
//
// Optional arguments (profile, top_k, min_probability) fall back to the
// config.Config the server was built with. When handwriting is enabled in
// the configuration, written labels are read with Tesseract before the
// heuristics run.
//
// # Image Caching
//
// Sketch files are cached by path for the lifetime of the process. A drawing
// surface that overwrites the same file between guesses should pass
// fresh=true.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
package server
