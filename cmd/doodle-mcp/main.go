// Package main provides the entry point for the doodle-mcp CLI.
//
// doodle-mcp guesses what a sketch depicts. Run without arguments it serves
// the guesser over MCP on stdin/stdout; the guess, describe and annotate
// subcommands run it once on an image file.
//
// Usage:
//
//	doodle-mcp [serve]
//	doodle-mcp guess sketch.png
//	doodle-mcp annotate sketch.png -o overlay.png
package main

func main() {
	Execute()
}
