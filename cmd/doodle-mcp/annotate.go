package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ironsheep/doodle-guess-mcp/internal/imaging"
	"github.com/ironsheep/doodle-guess-mcp/internal/recognizer"
	"github.com/ironsheep/doodle-guess-mcp/internal/sketch"
)

// NewAnnotateCmd creates the annotate command.
func NewAnnotateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "annotate <file>",
		Short: "Draw the extracted features over a sketch",
		Long: `Annotate writes a PNG showing what the extractor saw: the ink box, the
centroid, edge pixels, corners and curve segments, captioned with the guess.

Examples:
  doodle-mcp annotate cat.png -o cat-overlay.png
  doodle-mcp annotate --crop --scale 4 cat.png -o zoom.png`,
		Args: cobra.ExactArgs(1),
		RunE: runAnnotateCmd,
	}
	cmd.Flags().StringP("output", "o", "", "Output PNG path (required)")
	cmd.Flags().Bool("crop", false, "Crop to the ink bounding box")
	cmd.Flags().Int("scale", 0, "Nearest-neighbour upscale factor")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func runAnnotateCmd(cmd *cobra.Command, args []string) error {
	setupLogging()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	p, bm, err := loadSketch(cfg, args[0])
	if err != nil {
		return err
	}

	topK := cfg.TopK
	if topK == 0 || topK > 3 {
		topK = 3
	}
	g, err := recognizer.MakeGuess(cmd.Context(), cfg.Classifier(p), p.Name(), bm, recognizer.GuessOptions{
		TopK:           topK,
		MinProbability: cfg.MinProbability,
	})
	if err != nil {
		return err
	}

	style := cfg.Overlay
	if crop, _ := cmd.Flags().GetBool("crop"); crop {
		style.Crop = true
	}
	if scale, _ := cmd.Flags().GetInt("scale"); scale > 0 {
		style.Scale = scale
	}
	style.Caption = g.Summary

	d, tr := sketch.ExtractTrace(bm, sketch.Options{ShapeDetail: true})
	img := imaging.RenderOverlay(bm, d, tr, style)

	out, _ := cmd.Flags().GetString("output")
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(out) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	if err := imaging.EncodePNG(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\nwrote %s (%dx%d)\n",
		g.Summary, out, img.Bounds().Dx(), img.Bounds().Dy())
	return err
}
