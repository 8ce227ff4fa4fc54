package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/doodle-guess-mcp/internal/config"
	"github.com/ironsheep/doodle-guess-mcp/internal/imaging"
	"github.com/ironsheep/doodle-guess-mcp/internal/recognizer"
	"github.com/ironsheep/doodle-guess-mcp/internal/sketch"
)

// NewGuessCmd creates the guess command.
func NewGuessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guess <file>...",
		Short: "Guess what a sketch depicts",
		Long: `Guess ranks the labels of the active profile for each sketch image and
prints a one-line summary, or the full result with --json. Several files
are guessed concurrently and reported in argument order.

Examples:
  doodle-mcp guess cat.png
  doodle-mcp guess --profile basic --top 3 --json cat.png
  doodle-mcp guess drawings/*.png`,
		Args: cobra.MinimumNArgs(1),
		RunE: runGuessCmd,
	}
	cmd.Flags().BoolP("json", "j", false, "Output the full result as JSON")
	cmd.Flags().Float64("min-prob", 0, "Hide guesses at or below this probability")
	cmd.Flags().IntP("jobs", "J", runtime.NumCPU(), "Number of files guessed concurrently")
	return cmd
}

func runGuessCmd(cmd *cobra.Command, args []string) error {
	setupLogging()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("min-prob") {
		cfg.MinProbability, _ = cmd.Flags().GetFloat64("min-prob")
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}
	}
	p, err := cfg.ScoringProfile()
	if err != nil {
		return err
	}
	jobs, _ := cmd.Flags().GetInt("jobs")
	if jobs < 1 {
		jobs = 1
	}

	c := cfg.Classifier(p)
	opts := recognizer.GuessOptions{TopK: cfg.TopK, MinProbability: cfg.MinProbability}
	cache := imaging.NewImageCache()
	guesses := make([]*recognizer.Guess, len(args))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(jobs)
	for i, path := range args {
		g.Go(func() error {
			img, err := cache.Load(path)
			if err != nil {
				return err
			}
			guess, err := recognizer.MakeGuess(ctx, c, p.Name(), imaging.ToBitmap(img, cfg.MaxSide), opts)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if cfg.Verbose {
				log.Printf("guess %s: %s", path, guess.Summary)
			}
			guesses[i] = guess
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	asJSON, _ := cmd.Flags().GetBool("json")
	switch {
	case asJSON && len(guesses) == 1:
		return writeJSON(out, guesses[0])
	case asJSON:
		return writeJSON(out, guesses)
	case len(guesses) == 1:
		_, err = fmt.Fprintln(out, guesses[0].Summary)
		return err
	}
	for i, guess := range guesses {
		if _, err := fmt.Fprintf(out, "%s: %s\n", args[i], guess.Summary); err != nil {
			return err
		}
	}
	return nil
}

// NewDescribeCmd creates the describe command.
func NewDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <file>",
		Short: "Print the geometric descriptor of a sketch as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runDescribeCmd,
	}
}

func runDescribeCmd(cmd *cobra.Command, args []string) error {
	setupLogging()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	p, bm, err := loadSketch(cfg, args[0])
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), p.Describe(bm))
}

// loadSketch resolves the configured profile and reads path as a bitmap.
func loadSketch(cfg *config.Config, path string) (*recognizer.Profile, *sketch.Bitmap, error) {
	p, err := cfg.ScoringProfile()
	if err != nil {
		return nil, nil, err
	}
	img, err := imaging.NewImageCache().Load(path)
	if err != nil {
		return nil, nil, err
	}
	return p, imaging.ToBitmap(img, cfg.MaxSide), nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
