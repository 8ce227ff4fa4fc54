package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ironsheep/doodle-guess-mcp/internal/ocr"
	"github.com/ironsheep/doodle-guess-mcp/internal/server"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	setupLogging()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	server.Version = getVersion()
	if cfg.Verbose {
		log.Printf("Doodle MCP Server %s (built %s, commit %s), profile %s",
			getVersion(), getDate(), getCommit(), cfg.Profile)
	}

	if cfg.Handwriting.Enabled && !ocr.GetInfo().Available {
		log.Printf("handwriting enabled but Tesseract is not available; guesses fall back to heuristics")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.New(cfg).Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
