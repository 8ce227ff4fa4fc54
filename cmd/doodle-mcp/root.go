package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/doodle-guess-mcp/internal/config"
)

// EnvLogLevel enables debug logging when set to "debug".
const EnvLogLevel = "DOODLE_MCP_LOG_LEVEL"

// NewRootCmd creates the root command. Without a subcommand it serves MCP.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doodle-mcp",
		Short: "MCP server that guesses what a sketch depicts",
		Long: `doodle-mcp looks at a hand-drawn sketch and ranks what it might be,
the way a drawing game guesses while you draw.

Without a subcommand it runs as an MCP server over stdin/stdout.
Configure it in your MCP client (e.g., Claude Desktop).

Configuration is read from --config, ./.doodle-mcp.yaml or
$XDG_CONFIG_HOME/doodle-mcp/config.yaml, then from DOODLE_MCP_* variables.
Set DOODLE_MCP_LOG_LEVEL=debug to log to stderr.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          runServeCmd,
	}

	cmd.PersistentFlags().StringP("config", "c", "", "Configuration file path")
	cmd.PersistentFlags().StringP("profile", "p", "", "Scoring profile (basic or enhanced)")
	cmd.PersistentFlags().IntP("top", "k", config.DefaultTopK, "Number of guesses to report (0 for all)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewGuessCmd())
	cmd.AddCommand(NewDescribeCmd())
	cmd.AddCommand(NewAnnotateCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves the configuration and applies the persistent flags
// the user set explicitly on top of it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")

	cfg, _, err := config.Load(path, os.LookupEnv)
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	if flags.Changed("profile") {
		cfg.Profile, _ = flags.GetString("profile")
	}
	if flags.Changed("top") {
		cfg.TopK, _ = flags.GetInt("top")
	}
	if flags.Changed("verbose") {
		cfg.Verbose, _ = flags.GetBool("verbose")
	}
	if os.Getenv(EnvLogLevel) == "debug" {
		cfg.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

// setupLogging sends log output to stderr; stdout is for MCP and results.
func setupLogging() {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
}
