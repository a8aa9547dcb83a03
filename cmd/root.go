package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cfgpkg "github.com/fiveonefour/moosedocs/internal/config"
)

var (
	// Global flags
	cfgFile     string
	contentRoot string
	debug       bool

	// Loaded configuration
	cfg *cfgpkg.Global

	// Process-wide logger, initialized in loadConfig
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "moosedocs",
	Short: "MooseStack docs content server and export toolchain",
	Long:  `moosedocs serves the MooseStack documentation content tree over HTTP and exports it as LLM-ready markdown, with include resolution, language filtering and full-text search.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	defer func() {
		if logger != nil {
			_ = logger.Sync()
		}
	}()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.moosedocs/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&contentRoot, "content", "", "content root directory (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func loadConfig() {
	initLogger()

	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c

	if rootCmd.PersistentFlags().Changed("content") && contentRoot != "" {
		cfg.ContentRoot = contentRoot
	}
}

func initLogger() {
	var err error
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to init logger: %v\n", err)
		logger = zap.NewNop()
	}
}

// requireConfig guards commands that cannot run without configuration.
func requireConfig() error {
	if cfg == nil {
		return fmt.Errorf("configuration not loaded")
	}
	if _, err := os.Stat(cfg.ContentRoot); err != nil {
		return fmt.Errorf("content root %q not found: %w", cfg.ContentRoot, err)
	}
	return nil
}
