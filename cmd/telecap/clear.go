package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aatumaykin/telecap/internal/cleanup"
	"github.com/aatumaykin/telecap/internal/logger"
	"github.com/aatumaykin/telecap/internal/report"
)

var (
	clearConfigPath string
	clearDir        string
	clearTimeout    time.Duration
	clearDebug      bool
)

// clearCmd represents the clear command
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete captured telemetry files once",
	Long: `Delete every *.ndjson file directly inside the output directory and print
how many files were removed and how much space was freed.

Subdirectories and other files are left alone. A missing directory is not an
error. SIGINT/SIGTERM or --timeout stop the sweep before the next file.`,
	Run: clearHandler,
}

func clearHandler(cmd *cobra.Command, args []string) {
	cfg, configPath, err := loadConfig(clearConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if clearDir != "" {
		cfg.Output.Dir = clearDir
	}
	if clearDebug {
		cfg.Logging.Level = "debug"
	}

	exitOnInvalid(cfg)

	log, err := logger.New(cfg.Logging.LoggerConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log.Debug("Starting cleanup",
		logger.Field{Key: "config", Value: configPath},
		logger.Field{Key: "dir", Value: cfg.Output.Dir})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if clearTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, clearTimeout)
		defer cancel()
	}

	cleaner := cleanup.NewCleaner(cleanup.Config{Retry: cfg.Cleanup.RetryConfig()})
	result, err := cleaner.Clear(ctx, log, cfg.Output.Dir)
	if err != nil {
		log.Error("Cleanup failed", err)
		os.Exit(1)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, report.Summary(result))
	if signals := report.Signals(result); signals != "" {
		fmt.Fprintln(out, signals)
	}
}

func init() {
	clearCmd.Flags().StringVarP(&clearConfigPath, "config", "c", "", "Path to configuration file (default: ./config.toml)")
	clearCmd.Flags().StringVar(&clearDir, "dir", "", "Output directory to clean (overrides config)")
	clearCmd.Flags().DurationVar(&clearTimeout, "timeout", 0, "Stop the sweep after this long (0 = no limit)")
	clearCmd.Flags().BoolVarP(&clearDebug, "debug", "d", false, "Enable debug logging")
}
