package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/aatumaykin/telecap/internal/cleanup"
	"github.com/aatumaykin/telecap/internal/logger"
	"github.com/aatumaykin/telecap/internal/report"
	"github.com/aatumaykin/telecap/internal/version"
)

var (
	serveConfigPath string
	serveLogLevel   string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Keep the output directory clean on a schedule",
	Long: `Run cleanup sweeps on the configured cron schedule until SIGINT/SIGTERM.
When metrics are enabled, sweep counters are exported on /metrics.`,
	Run: serveHandler,
}

func serveHandler(cmd *cobra.Command, args []string) {
	startTime := time.Now()

	cfg, configPath, err := loadConfig(serveConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Override log level if flag is set
	if serveLogLevel != "" {
		cfg.Logging.Level = serveLogLevel
	}

	exitOnInvalid(cfg)

	log, err := logger.New(cfg.Logging.LoggerConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log.Info(version.FormatStartupMessage(),
		logger.Field{Key: "git_commit", Value: GitCommit},
		logger.Field{Key: "config", Value: configPath},
		logger.Field{Key: "dir", Value: cfg.Output.Dir},
		logger.Field{Key: "schedule", Value: cfg.Cleanup.Schedule})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var metrics *cleanup.Metrics
	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics = cleanup.NewMetrics(cfg.Metrics.Namespace, reg)
		metricsServer = newMetricsServer(cfg.Metrics.Listen, reg, log)

		go func() {
			log.Info("📈 Metrics endpoint listening", logger.Field{Key: "addr", Value: cfg.Metrics.Listen})
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("Metrics endpoint failed", err)
				stop()
			}
		}()
	}

	cleaner := cleanup.NewCleaner(cleanup.Config{
		Retry:   cfg.Cleanup.RetryConfig(),
		Metrics: metrics,
	})
	scheduler := cleanup.NewScheduler(cleaner, cfg.Cleanup.SchedulerConfig(), cfg.Output.Dir, log)
	scheduler.OnResult(func(result cleanup.Result) {
		log.Info(report.Summary(result),
			logger.Field{Key: "signals", Value: report.Signals(result)},
			logger.Field{Key: "next_run", Value: scheduler.NextRun()})
	})

	if err := scheduler.Start(ctx); err != nil {
		log.Error("Failed to start cleanup scheduler", err)
		os.Exit(1)
	}

	triggers := make(chan os.Signal, 1)
	if len(triggerSignals) > 0 {
		signal.Notify(triggers, triggerSignals...)
		defer signal.Stop(triggers)
	}
	go watchTriggers(ctx, triggers, scheduler, log)

	log.Info("✅ telecap is running")

	<-ctx.Done()
	log.Info("🛑 Shutting down telecap...")

	scheduler.Stop()
	logLastSweep(scheduler, log)

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			log.Error("Failed to stop metrics endpoint", err)
		}
	}

	log.Info("👋 telecap stopped gracefully",
		logger.Field{Key: "uptime", Value: report.Uptime(startTime, time.Now())})
}

func newMetricsServer(addr string, reg *prometheus.Registry, log *logger.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ErrorLog:          slog.NewLogLogger(log.StdLogger().Handler(), slog.LevelError),
	}
}

func init() {
	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "c", "", "Path to configuration file (default: ./config.toml)")
	serveCmd.Flags().StringVarP(&serveLogLevel, "log-level", "l", "", "Override log level (debug, info, warn, error)")
}
