package main

import (
	"context"
	"os"
	"time"

	"github.com/aatumaykin/telecap/internal/cleanup"
	"github.com/aatumaykin/telecap/internal/logger"
	"github.com/aatumaykin/telecap/internal/report"
)

// sweeper is the part of *cleanup.Scheduler the trigger loop needs.
type sweeper interface {
	Trigger(ctx context.Context) (cleanup.Result, error)
	LastResult() (cleanup.Result, time.Time)
}

// watchTriggers runs a manual sweep for every signal received on sigs
// until ctx is done. Successful sweeps are reported by the scheduler's
// OnResult hook.
func watchTriggers(ctx context.Context, sigs <-chan os.Signal, s sweeper, log *logger.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-sigs:
			log.Info("Manual cleanup requested", logger.Field{Key: "signal", Value: sig.String()})
			if _, err := s.Trigger(ctx); err != nil {
				log.Error("Manual cleanup failed", err)
			}
		}
	}
}

// logLastSweep reports the most recent sweep at shutdown.
func logLastSweep(s sweeper, log *logger.Logger) {
	result, finished := s.LastResult()
	if finished.IsZero() {
		log.Info("No cleanup sweep ran during this session")
		return
	}
	log.Info("Last cleanup sweep",
		logger.Field{Key: "summary", Value: report.Summary(result)},
		logger.Field{Key: "finished_at", Value: finished})
}
