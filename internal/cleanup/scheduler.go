package cleanup

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/aatumaykin/telecap/internal/logger"
)

// scheduleParser accepts 5 or 6 field expressions (seconds optional) and
// descriptors such as @hourly or @every 30m.
var scheduleParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ValidateSchedule checks a cleanup schedule expression.
func ValidateSchedule(expression string) error {
	if _, err := scheduleParser.Parse(expression); err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}
	return nil
}

// SchedulerConfig holds configuration for the cleanup scheduler.
type SchedulerConfig struct {
	Enabled    bool   // Enable periodic cleanup
	Schedule   string // Cron expression for cleanup runs
	RunOnStart bool   // Sweep once as soon as the scheduler starts
}

// Scheduler runs cleanups of one directory on a cron schedule. Runs never
// overlap: a tick that fires while a sweep is in progress is skipped.
type Scheduler struct {
	cleaner  *Cleaner
	config   SchedulerConfig
	logger   *logger.Logger
	dir      string
	cron     *cron.Cron
	ctx      context.Context
	cancel   context.CancelFunc
	onResult func(Result)

	runMu sync.Mutex // held for the duration of a sweep
	runWg sync.WaitGroup

	mu      sync.RWMutex
	last    Result
	lastRun time.Time
}

// NewScheduler creates a new cleanup scheduler.
func NewScheduler(
	cleaner *Cleaner,
	config SchedulerConfig,
	dir string,
	log *logger.Logger,
) *Scheduler {
	return &Scheduler{
		cleaner: cleaner,
		config:  config,
		logger:  log,
		dir:     dir,
	}
}

// OnResult registers a callback invoked after every finished sweep.
// It must be called before Start.
func (s *Scheduler) OnResult(fn func(Result)) {
	s.onResult = fn
}

// Start begins the periodic cleanup scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	if !s.config.Enabled {
		s.logger.Info("cleanup scheduler disabled")
		return nil
	}

	s.ctx, s.cancel = context.WithCancel(ctx)
	s.cron = cron.New(
		cron.WithParser(scheduleParser),
		cron.WithLogger(cronLogger{log: s.logger}),
	)

	if _, err := s.cron.AddFunc(s.config.Schedule, s.runScheduled); err != nil {
		s.cancel()
		return fmt.Errorf("invalid cleanup schedule %q: %w", s.config.Schedule, err)
	}

	s.cron.Start()

	s.logger.Info("cleanup scheduler started",
		logger.Field{Key: "schedule", Value: s.config.Schedule},
		logger.Field{Key: "dir", Value: s.dir},
		logger.Field{Key: "next_run", Value: s.NextRun()})

	if s.config.RunOnStart {
		s.runWg.Add(1)
		go func() {
			defer s.runWg.Done()
			s.runScheduled()
		}()
	}

	return nil
}

// Stop stops the cleanup scheduler and waits for a sweep in progress,
// which sees its context cancelled and returns a partial result.
func (s *Scheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.cron.Stop().Done()
	s.runWg.Wait()

	// Wait for an in-flight sweep to observe the cancellation.
	s.runMu.Lock()
	s.runMu.Unlock()
	s.logger.Info("cleanup scheduler stopped")
}

// Trigger runs cleanup immediately (manual trigger). It waits for a
// scheduled sweep in progress to finish first.
func (s *Scheduler) Trigger(ctx context.Context) (Result, error) {
	s.logger.Info("manual cleanup triggered")

	s.runMu.Lock()
	defer s.runMu.Unlock()
	return s.run(ctx)
}

// LastResult returns the result and finish time of the last sweep.
func (s *Scheduler) LastResult() (Result, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last, s.lastRun
}

// NextRun returns when the next scheduled sweep fires, or the zero time
// when the scheduler is not running.
func (s *Scheduler) NextRun() time.Time {
	if s.cron == nil {
		return time.Time{}
	}
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

func (s *Scheduler) runScheduled() {
	if s.ctx.Err() != nil {
		return
	}
	if !s.runMu.TryLock() {
		s.logger.Warn("previous cleanup still running, skipping scheduled run")
		return
	}
	defer s.runMu.Unlock()

	// Stop may have cancelled between the check above and taking the lock.
	if s.ctx.Err() != nil {
		return
	}

	if _, err := s.run(s.ctx); err != nil {
		s.logger.Error("scheduled cleanup failed", err)
	}
}

func (s *Scheduler) run(ctx context.Context) (Result, error) {
	result, err := s.cleaner.Clear(ctx, s.logger, s.dir)
	if err != nil {
		return result, err
	}

	s.mu.Lock()
	s.last = result
	s.lastRun = time.Now()
	s.mu.Unlock()

	if s.onResult != nil {
		s.onResult(result)
	}
	return result, nil
}

// cronLogger routes robfig/cron diagnostics into the telecap logger.
type cronLogger struct {
	log *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug("cron: "+msg, kvFields(keysAndValues)...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error("cron: "+msg, err, kvFields(keysAndValues)...)
}

func kvFields(keysAndValues []interface{}) []logger.Field {
	fields := make([]logger.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}
		fields = append(fields, logger.Field{Key: key, Value: keysAndValues[i+1]})
	}
	return fields
}
