// Package cleanup purges telemetry artifacts from a capture output
// directory and reports what was reclaimed.
package cleanup

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aatumaykin/telecap/internal/logger"
	"github.com/aatumaykin/telecap/internal/retry"
	"github.com/aatumaykin/telecap/internal/telemetry"
)

type fileOutcome int

const (
	fileDeleted fileOutcome = iota
	fileSkipped
	fileInterrupted
)

var defaultCleaner = NewCleaner(Config{})

// ClearFiles deletes the telemetry files in dir using the default retry
// policy. See (*Cleaner).Clear.
func ClearFiles(ctx context.Context, log *logger.Logger, dir string) (Result, error) {
	return defaultCleaner.Clear(ctx, log, dir)
}

// Clear deletes every telemetry file found directly inside dir.
//
// The only errors returned are ErrNilLogger and ErrInvalidPath, both before
// any filesystem access. A missing directory yields a zero Result. Per-file
// failures are logged and skipped. When ctx is cancelled the sweep stops
// before the next file and the partial Result is returned with Cancelled
// set. A nil ctx is treated as context.Background().
func (c *Cleaner) Clear(ctx context.Context, log *logger.Logger, dir string) (Result, error) {
	if log == nil {
		return Result{}, ErrNilLogger
	}
	if strings.TrimSpace(dir) == "" {
		return Result{}, ErrInvalidPath
	}
	if ctx == nil {
		ctx = context.Background()
	}

	startTime := time.Now()
	result := Result{DirectoryPath: dir}
	log = log.With(
		logger.Field{Key: "sweep_id", Value: uuid.NewString()},
		logger.Field{Key: "dir", Value: dir})

	info, err := c.fs.Stat(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Debug("output directory does not exist, skipping cleanup")
		c.metrics.observeSweep(outcomeMissing, result, time.Since(startTime))
		return result, nil
	case err != nil:
		log.Error("failed to stat output directory", err)
		c.metrics.observeSweep(outcomeFailed, result, time.Since(startTime))
		return result, nil
	case !info.IsDir():
		log.Error("cannot clean output directory", errNotDirectory)
		c.metrics.observeSweep(outcomeFailed, result, time.Since(startTime))
		return result, nil
	}

	candidates, err := c.ListCandidates(dir)
	if err != nil {
		log.Error("failed to list telemetry files", err)
		c.metrics.observeSweep(outcomeFailed, result, time.Since(startTime))
		return result, nil
	}
	result.FilesBefore = len(candidates)

	if log.Enabled(slog.LevelDebug) {
		names := make([]string, 0, len(candidates))
		for _, candidate := range candidates {
			names = append(names, candidate.Name)
		}
		log.Debug("found telemetry files for cleanup",
			logger.Field{Key: "count", Value: result.FilesBefore},
			logger.Field{Key: "files", Value: names})
	}

	for _, candidate := range candidates {
		if ctx.Err() != nil {
			result.Cancelled = true
			break
		}

		outcome := c.clearFile(ctx, log, &candidate)
		if outcome != fileDeleted {
			result.FilesSkipped++
		}
		if outcome == fileInterrupted {
			result.Cancelled = true
			break
		}
		if outcome == fileDeleted {
			result.FilesDeleted++
			result.SpaceFreedBytes += candidate.Size
			if result.DeletedBySignal == nil {
				result.DeletedBySignal = make(map[telemetry.Signal]int)
			}
			result.DeletedBySignal[telemetry.SignalOf(candidate.Name)]++
		}
	}

	result.Duration = time.Since(startTime)

	outcome := outcomeCompleted
	if result.Cancelled {
		outcome = outcomeCancelled
		log.WarnCtx(ctx, "cleanup interrupted by cancellation",
			logger.Field{Key: "files_before", Value: result.FilesBefore},
			logger.Field{Key: "files_deleted", Value: result.FilesDeleted})
	}
	c.metrics.observeSweep(outcome, result, result.Duration)

	log.Info("telemetry cleanup finished",
		logger.Field{Key: "files_before", Value: result.FilesBefore},
		logger.Field{Key: "files_deleted", Value: result.FilesDeleted},
		logger.Field{Key: "files_skipped", Value: result.FilesSkipped},
		logger.Field{Key: "bytes_freed", Value: result.SpaceFreedBytes},
		logger.Field{Key: "cancelled", Value: result.Cancelled},
		logger.Field{Key: "duration_ms", Value: result.Duration.Milliseconds()})

	return result, nil
}

// clearFile probes and removes a single candidate. The probed size is
// stored on the candidate.
func (c *Cleaner) clearFile(ctx context.Context, log *logger.Logger, candidate *Candidate) fileOutcome {
	fields := []logger.Field{{Key: "file", Value: candidate.Name}}
	if name, ok := telemetry.ParseName(candidate.Name); ok {
		fields = append(fields,
			logger.Field{Key: "signal", Value: string(name.Signal)},
			logger.Field{Key: "errors_file", Value: name.Errors})
	}
	log = log.With(fields...)

	// Size is best effort: the file is still deleted when the probe fails.
	if info, err := c.fs.Stat(candidate.Path); err != nil {
		log.Warn("failed to probe file size, counting as zero bytes",
			logger.Field{Key: "error", Value: err})
	} else {
		candidate.Size = info.Size()
	}

	policy := c.retry
	policy.OnRetry = func(attempt int, err error) {
		c.metrics.incRetry()
		log.Debug("file busy, retrying delete",
			logger.Field{Key: "attempt", Value: attempt},
			logger.Field{Key: "error", Value: err})
	}

	err := retry.Do(ctx, policy, func() error {
		return c.fs.Remove(candidate.Path)
	})

	switch {
	case err == nil:
		log.Debug("deleted telemetry file",
			logger.Field{Key: "size_bytes", Value: candidate.Size})
		return fileDeleted
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.metrics.incFailure(reasonCancelled)
		log.WarnCtx(ctx, "delete retry interrupted by cancellation",
			logger.Field{Key: "error", Value: err})
		return fileInterrupted
	case errors.Is(err, retry.ErrAttemptsExhausted):
		c.metrics.incFailure(reasonExhausted)
		log.Warn("giving up on telemetry file after retries",
			logger.Field{Key: "attempts", Value: policy.MaxAttempts},
			logger.Field{Key: "error", Value: err})
	case errors.Is(err, fs.ErrNotExist):
		c.metrics.incFailure(reasonNotFound)
		log.Warn("telemetry file vanished before deletion",
			logger.Field{Key: "error", Value: err})
	case errors.Is(err, fs.ErrPermission):
		c.metrics.incFailure(reasonPermission)
		log.Warn("permission denied deleting telemetry file",
			logger.Field{Key: "error", Value: err})
	default:
		c.metrics.incFailure(reasonOther)
		log.Warn("failed to delete telemetry file",
			logger.Field{Key: "error", Value: err})
	}
	return fileSkipped
}
