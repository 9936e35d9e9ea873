package cleanup

import (
	"time"

	"github.com/aatumaykin/telecap/internal/retry"
	"github.com/aatumaykin/telecap/internal/telemetry"
)

// Result holds the accounting of one sweep.
type Result struct {
	DirectoryPath   string                   // Directory as passed by the caller
	FilesBefore     int                      // Candidates found before any deletion
	FilesDeleted    int                      // Candidates actually removed
	FilesSkipped    int                      // Candidates attempted but left in place
	SpaceFreedBytes int64                    // Sum of probed sizes of removed files
	Cancelled       bool                     // Sweep stopped early on context cancellation
	Duration        time.Duration            // Time taken for the sweep
	DeletedBySignal map[telemetry.Signal]int // Removed files per telemetry signal
}

// Complete reports whether every candidate was removed.
func (r Result) Complete() bool {
	return !r.Cancelled && r.FilesDeleted == r.FilesBefore
}

// Candidate is a telemetry file selected for deletion.
type Candidate struct {
	Path string // Absolute path
	Name string
	Size int64 // Probed size, 0 when the probe failed
}

// Config holds configuration for a Cleaner.
type Config struct {
	Retry   retry.Config // Delete retry policy (zero value = defaults)
	FS      FileSystem   // Filesystem access (default: the OS)
	Metrics *Metrics     // Optional prometheus metrics
}

// Cleaner sweeps telemetry output directories. It keeps no state between
// calls; concurrent Clear calls on the same directory are not coordinated.
type Cleaner struct {
	retry   retry.Config
	fs      FileSystem
	metrics *Metrics
}

// NewCleaner creates a new cleaner.
func NewCleaner(config Config) *Cleaner {
	if config.FS == nil {
		config.FS = OSFileSystem{}
	}
	return &Cleaner{
		retry:   config.Retry.WithDefaults(),
		fs:      config.FS,
		metrics: config.Metrics,
	}
}
