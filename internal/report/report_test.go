package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aatumaykin/telecap/internal/cleanup"
	"github.com/aatumaykin/telecap/internal/telemetry"
)

func TestSummary(t *testing.T) {
	tests := []struct {
		name   string
		result cleanup.Result
		want   string
	}{
		{
			name:   "nothing to do",
			result: cleanup.Result{DirectoryPath: "/out"},
			want:   "deleted 0 of 0 telemetry files from /out, freed 0 bytes",
		},
		{
			name:   "small sweep",
			result: cleanup.Result{DirectoryPath: "/out", FilesBefore: 2, FilesDeleted: 2, SpaceFreedBytes: 512},
			want:   "deleted 2 of 2 telemetry files from /out, freed 512 bytes",
		},
		{
			name:   "exact bytes grouped",
			result: cleanup.Result{DirectoryPath: "/out", FilesBefore: 3, FilesDeleted: 3, SpaceFreedBytes: 1234567},
			want:   "deleted 3 of 3 telemetry files from /out, freed 1.2M bytes (1,234,567)",
		},
		{
			name: "skipped and interrupted",
			result: cleanup.Result{
				DirectoryPath:   "/out",
				FilesBefore:     1500,
				FilesDeleted:    1200,
				FilesSkipped:    2,
				SpaceFreedBytes: 4096,
				Cancelled:       true,
			},
			want: "deleted 1.2K of 1.5K telemetry files from /out, freed 4.1K bytes (4,096), 2 skipped, interrupted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summary(tt.result))
		})
	}
}

func TestSignals(t *testing.T) {
	tests := []struct {
		name   string
		counts map[telemetry.Signal]int
		want   string
	}{
		{name: "none", counts: nil, want: ""},
		{
			name:   "sorted and title cased",
			counts: map[telemetry.Signal]int{telemetry.SignalTraces: 1, telemetry.SignalLogs: 1},
			want:   "Logs: 1, Traces: 1",
		},
		{
			name: "all signals",
			counts: map[telemetry.Signal]int{
				telemetry.SignalTraces:  2,
				telemetry.SignalMetrics: 1500,
				telemetry.SignalLogs:    3,
				telemetry.SignalOther:   1,
			},
			want: "Logs: 3, Metrics: 1,500, Other: 1, Traces: 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Signals(cleanup.Result{DeletedBySignal: tt.counts}))
		})
	}
}

func TestUptime(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "0s", Uptime(start, start))
	assert.Equal(t, "1m 30s", Uptime(start, start.Add(90*time.Second)))
	assert.Equal(t, "1d 1h 1m", Uptime(start, start.Add(25*time.Hour+time.Minute+5*time.Second)))
	assert.Equal(t, "0s", Uptime(start, start.Add(-time.Hour)))
}
