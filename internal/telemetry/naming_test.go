package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsArtifact(t *testing.T) {
	tests := []struct {
		name string
		file string
		want bool
	}{
		{"trace file", "traces.T1.ndjson", true},
		{"error log file", "logs.T2.errors.ndjson", true},
		{"unconventional name", "dump.ndjson", true},
		{"suffix only", ".ndjson", true},
		{"plain text", "readme.txt", false},
		{"plain json", "traces.T1.json", false},
		{"upper case suffix", "traces.T1.NDJSON", false},
		{"suffix in the middle", "traces.ndjson.bak", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsArtifact(tt.file))
		})
	}
}

func TestParseName(t *testing.T) {
	tests := []struct {
		file   string
		want   Name
		wantOK bool
	}{
		{"traces.T1.ndjson", Name{Signal: SignalTraces, Stamp: "T1"}, true},
		{"logs.T2.errors.ndjson", Name{Signal: SignalLogs, Stamp: "T2", Errors: true}, true},
		{"metrics.20240131T120000Z.ndjson", Name{Signal: SignalMetrics, Stamp: "20240131T120000Z"}, true},
		{"events.T1.ndjson", Name{}, false},
		{"traces.ndjson", Name{}, false},
		{"traces.T1.json", Name{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			got, ok := ParseName(tt.file)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSignalOf(t *testing.T) {
	assert.Equal(t, SignalLogs, SignalOf("logs.T2.errors.ndjson"))
	assert.Equal(t, SignalOther, SignalOf("dump.ndjson"))
}
