// Package telemetry describes the files the capture side writes into its
// output directory. Each file is named <signal>.<stamp>[.errors].ndjson,
// e.g. traces.20240131T120000.ndjson or logs.20240131T120000.errors.ndjson.
package telemetry

import (
	"strings"

	"github.com/wasilibs/go-re2"
)

// Suffix is the extension every telemetry artifact carries.
const Suffix = ".ndjson"

// Signal is the kind of telemetry stored in a file.
type Signal string

const (
	SignalTraces  Signal = "traces"
	SignalLogs    Signal = "logs"
	SignalMetrics Signal = "metrics"
	// SignalOther covers artifacts whose name does not follow the convention.
	SignalOther Signal = "other"
)

var namePattern = re2.MustCompile(`^(traces|logs|metrics)\.([^.]+)(\.errors)?\.ndjson$`)

// Name is a parsed artifact file name.
type Name struct {
	Signal Signal
	Stamp  string
	Errors bool // file holds records that failed export
}

// IsArtifact reports whether a file name marks a telemetry artifact.
// Only the suffix matters; prefix and the errors marker are ignored, and a
// bare ".ndjson" qualifies too.
func IsArtifact(name string) bool {
	return strings.HasSuffix(name, Suffix)
}

// ParseName splits an artifact name into its parts. It returns false for
// names that carry the suffix but not the <signal>.<stamp> layout.
func ParseName(name string) (Name, bool) {
	m := namePattern.FindStringSubmatch(name)
	if m == nil {
		return Name{}, false
	}
	return Name{
		Signal: Signal(m[1]),
		Stamp:  m[2],
		Errors: m[3] != "",
	}, true
}

// SignalOf returns the signal encoded in an artifact name, or SignalOther.
func SignalOf(name string) Signal {
	if n, ok := ParseName(name); ok {
		return n.Signal
	}
	return SignalOther
}
