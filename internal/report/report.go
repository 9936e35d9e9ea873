// Package report turns cleanup results into short human-readable lines
// for the CLI and the daemon log.
package report

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/aatumaykin/telecap/internal/cleanup"
	"github.com/aatumaykin/telecap/internal/humanize"
)

// Summary describes a sweep in one line, e.g.
//
//	deleted 2 of 2 telemetry files from /out, freed 1.2K bytes (1,234)
//
// Skipped files and an interrupted sweep are noted at the end.
func Summary(result cleanup.Result) string {
	p := message.NewPrinter(language.English)

	var b strings.Builder
	b.WriteString(p.Sprintf("deleted %s of %s telemetry files from %s, freed %s bytes",
		humanize.FormatCount(int64(result.FilesDeleted)),
		humanize.FormatCount(int64(result.FilesBefore)),
		result.DirectoryPath,
		humanize.FormatCount(result.SpaceFreedBytes)))

	if result.SpaceFreedBytes >= 1000 {
		b.WriteString(p.Sprintf(" (%d)", result.SpaceFreedBytes))
	}
	if result.FilesSkipped > 0 {
		b.WriteString(p.Sprintf(", %d skipped", result.FilesSkipped))
	}
	if result.Cancelled {
		b.WriteString(", interrupted")
	}
	return b.String()
}

// Signals lists deleted files per signal, sorted by label:
// "Logs: 1, Traces: 2". It returns "" when nothing was deleted.
func Signals(result cleanup.Result) string {
	if len(result.DeletedBySignal) == 0 {
		return ""
	}

	title := cases.Title(language.English)
	p := message.NewPrinter(language.English)

	parts := make([]string, 0, len(result.DeletedBySignal))
	for signal, count := range result.DeletedBySignal {
		parts = append(parts, p.Sprintf("%s: %d", title.String(string(signal)), count))
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}

// Uptime renders how long the daemon has been running.
func Uptime(start, now time.Time) string {
	return humanize.FormatUptime(now.Sub(start))
}
