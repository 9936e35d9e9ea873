// Package humanize renders counts and durations for people reading reports.
package humanize

import (
	"fmt"
	"strconv"
	"time"
)

var countSuffixes = []string{"K", "M", "G", "T", "P", "E"}

// FormatCount renders n with a magnitude suffix once it reaches 1000.
// The scaled value always carries one decimal place, so 999999 becomes
// "1000.0K" rather than being promoted to the next suffix.
func FormatCount(n int64) string {
	if n < 1000 {
		return strconv.FormatInt(n, 10)
	}

	k := 0
	div := int64(1000)
	for k < len(countSuffixes)-1 && n/div >= 1000 {
		div *= 1000
		k++
	}
	return fmt.Sprintf("%.1f%s", float64(n)/float64(div), countSuffixes[k])
}

// FormatUptime renders d starting from its largest non-zero unit:
// "5s", "1m 30s", "1h 1m 5s", "1d 1h 1m". Seconds are dropped once days
// are shown. Fractions of a second are truncated.
func FormatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	total := int64(d / time.Second)
	days := total / 86400
	hours := total % 86400 / 3600
	minutes := total % 3600 / 60
	seconds := total % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
