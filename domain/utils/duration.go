package utils

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MaxTimeout is the longest timeout the platform accepts.
const MaxTimeout = 28 * 24 * time.Hour

// timeoutPattern is anchored at the start only. Anything after the last
// recognised component is ignored, so "1d!!" parses as one day.
var timeoutPattern = regexp.MustCompile(`^(?:(\d+)d)?(?:(\d+)h)?(?:(\d+)m)?(?:(\d+)s)?`)

var timeoutUnits = [...]time.Duration{24 * time.Hour, time.Hour, time.Minute, time.Second}

// ParseTimeout parses compact durations such as "1d", "1h30m" or "2d12h".
// Components must appear in d, h, m, s order. The result is clamped to
// MaxTimeout. A string with no recognised component yields zero.
func ParseTimeout(s string) time.Duration {
	match := timeoutPattern.FindStringSubmatch(strings.TrimSpace(s))
	if match == nil {
		return 0
	}

	var total time.Duration
	for i, unit := range timeoutUnits {
		raw := match[i+1]
		if raw == "" {
			continue
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n > int64(MaxTimeout/unit) {
			return MaxTimeout
		}
		total += time.Duration(n) * unit
		if total > MaxTimeout {
			return MaxTimeout
		}
	}
	return total
}

// FormatTimeout renders a duration as "1d 2h 30m", dropping zero components.
func FormatTimeout(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}

	names := [...]string{"d", "h", "m", "s"}
	var parts []string
	remaining := d
	for i, unit := range timeoutUnits {
		n := remaining / unit
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%d%s", n, names[i]))
			remaining -= n * unit
		}
	}
	if len(parts) == 0 {
		return fmt.Sprintf("%ds", int64(math.Ceil(remaining.Seconds())))
	}
	return strings.Join(parts, " ")
}
