package timeutil

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatClock formats seconds as MM:SS.mmm (e.g. 01:05.499).
// Each unit is truncated toward zero; minutes are not wrapped into hours.
// Negative or non-finite input is not supported.
func FormatClock(seconds float64) string {
	minutes := int(math.Floor(seconds / 60))
	secs := int(math.Floor(math.Mod(seconds, 60)))
	millis := int(math.Floor(math.Mod(seconds*1000, 1000)))
	return fmt.Sprintf("%02d:%02d.%03d", minutes, secs, millis)
}

// FormatTime formats seconds as H:MM:SS (e.g. 0:01:30, 1:11:22).
func FormatTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	totalSeconds := int(seconds)
	hours := totalSeconds / 3600
	mins := (totalSeconds % 3600) / 60
	secs := totalSeconds % 60
	return fmt.Sprintf("%d:%02d:%02d", hours, mins, secs)
}

// ParseTimeToSeconds parses a time string in HH:MM:SS, MM:SS, or raw seconds format.
// The last component may carry a fraction, so the MM:SS.mmm strings produced by
// FormatClock parse back to the same value.
func ParseTimeToSeconds(timeStr string) (float64, error) {
	timeStr = strings.TrimSpace(timeStr)
	parts := strings.Split(timeStr, ":")
	if len(parts) > 3 || timeStr == "" {
		return 0, fmt.Errorf("expected HH:MM:SS, MM:SS, or seconds, got '%s'", timeStr)
	}

	secs, err := strconv.ParseFloat(parts[len(parts)-1], 64)
	if err != nil || secs < 0 {
		return 0, fmt.Errorf("expected HH:MM:SS, MM:SS, or seconds, got '%s'", timeStr)
	}
	if len(parts) > 1 && secs >= 60 {
		return 0, fmt.Errorf("seconds out of range in '%s'", timeStr)
	}

	total := secs
	multiplier := 60.0
	for i := len(parts) - 2; i >= 0; i-- {
		n, err := strconv.Atoi(parts[i])
		if err != nil || n < 0 {
			return 0, fmt.Errorf("expected HH:MM:SS, MM:SS, or seconds, got '%s'", timeStr)
		}
		total += float64(n) * multiplier
		multiplier *= 60
	}

	return total, nil
}
