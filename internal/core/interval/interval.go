// Package interval computes wall-clock fetch boundaries for category cadences.
//
// A boundary is an instant whose minute-of-hour is a multiple of the cadence and
// whose seconds and sub-seconds are zero. All arithmetic is done on absolute time
// offsets from now, so DST transitions and non-hour zone offsets are handled.
package interval

import (
	"fmt"
	"time"
)

// DefaultTolerance absorbs a coarse ticker firing slightly after a boundary.
const DefaultTolerance = 5 * time.Second

// CurrentBoundary returns the most recent boundary at or before now.
func CurrentBoundary(cadenceMinutes int, now time.Time) time.Time {
	cadenceMinutes = normalize(cadenceMinutes)
	intoBucket := time.Duration(now.Minute()%cadenceMinutes)*time.Minute +
		time.Duration(now.Second())*time.Second +
		time.Duration(now.Nanosecond())
	return now.Add(-intoBucket)
}

// NextBoundary returns the first boundary strictly after now. When now sits
// exactly on a boundary the following one is returned.
func NextBoundary(cadenceMinutes int, now time.Time) time.Time {
	cadenceMinutes = normalize(cadenceMinutes)
	bucket := (now.Minute() / cadenceMinutes) * cadenceMinutes
	step := cadenceMinutes
	if bucket+step > 60 {
		// buckets restart at minute zero of the next hour
		step = 60 - bucket
	}
	return CurrentBoundary(cadenceMinutes, now).Add(time.Duration(step) * time.Minute)
}

// IsAtBoundary reports whether now falls within tolerance after a boundary.
func IsAtBoundary(cadenceMinutes int, now time.Time, tolerance time.Duration) bool {
	cadenceMinutes = normalize(cadenceMinutes)
	if now.Minute()%cadenceMinutes != 0 {
		return false
	}
	return time.Duration(now.Second())*time.Second <= tolerance
}

// Countdown returns the time remaining until the next boundary.
func Countdown(cadenceMinutes int, now time.Time) time.Duration {
	return NextBoundary(cadenceMinutes, now).Sub(now)
}

// FormatCountdown renders d as "MMm SSs". There is no hour component; durations
// below zero render as "00m 00s".
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	totalSeconds := int(d / time.Second)
	return fmt.Sprintf("%02dm %02ds", totalSeconds/60, totalSeconds%60)
}

func normalize(cadenceMinutes int) int {
	if cadenceMinutes < 1 {
		return 1
	}
	return cadenceMinutes
}
