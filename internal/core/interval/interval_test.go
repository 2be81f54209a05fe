package interval

import (
	"testing"
	"time"
)

func at(hour, min, sec, nsec int) time.Time {
	return time.Date(2025, time.July, 14, hour, min, sec, nsec, time.UTC)
}

func TestNextBoundary(t *testing.T) {
	tests := []struct {
		name    string
		cadence int
		now     time.Time
		want    time.Time
	}{
		{"mid bucket", 5, at(10, 7, 30, 0), at(10, 10, 0, 0)},
		{"exactly on boundary returns following", 5, at(10, 10, 0, 0), at(10, 15, 0, 0)},
		{"just after boundary", 5, at(10, 10, 0, 1), at(10, 15, 0, 0)},
		{"rolls into next hour", 5, at(10, 57, 12, 0), at(11, 0, 0, 0)},
		{"thirty minute cadence", 30, at(10, 12, 0, 0), at(10, 30, 0, 0)},
		{"thirty minute on boundary", 30, at(10, 30, 0, 0), at(11, 0, 0, 0)},
		{"cadence not dividing hour", 7, at(10, 58, 0, 0), at(11, 0, 0, 0)},
		{"crosses midnight", 30, at(23, 45, 0, 0), time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextBoundary(tt.cadence, tt.now)
			if !got.Equal(tt.want) {
				t.Errorf("NextBoundary(%d, %v) = %v, want %v", tt.cadence, tt.now, got, tt.want)
			}
		})
	}
}

func TestNextBoundary_AlwaysStrictlyLaterOnBoundary(t *testing.T) {
	for _, cadence := range []int{1, 5, 10, 15, 30} {
		for minute := 0; minute < 60; minute += cadence {
			now := at(8, minute, 0, 0)
			next := NextBoundary(cadence, now)
			if !next.After(now) {
				t.Errorf("cadence %d at %v: next boundary %v is not after now", cadence, now, next)
			}
			if next.Second() != 0 || next.Nanosecond() != 0 || next.Minute()%cadence != 0 {
				t.Errorf("cadence %d: %v is not a boundary", cadence, next)
			}
		}
	}
}

func TestCurrentBoundary(t *testing.T) {
	tests := []struct {
		name    string
		cadence int
		now     time.Time
		want    time.Time
	}{
		{"mid bucket", 5, at(10, 7, 30, 500), at(10, 5, 0, 0)},
		{"on boundary", 5, at(10, 10, 0, 0), at(10, 10, 0, 0)},
		{"thirty minute", 30, at(10, 59, 59, 0), at(10, 30, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CurrentBoundary(tt.cadence, tt.now)
			if !got.Equal(tt.want) {
				t.Errorf("CurrentBoundary(%d, %v) = %v, want %v", tt.cadence, tt.now, got, tt.want)
			}
		})
	}
}

func TestCurrentBoundary_NonHourOffsetZone(t *testing.T) {
	kolkata := time.FixedZone("IST", 5*3600+30*60)
	now := time.Date(2025, time.July, 14, 10, 7, 30, 0, kolkata)

	got := CurrentBoundary(5, now)
	if got.Minute() != 5 || got.Second() != 0 {
		t.Errorf("CurrentBoundary in IST = %v, want local minute 05", got)
	}
}

func TestIsAtBoundary(t *testing.T) {
	tests := []struct {
		name    string
		cadence int
		now     time.Time
		want    bool
	}{
		{"exact boundary", 5, at(10, 15, 0, 0), true},
		{"within tolerance", 5, at(10, 15, 5, 0), true},
		{"past tolerance", 5, at(10, 15, 6, 0), false},
		{"off boundary minute", 5, at(10, 16, 0, 0), false},
		{"egg boundary", 30, at(11, 0, 3, 0), true},
		{"five minute mark is not an egg boundary", 30, at(11, 5, 0, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAtBoundary(tt.cadence, tt.now, DefaultTolerance); got != tt.want {
				t.Errorf("IsAtBoundary(%d, %v) = %v, want %v", tt.cadence, tt.now, got, tt.want)
			}
		})
	}
}

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00m 00s"},
		{999 * time.Millisecond, "00m 00s"},
		{61 * time.Second, "01m 01s"},
		{4*time.Minute + 59*time.Second + 900*time.Millisecond, "04m 59s"},
		{29*time.Minute + 59*time.Second, "29m 59s"},
		{-3 * time.Second, "00m 00s"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatCountdown(tt.d); got != tt.want {
				t.Errorf("FormatCountdown(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

func TestCountdown_StrictlyDecreasesTowardBoundary(t *testing.T) {
	start := at(10, 10, 0, 0)
	boundary := NextBoundary(5, start)

	prev := FormatCountdown(Countdown(5, start))
	for now := start.Add(time.Second); now.Before(boundary); now = now.Add(time.Second) {
		label := FormatCountdown(Countdown(5, now))
		if label >= prev {
			t.Fatalf("countdown did not decrease at %v: %q then %q", now, prev, label)
		}
		prev = label
	}
}
