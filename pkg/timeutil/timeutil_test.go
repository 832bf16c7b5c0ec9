package timeutil

import (
	"regexp"
	"testing"
)

var clockPattern = regexp.MustCompile(`^\d{2}:\d{2}\.\d{3}$`)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00.000"},
		{0.5, "00:00.500"},
		{65.4999, "01:05.499"},
		{61.125, "01:01.125"},
		{125.0625, "02:05.062"},
		{3599.75, "59:59.750"},
		{5999.5, "99:59.500"},
	}

	for _, tt := range tests {
		got := FormatClock(tt.seconds)
		if got != tt.want {
			t.Errorf("FormatClock(%v): expected %q, got %q", tt.seconds, tt.want, got)
		}
		if !clockPattern.MatchString(got) {
			t.Errorf("FormatClock(%v) = %q does not match MM:SS.mmm", tt.seconds, got)
		}
	}
}

func TestFormatClockPastHundredMinutes(t *testing.T) {
	if got := FormatClock(6000.25); got != "100:00.250" {
		t.Errorf("Expected minutes to keep counting, got %q", got)
	}
}

func TestFormatClockRoundTrip(t *testing.T) {
	for _, s := range []float64{0, 0.25, 7.5, 61.125, 754.125} {
		formatted := FormatClock(s)
		parsed, err := ParseTimeToSeconds(formatted)
		if err != nil {
			t.Fatalf("ParseTimeToSeconds(%q) returned error: %v", formatted, err)
		}
		if FormatClock(parsed) != formatted {
			t.Errorf("Round trip of %v: %q parsed to %v", s, formatted, parsed)
		}
		if parsed > s {
			t.Errorf("Expected truncation, %q parsed to %v which exceeds %v", formatted, parsed, s)
		}
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{-3, "0:00:00"},
		{90, "0:01:30"},
		{4282.9, "1:11:22"},
	}
	for _, tt := range tests {
		if got := FormatTime(tt.seconds); got != tt.want {
			t.Errorf("FormatTime(%v): expected %q, got %q", tt.seconds, tt.want, got)
		}
	}
}

func TestParseTimeToSeconds(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"1:02:03", 3723, false},
		{"02:03", 123, false},
		{"01:05.5", 65.5, false},
		{"12.25", 12.25, false},
		{" 7 ", 7, false},
		{"", 0, true},
		{"abc", 0, true},
		{"1:2:3:4", 0, true},
		{"01:75", 0, true},
		{"-4", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseTimeToSeconds(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseTimeToSeconds(%q): expected error, got %v", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeToSeconds(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTimeToSeconds(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}
