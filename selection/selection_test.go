package selection

import (
	"math"
	"testing"
)

func TestNewCoversWholeSource(t *testing.T) {
	r := New(10.0)
	if r.Start != 0 || r.End != 10.0 {
		t.Errorf("Expected default range (0, 10), got (%v, %v)", r.Start, r.End)
	}
	if r.WidthPercent() != 100 || r.OffsetPercent() != 0 {
		t.Errorf("Expected 100%% width at 0%% offset, got %v%% at %v%%", r.WidthPercent(), r.OffsetPercent())
	}
}

func TestSetStart(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		want float64
	}{
		{"inside range", 3, 3},
		{"negative", -2, 0},
		{"equal to end", 8, 8 - Step},
		{"past end", 9.5, 8 - Step},
		{"past duration", 50, 8 - Step},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Range{Start: 1, End: 8, Duration: 10}
			r.SetStart(tt.v)
			if r.Start != tt.want {
				t.Errorf("Expected start %v, got %v", tt.want, r.Start)
			}
			if r.Start >= r.End {
				t.Errorf("Start %v reached end %v", r.Start, r.End)
			}
		})
	}
}

func TestSetEnd(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		want float64
	}{
		{"inside range", 6, 6},
		{"past duration", 12, 10},
		{"equal to start", 2, 2 + Step},
		{"before start", 1, 2 + Step},
		{"negative", -1, 2 + Step},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Range{Start: 2, End: 8, Duration: 10}
			r.SetEnd(tt.v)
			if math.Abs(r.End-tt.want) > 1e-9 {
				t.Errorf("Expected end %v, got %v", tt.want, r.End)
			}
			if r.End <= r.Start {
				t.Errorf("End %v fell to start %v", r.End, r.Start)
			}
		})
	}
}

func TestStartNeverReachesEnd(t *testing.T) {
	r := New(0.005)
	r.SetStart(1)
	if r.Start != 0 {
		t.Errorf("Expected start floored at 0, got %v", r.Start)
	}
	if !r.Valid() {
		t.Errorf("Expected valid range, got %+v", r)
	}

	r = New(5)
	r.SetEnd(0)
	if r.End != Step {
		t.Errorf("Expected end clamped to %v, got %v", Step, r.End)
	}
}

func TestPercentagesStayInBounds(t *testing.T) {
	cases := []Range{
		{Start: 0, End: 10, Duration: 10},
		{Start: 2.5, End: 7.5, Duration: 10},
		{Start: 9.99, End: 10, Duration: 10},
		{Start: 0, End: 0.01, Duration: 3600},
		{Start: 1234.5, End: 3599.9, Duration: 3600},
	}
	for _, r := range cases {
		w, o := r.WidthPercent(), r.OffsetPercent()
		if w < 0 || o < 0 {
			t.Errorf("Negative proportion for %+v: width %v offset %v", r, w, o)
		}
		if w+o > 100+1e-9 {
			t.Errorf("Width %v + offset %v exceeds 100 for %+v", w, o, r)
		}
	}
}

func TestZeroDurationPercentages(t *testing.T) {
	var r Range
	if r.WidthPercent() != 0 || r.OffsetPercent() != 0 {
		t.Errorf("Expected zero proportions without a duration, got %v / %v", r.WidthPercent(), r.OffsetPercent())
	}
}

func TestNudge(t *testing.T) {
	r := New(10)
	r.NudgeStart(1.5)
	r.NudgeEnd(-2)
	if r.Start != 1.5 || r.End != 8 {
		t.Errorf("Expected (1.5, 8), got (%v, %v)", r.Start, r.End)
	}
	if r.Length() != 6.5 {
		t.Errorf("Expected length 6.5, got %v", r.Length())
	}
}
